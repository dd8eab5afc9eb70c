package contract

import (
	"testing"
	"time"

	"github.com/christianmadden/chess.com-utils/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		User:          "massachuuu",
		Days:          DefaultDays,
		Gap:           DefaultGapMinutes,
		DayCutoffHour: DefaultCutoffHour,
		Color:         "yes",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "massachuuu", cfg.User)
	assert.Equal(t, 60*time.Minute, cfg.Gap)
	assert.Equal(t, 5, cfg.CutoffHour)
	assert.Equal(t, "America/New_York", cfg.TZ.String())
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.JSONBackend, cfg.CacheBackend)
	assert.NotEmpty(t, cfg.CacheDir)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{name: "missing user", mutate: func(in *ConfigRawInput) { in.User = "  " }},
		{name: "zero days", mutate: func(in *ConfigRawInput) { in.Days = 0 }},
		{name: "negative gap", mutate: func(in *ConfigRawInput) { in.Gap = -5 }},
		{name: "cutoff too large", mutate: func(in *ConfigRawInput) { in.DayCutoffHour = 24 }},
		{name: "cutoff negative", mutate: func(in *ConfigRawInput) { in.DayCutoffHour = -1 }},
		{name: "bad timezone", mutate: func(in *ConfigRawInput) { in.Timezone = "Mars/Olympus" }},
		{name: "bad output", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }},
		{name: "bad cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "mysql" }},
		{name: "last and all exclusive", mutate: func(in *ConfigRawInput) { in.Last = 5; in.All = true }},
		{name: "negative last", mutate: func(in *ConfigRawInput) { in.Last = -1 }},
		{name: "negative width", mutate: func(in *ConfigRawInput) { in.Width = -80 }},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			assert.Error(t, ProcessAndValidate(&Config{}, in))
		})
	}
}

func TestProcessAndValidateZeroGapIsLegal(t *testing.T) {
	in := validInput()
	in.Gap = 0
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, time.Duration(0), cfg.Gap)
}

func TestProcessAndValidateLastModeSkipsDaysCheck(t *testing.T) {
	in := validInput()
	in.Days = 0
	in.Last = 20
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, 20, cfg.LastN)
}

func TestProcessAndValidateNoCacheForcesNoneBackend(t *testing.T) {
	in := validInput()
	in.NoCache = true
	in.CacheBackend = "sqlite"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, schema.NoneBackend, cfg.CacheBackend)
}

func TestParseColorOption(t *testing.T) {
	for _, v := range []string{"", "yes", "TRUE", "1", "on"} {
		got, err := ParseColorOption(v)
		require.NoError(t, err)
		assert.True(t, got, v)
	}
	for _, v := range []string{"no", "False", "0", "off"} {
		got, err := ParseColorOption(v)
		require.NoError(t, err)
		assert.False(t, got, v)
	}
	_, err := ParseColorOption("sometimes")
	assert.Error(t, err)
}
