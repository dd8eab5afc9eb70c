//go:build integration

// Package integration contains end-to-end tests that exercise the built
// chessions binary. These tests are excluded from normal test runs due to
// build tags. To run them: go test -tags integration ./integration
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runChessions executes the binary in an isolated home and working
// directory so stray config files cannot leak into the test.
func runChessions(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := exec.Command(chessionsBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), "HOME="+cmd.Dir)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runChessions(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "chessions CLI")
	assert.Contains(t, stdout, "Runtime:")
}

func TestMissingUsernameFails(t *testing.T) {
	_, stderr, err := runChessions(t)
	assert.Error(t, err)
	assert.Contains(t, stderr, "username is required")
}

func TestFlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad timezone", []string{"--user", "alice", "--tz", "Mars/Olympus"}, "invalid timezone"},
		{"bad output mode", []string{"--user", "alice", "--output", "xml"}, "invalid output mode"},
		{"negative gap", []string{"--user", "alice", "--gap", "-5"}, "--gap must be"},
		{"last and all conflict", []string{"--user", "alice", "--last", "10", "--all"}, "mutually exclusive"},
		{"bad cache backend", []string{"--user", "alice", "--cache-backend", "redis"}, "invalid cache backend"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, stderr, err := runChessions(t, tc.args...)
			assert.Error(t, err)
			assert.Contains(t, stderr, tc.want)
		})
	}
}

func TestCacheStatusEmpty(t *testing.T) {
	cacheDir := t.TempDir()
	stdout, _, err := runChessions(t, "cache", "status", "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Backend:  json")
	assert.Contains(t, stdout, "Entries:  0")
}

func TestCacheClear(t *testing.T) {
	cacheDir := t.TempDir()
	userDir := filepath.Join(cacheDir, "alice")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "2025-01.json"), []byte(`{"games":[]}`), 0o644))

	stdout, _, err := runChessions(t, "cache", "clear", "alice", "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cache cleared for alice.")

	_, statErr := os.Stat(userDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCacheClearRequiresUsername(t *testing.T) {
	_, stderr, err := runChessions(t, "cache", "clear", "--cache-dir", t.TempDir())
	assert.Error(t, err)
	assert.Contains(t, stderr, "username is required")
}
