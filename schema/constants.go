package schema

// Custom string types for type safety.
type (
	// Outcome represents a game result from the observer's perspective.
	Outcome string

	// Side represents which color the observer played.
	Side string

	// OutputMode represents the format of the output.
	OutputMode string

	// CacheBackend represents the storage backend for the month cache.
	CacheBackend string
)

// All outcomes supported.
const (
	Win  Outcome = "W"
	Loss Outcome = "L"
	Draw Outcome = "D"
)

// All sides supported. SideUnknown is used when the observer is not a
// participant in the game; such games still count toward overall totals.
const (
	SideWhite   Side = "white"
	SideBlack   Side = "black"
	SideUnknown Side = ""
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All cache backends supported.
const (
	JSONBackend   CacheBackend = "json" // default
	SQLiteBackend CacheBackend = "sqlite"
	NoneBackend   CacheBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[CacheBackend]struct{}{
	JSONBackend:   {},
	SQLiteBackend: {},
	NoneBackend:   {},
}
