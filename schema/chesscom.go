package schema

// Models for the Chess.com published-data API.
// See https://www.chess.com/news/view/published-data-api

// GamePlayer is one side of a finished game as reported by the API.
type GamePlayer struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"` // "win", "checkmated", "resigned", etc.
	ID       string `json:"@id,omitempty"`
}

// Accuracies holds per-side engine accuracy when Chess.com analyzed the game.
type Accuracies struct {
	White float64 `json:"white"`
	Black float64 `json:"black"`
}

// Game is a single entry of a monthly games archive.
type Game struct {
	URL         string      `json:"url"`
	PGN         string      `json:"pgn"`
	TimeControl string      `json:"time_control"`
	TimeClass   string      `json:"time_class"` // blitz/rapid/bullet/daily
	EndTime     int64       `json:"end_time"`
	Rated       bool        `json:"rated"`
	White       GamePlayer  `json:"white"`
	Black       GamePlayer  `json:"black"`
	Accuracies  *Accuracies `json:"accuracies,omitempty"`
}

// MonthArchive is the payload of /pub/player/{user}/games/{YYYY}/{MM}.
type MonthArchive struct {
	Games []Game `json:"games"`
}

// ArchiveIndex is the payload of /pub/player/{user}/games/archives.
type ArchiveIndex struct {
	Archives []string `json:"archives"`
}

// PlayerProfile is the subset of /pub/player/{user} we care about.
type PlayerProfile struct {
	Username   string `json:"username"`
	Name       string `json:"name,omitempty"`
	CountryURL string `json:"country,omitempty"` // /pub/country/{iso} URL
}

// Country is the payload of /pub/country/{iso}.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CacheStatus describes the state of a month-cache backend.
type CacheStatus struct {
	Backend      CacheBackend
	Location     string
	TotalEntries int
	TotalBytes   int64
}
