package core

import (
	"strings"

	"github.com/christianmadden/chess.com-utils/schema"
)

// Result keywords as reported by the Chess.com API. Keywords outside
// these sets map to Draw, so a new API result type will surface as a draw
// until it is added here.
var (
	winResults = map[string]struct{}{
		"win": {},
	}
	lossResults = map[string]struct{}{
		"checkmated": {},
		"resigned":   {},
		"timeout":    {},
		"abandoned":  {},
		"lose":       {},
	}
	drawResults = map[string]struct{}{
		"agreed":       {},
		"repetition":   {},
		"stalemate":    {},
		"insufficient": {},
	}
)

// Classify derives the outcome and side of a game from the observer's
// perspective. Username comparison is case-insensitive. When the observer
// is neither participant, the game is treated as an opaque draw with an
// unknown side; this keeps aggregate counts closed instead of erroring.
func Classify(game *schema.Game, observer string) (schema.Outcome, schema.Side) {
	var raw string
	var side schema.Side

	switch strings.ToLower(observer) {
	case strings.ToLower(game.White.Username):
		raw, side = game.White.Result, schema.SideWhite
	case strings.ToLower(game.Black.Username):
		raw, side = game.Black.Result, schema.SideBlack
	default:
		return schema.Draw, schema.SideUnknown
	}

	if _, ok := winResults[raw]; ok {
		return schema.Win, side
	}
	if _, ok := lossResults[raw]; ok {
		return schema.Loss, side
	}
	if _, ok := drawResults[raw]; ok {
		return schema.Draw, side
	}
	// Unknown keyword: conservative default.
	return schema.Draw, side
}
