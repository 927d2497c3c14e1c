// Package perft counts move-tree leaves to verify move generation, and
// cross-checks the counts against independent move generators.
package perft

import (
	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
)

// Count returns the number of leaf positions depth plies below game.
func Count(analyzer *model.Analyzer, game *model.Game, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := analyzer.LegalMoves(game)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		child := game.Clone()
		child.Apply(m)
		nodes += Count(analyzer, child, depth-1)
	}
	return nodes
}

// Divide splits Count by root move, keyed by MoveKey.
func Divide(analyzer *model.Analyzer, game *model.Game, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	for _, m := range analyzer.LegalMoves(game) {
		child := game.Clone()
		child.Apply(m)
		result[MoveKey(m)] += Count(analyzer, child, depth-1)
	}
	return result
}

var promotionLetters = map[model.PieceType]string{
	model.Knight: "n",
	model.Bishop: "b",
	model.Rook:   "r",
	model.Queen:  "q",
}

// MoveKey writes m in long coordinate form, e.g. "e2e4", "e1g1", "a7a8q".
func MoveKey(m model.Move) string {
	return notation.PositionName(m.From) + notation.PositionName(m.To) + promotionLetters[m.Promotion]
}
