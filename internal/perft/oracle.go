package perft

import (
	"fmt"
	"sort"

	goose "github.com/Oliverans/GooseEngineMG/goosemg"
	chess "github.com/corentings/chess/v2"
	"github.com/dylhunn/dragontoothmg"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
)

// Oracle is an independent 8x8 move generator used to check our counts.
type Oracle interface {
	Name() string
	Divide(fen string, depth int) (map[string]uint64, error)
}

// standardOnly rejects positions the 8x8 oracles cannot represent.
func standardOnly(fen string) error {
	game, err := notation.DecodeFEN(fen)
	if err != nil {
		return err
	}
	if b := game.Board(); b.Width() != 8 || b.Height() != 8 {
		return fmt.Errorf("oracles only support 8x8 boards, got %dx%d", b.Width(), b.Height())
	}
	return nil
}

type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontoothmg" }

func (Dragontooth) Divide(fen string, depth int) (map[string]uint64, error) {
	if err := standardOnly(fen); err != nil {
		return nil, err
	}
	board := dragontoothmg.ParseFen(fen)
	result := make(map[string]uint64)
	moves := board.GenerateLegalMoves()
	for i := range moves {
		unapply := board.Apply(moves[i])
		result[moves[i].String()] += dragontoothCount(&board, depth-1)
		unapply()
	}
	return result, nil
}

func dragontoothCount(board *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := board.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := board.Apply(m)
		nodes += dragontoothCount(board, depth-1)
		unapply()
	}
	return nodes
}

type Goose struct{}

func (Goose) Name() string { return "goosemg" }

func (Goose) Divide(fen string, depth int) (map[string]uint64, error) {
	if err := standardOnly(fen); err != nil {
		return nil, err
	}
	board, err := goose.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	result := make(map[string]uint64)
	for m, n := range goose.PerftDivide(board, depth) {
		result[m.String()] += n
	}
	return result, nil
}

// Corentings only answers depth 1: it lists the legal moves of the position.
type Corentings struct{}

func (Corentings) Name() string { return "corentings/chess" }

func (Corentings) Divide(fen string, depth int) (map[string]uint64, error) {
	if depth != 1 {
		return nil, fmt.Errorf("%s oracle only supports depth 1", Corentings{}.Name())
	}
	if err := standardOnly(fen); err != nil {
		return nil, err
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, err
	}
	game := chess.NewGame(opt)
	moves := game.ValidMoves()
	result := make(map[string]uint64, len(moves))
	for i := range moves {
		key := moves[i].S1().String() + moves[i].S2().String() + corentingsPromotion(moves[i].Promo())
		result[key]++
	}
	return result, nil
}

func corentingsPromotion(pt chess.PieceType) string {
	switch pt {
	case chess.Knight:
		return "n"
	case chess.Bishop:
		return "b"
	case chess.Rook:
		return "r"
	case chess.Queen:
		return "q"
	}
	return ""
}

// Mismatch is one root move whose subtree size differs between us and an
// oracle. A zero count means the move is missing on that side.
type Mismatch struct {
	Move   string
	Ours   uint64
	Theirs uint64
}

// Compare divides fen with both generators and reports every disagreement,
// sorted by move.
func Compare(analyzer *model.Analyzer, oracle Oracle, fen string, depth int) ([]Mismatch, error) {
	game, err := notation.DecodeFEN(fen)
	if err != nil {
		return nil, err
	}
	ours := Divide(analyzer, game, depth)
	theirs, err := oracle.Divide(fen, depth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", oracle.Name(), err)
	}

	var mismatches []Mismatch
	for move, n := range ours {
		if theirs[move] != n {
			mismatches = append(mismatches, Mismatch{Move: move, Ours: n, Theirs: theirs[move]})
		}
	}
	for move, n := range theirs {
		if _, ok := ours[move]; !ok {
			mismatches = append(mismatches, Mismatch{Move: move, Theirs: n})
		}
	}
	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].Move < mismatches[j].Move })
	return mismatches, nil
}
