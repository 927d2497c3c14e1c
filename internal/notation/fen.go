package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/benbeisheim/variantchess-backend/internal/model"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN")

var fenPieceTypes = map[rune]model.PieceType{
	'p': model.Pawn,
	'n': model.Knight,
	'b': model.Bishop,
	'r': model.Rook,
	'q': model.Queen,
	'k': model.King,
}

var fenLetters = map[model.PieceType]rune{
	model.Pawn:   'p',
	model.Knight: 'n',
	model.Bishop: 'b',
	model.Rook:   'r',
	model.Queen:  'q',
	model.King:   'k',
}

// DecodeFEN builds a game from FEN. Boards of any size are accepted: the
// number of ranks sets the height, and empty runs may span several digits
// ("10" is ten empty squares). The half-move clock and full-move number may
// be omitted. An en passant square is turned into the double pawn step that
// produced it.
func DecodeFEN(fen string) (*model.Game, error) {
	parts := strings.Fields(fen)
	if len(parts) != 4 && len(parts) != 6 {
		return nil, fmt.Errorf("%w: expected 4 or 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	board, err := decodePlacement(parts[0])
	if err != nil {
		return nil, err
	}
	if err := ValidatePosition(board); err != nil {
		return nil, err
	}

	var toMove model.Color
	switch parts[1] {
	case "w":
		toMove = model.White
	case "b":
		toMove = model.Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
	}

	rights, err := decodeCastling(parts[2])
	if err != nil {
		return nil, err
	}
	opts := []model.GameOption{model.WithCastlingRights(rights)}

	if parts[3] != "-" {
		seed, err := enPassantSeed(board, toMove, parts[3])
		if err != nil {
			return nil, err
		}
		opts = append(opts, model.WithLastMove(seed))
	}

	halfMoves, fullMoves := 0, 1
	if len(parts) == 6 {
		halfMoves, err = strconv.Atoi(parts[4])
		if err != nil || halfMoves < 0 {
			return nil, fmt.Errorf("%w: half-move clock %q", ErrInvalidFEN, parts[4])
		}
		fullMoves, err = strconv.Atoi(parts[5])
		if err != nil || fullMoves < 1 {
			return nil, fmt.Errorf("%w: full-move number %q", ErrInvalidFEN, parts[5])
		}
	}
	turn := 2*(fullMoves-1) + 1
	if toMove == model.Black {
		turn++
	}
	opts = append(opts, model.WithHalfMoveClock(halfMoves), model.WithTurn(turn))

	return model.NewGame(board, toMove, opts...), nil
}

func decodePlacement(placement string) (*model.Board, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d ranks, at most %d", ErrInvalidFEN, len(ranks), MaxBoardSize)
	}
	type entry struct {
		col   int
		piece model.Piece
	}
	rows := make([][]entry, len(ranks))
	width := -1
	for i, rank := range ranks {
		col, empties := 0, 0
		for _, r := range rank {
			if unicode.IsDigit(r) {
				empties = empties*10 + int(r-'0')
				if col+empties > MaxBoardSize {
					return nil, fmt.Errorf("%w: rank %d is wider than %d", ErrInvalidFEN, len(ranks)-i, MaxBoardSize)
				}
				continue
			}
			col += empties
			empties = 0
			if col >= MaxBoardSize {
				return nil, fmt.Errorf("%w: rank %d is wider than %d", ErrInvalidFEN, len(ranks)-i, MaxBoardSize)
			}
			pieceType, ok := fenPieceTypes[unicode.ToLower(r)]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, r)
			}
			color := model.Black
			if unicode.IsUpper(r) {
				color = model.White
			}
			rows[i] = append(rows[i], entry{col: col, piece: model.NewPiece(color, pieceType)})
			col++
		}
		col += empties
		if width == -1 {
			width = col
		}
		if col != width || col == 0 {
			return nil, fmt.Errorf("%w: rank %d has %d squares, expected %d", ErrInvalidFEN, len(ranks)-i, col, width)
		}
	}

	height := len(ranks)
	board := model.NewBoard(width, height)
	for i, entries := range rows {
		row := height - 1 - i
		for _, e := range entries {
			board.Place(e.piece, e.col, row)
		}
	}
	return board, nil
}

func decodeCastling(field string) (model.CastlingRights, error) {
	var rights model.CastlingRights
	if field == "-" {
		return rights, nil
	}
	for _, r := range field {
		switch r {
		case 'K':
			rights.WhiteKingSide = true
		case 'Q':
			rights.WhiteQueenSide = true
		case 'k':
			rights.BlackKingSide = true
		case 'q':
			rights.BlackQueenSide = true
		default:
			return rights, fmt.Errorf("%w: castling field %q", ErrInvalidFEN, field)
		}
	}
	return rights, nil
}

// enPassantSeed reconstructs the double step that left target behind.
func enPassantSeed(board *model.Board, toMove model.Color, target string) (model.Move, error) {
	pos, err := ParsePosition(target)
	if err != nil {
		return model.Move{}, fmt.Errorf("%w: en passant square: %w", ErrInvalidFEN, err)
	}
	mover := toMove.Opposite()
	dir := 1
	if mover == model.Black {
		dir = -1
	}
	from := model.Position{Col: pos.Col, Row: pos.Row - dir}
	to := model.Position{Col: pos.Col, Row: pos.Row + dir}
	pawn := model.NewPiece(mover, model.Pawn)
	if !board.InBounds(from.Col, from.Row) || !board.InBounds(to.Col, to.Row) {
		return model.Move{}, fmt.Errorf("%w: en passant square %s is off the board", ErrInvalidFEN, target)
	}
	if piece, ok := board.Get(to.Col, to.Row); !ok || piece != pawn {
		return model.Move{}, fmt.Errorf("%w: no %s beside en passant square %s", ErrInvalidFEN, pawn, target)
	}
	return model.NewMove(pawn, from, to), nil
}

// EncodeFEN writes game as FEN, using multi-digit empty runs on wide boards.
func EncodeFEN(game *model.Game) string {
	board := game.Board()
	var sb strings.Builder

	for row := board.Height() - 1; row >= 0; row-- {
		empty := 0
		for col := 0; col < board.Width(); col++ {
			piece, ok := board.Get(col, row)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := fenLetters[piece.Type]
			if piece.Color == model.White {
				letter = unicode.ToUpper(letter)
			}
			sb.WriteRune(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}

	if game.ToMove() == model.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	rights := game.CastlingRights()
	castling := ""
	if rights.WhiteKingSide {
		castling += "K"
	}
	if rights.WhiteQueenSide {
		castling += "Q"
	}
	if rights.BlackKingSide {
		castling += "k"
	}
	if rights.BlackQueenSide {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	sb.WriteString(enPassantTarget(game.LastMove()))

	sb.WriteString(fmt.Sprintf(" %d %d", game.HalfMoveClock(), game.FullMoveNumber()))
	return sb.String()
}

func enPassantTarget(last *model.Move) string {
	if last == nil || last.Kind != model.KindMove || last.Piece.Type != model.Pawn || last.IsPromotion() {
		return "-"
	}
	if d := last.To.Row - last.From.Row; d != 2 && d != -2 {
		return "-"
	}
	return SquareName(last.To.Col, (last.From.Row+last.To.Row)/2)
}
