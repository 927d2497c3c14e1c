// Package render draws boards for people: shaded terminal text and SVG.
package render

import (
	"strings"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
)

const (
	ansiLight = "\x1b[100m"
	ansiReset = "\x1b[0m"
)

type TextOptions struct {
	// Shade paints light squares with an ANSI background.
	Shade bool
	// Coordinates adds row numbers on the left and column letters below.
	Coordinates bool
}

// Text draws board with the highest row on top, three characters per square.
func Text(board *model.Board, opts TextOptions) string {
	var sb strings.Builder
	labelWidth := len(notation.SquareName(0, board.Height()-1)) - 1

	for row := board.Height() - 1; row >= 0; row-- {
		if opts.Coordinates {
			label := notation.SquareName(0, row)[1:]
			sb.WriteString(strings.Repeat(" ", labelWidth-len(label)))
			sb.WriteString(label)
			sb.WriteByte(' ')
		}
		for col := 0; col < board.Width(); col++ {
			sq := board.Square(col, row)
			symbol := " "
			if sq.Piece != nil {
				symbol = string(notation.Symbol(*sq.Piece))
			}
			if opts.Shade && sq.Color == model.LightSquare {
				sb.WriteString(ansiLight + " " + symbol + " " + ansiReset)
			} else {
				sb.WriteString(" " + symbol + " ")
			}
		}
		sb.WriteByte('\n')
	}

	if opts.Coordinates {
		sb.WriteString(strings.Repeat(" ", labelWidth+1))
		for col := 0; col < board.Width(); col++ {
			name := notation.SquareName(col, 0)
			file := name[:len(name)-1]
			sb.WriteString(padCenter(file, 3))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func padCenter(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
