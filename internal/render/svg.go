package render

import (
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
)

type SVGOptions struct {
	SquareSize int
	LightFill  string
	DarkFill   string
	// Highlight squares get an outline, e.g. the last move.
	Highlight []model.Position
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		SquareSize: 48,
		LightFill:  "#f0d9b5",
		DarkFill:   "#b58863",
	}
}

// SVG writes board as an SVG image with the highest row on top.
func SVG(w io.Writer, board *model.Board, opts SVGOptions) {
	defaults := DefaultSVGOptions()
	size := opts.SquareSize
	if size <= 0 {
		size = defaults.SquareSize
	}
	if opts.LightFill == "" {
		opts.LightFill = defaults.LightFill
	}
	if opts.DarkFill == "" {
		opts.DarkFill = defaults.DarkFill
	}
	width, height := board.Width()*size, board.Height()*size

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(notation.FormatGrid(board))

	for _, sq := range board.Squares() {
		x := sq.Position.Col * size
		y := (board.Height() - 1 - sq.Position.Row) * size
		fill := opts.DarkFill
		if sq.Color == model.LightSquare {
			fill = opts.LightFill
		}
		canvas.Rect(x, y, size, size, "fill:"+fill)
		if sq.Piece != nil {
			canvas.Text(x+size/2, y+size*3/4, string(notation.Symbol(*sq.Piece)),
				"text-anchor:middle;font-size:"+strconv.Itoa(size*3/4)+"px;fill:#000")
		}
	}

	for _, p := range opts.Highlight {
		if !board.InBounds(p.Col, p.Row) {
			continue
		}
		x := p.Col * size
		y := (board.Height() - 1 - p.Row) * size
		canvas.Rect(x+1, y+1, size-2, size-2, "fill:none;stroke:#e6b800;stroke-width:3")
	}
	canvas.End()
}
