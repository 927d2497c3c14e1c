package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
	"github.com/benbeisheim/variantchess-backend/internal/perft"
	"github.com/benbeisheim/variantchess-backend/internal/render"
)

func main() {
	fen := flag.String("fen", notation.StartFEN, "FEN string (any board size; defaults to the initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	workers := flag.Int("workers", 1, "Analyzer workers per position")
	oracle := flag.String("oracle", "", "Cross-check the divide against dragontoothmg, goosemg or corentings (8x8 only)")
	show := flag.Bool("show", false, "Print the board before counting")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	game, err := notation.DecodeFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DecodeFEN error: %v\n", err)
		os.Exit(2)
	}
	analyzer := model.NewAnalyzer(model.WithWorkers(*workers))

	if *show {
		fmt.Print(render.Text(game.Board(), render.TextOptions{Shade: true, Coordinates: true}))
	}

	if *oracle != "" {
		var o perft.Oracle
		switch *oracle {
		case "dragontoothmg":
			o = perft.Dragontooth{}
		case "goosemg":
			o = perft.Goose{}
		case "corentings":
			o = perft.Corentings{}
		default:
			fmt.Fprintf(os.Stderr, "unknown oracle %q\n", *oracle)
			os.Exit(2)
		}
		mismatches, err := perft.Compare(analyzer, o, *fen, *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "compare: %v\n", err)
			os.Exit(2)
		}
		for _, m := range mismatches {
			fmt.Printf("%s: ours %d, %s %d\n", m.Move, m.Ours, o.Name(), m.Theirs)
		}
		if len(mismatches) > 0 {
			os.Exit(1)
		}
		fmt.Printf("%s agrees at depth %d\n", o.Name(), *depth)
		return
	}

	if *divide {
		div := perft.Divide(analyzer, game, *depth)
		moves := make([]string, 0, len(div))
		var sum uint64
		for m, n := range div {
			moves = append(moves, m)
			sum += n
		}
		sort.Strings(moves)
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	start := time.Now()
	nodes := perft.Count(analyzer, game, *depth)
	elapsed := time.Since(start)
	fmt.Printf("%d \t\t%d \t\t%s \t%.0f\n", *depth, nodes, elapsed, float64(nodes)/elapsed.Seconds())
}
