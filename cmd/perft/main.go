// Command perft prints move-tree node counts for a position, split by root
// move.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/benbeisheim/hotseat-chess/internal/model"
	"github.com/benbeisheim/hotseat-chess/internal/perft"
	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"
)

func main() {
	fen := flag.String("fen", model.StartingFEN, "position to search from")
	depth := flag.Int("depth", 3, "plies to search")
	strict := flag.Bool("strict", false, "reject moves that leave the mover's king in check")
	profilePath := flag.String("profile", "", "write a CPU profile to this directory")
	flag.Parse()

	if *profilePath != "" {
		defer profile.Start(profile.ProfilePath(*profilePath)).Stop()
	}

	state, err := model.LoadFEN(*fen)
	if err != nil {
		log.Fatal(err)
	}
	state.Strict = *strict

	start := time.Now()
	bar := progressbar.Default(int64(perft.RootMoves(state)), fmt.Sprint("depth ", *depth))
	results := perft.Divide(state, *depth, func() { bar.Add(1) })
	bar.Finish()

	var total int64
	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%s: %s\n", r.Move, humanize.Comma(r.Nodes))
		total += r.Nodes
	}
	elapsed := time.Since(start)
	fmt.Fprintf(os.Stdout, "\nnodes: %s in %s\n", humanize.Comma(total), elapsed.Round(time.Millisecond))
}
