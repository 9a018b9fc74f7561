// Command generatemoves writes the action catalogue: every action index of the policy
// vector with its readable key, one per line, for tools that export or inspect predictor
// models.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/banqizero/game"
	"github.com/rs/zerolog/log"
)

var (
	actionsPath = flag.String("path", "banqi_actions.txt", "path of the action catalogue to generate")
	geometric   = flag.Bool("geometric", false, "skip indices no board could ever make legal")
)

// reachable reports whether some position could make a legal action. Moves must be orthogonally
// adjacent; eats may also travel along a row or column for cannons; reveals stay in place.
func reachable(a game.Action) bool {
	fr, fc := game.Coordinates(a.From)
	tr, tc := game.Coordinates(a.To)
	dr, dc := abs(fr-tr), abs(fc-tc)
	switch a.Kind {
	case game.Reveal:
		return a.From == a.To
	case game.Move:
		return dr+dc == 1
	default:
		return (dr == 0) != (dc == 0)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func main() {
	flag.Parse()

	f, err := os.OpenFile(*actionsPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create catalogue")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	written := 0
	for idx := 0; idx < game.ActionSpace; idx++ {
		a := game.MustDecode(idx)
		if *geometric && !reachable(a) {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\n", idx, a.Key())
		written++
	}
	if err = w.Flush(); err != nil {
		log.Fatal().Err(err).Msg("cannot write catalogue")
	}
	log.Info().Int("actions", written).Str("path", *actionsPath).Msg("catalogue written")
}
