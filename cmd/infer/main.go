package main

import (
	"flag"
	"fmt"
	"os"

	banqizero "github.com/banqizero"
	"github.com/banqizero/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	modelPath = flag.String("model_path", "", "predictor weights (.onnx or gob)")
	seed      = flag.Uint64("seed", 1, "seed of the board shuffle")
	budget    = flag.Int("budget", 0, "simulations, overrides the default when positive")
	opening   = flag.Int("opening", 0, "number of opening actions played before deciding, always the lowest legal index")
	top       = flag.Int("top", 5, "number of candidate actions to print")
	dotPath   = flag.String("dot", "", "write the search tree as Graphviz DOT to this path")
	dotDepth  = flag.Int("dot_depth", 2, "depth of the DOT dump")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	conf := banqizero.DefaultConfig()
	conf.ModelPath = *modelPath
	conf.MCTSConf.Seed = *seed
	if *budget > 0 {
		conf.MCTSConf.Budget = *budget
	}
	if err := conf.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if err := run(conf); err != nil {
		log.Fatal().Err(err).Msg("infer failed")
	}
}

// run makes one decision. The predictor is released on every path, including errors.
func run(conf banqizero.Config) (err error) {
	nn, err := banqizero.NewInferer(conf)
	if err != nil {
		return errors.WithMessage(err, "error loading model")
	}
	agent := banqizero.NewAgent("infer", nn, conf.MCTSConf)
	defer func() {
		if cerr := agent.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	s := game.NewState(game.WithSeed(*seed))
	for i := 0; i < *opening && !s.Ended(); i++ {
		if err = s.Play(s.LegalActions()[0]); err != nil {
			return errors.WithMessage(err, "cannot play opening")
		}
	}

	action, err := agent.Predict(s)
	if err != nil {
		return errors.WithMessage(err, "search failed")
	}

	fmt.Print(s)
	fmt.Printf("player %d (%v) plays %v [index %d]\n", s.CurrentIndex(), s.CurrentPlayer().Color, action, action.Index())
	for _, v := range agent.MCTS.TopChildren(*top) {
		fmt.Printf("  %-22v visits %-5d prior %.4f q %.4f\n", game.MustDecode(v.Action), v.Visits, v.Prior, v.Q)
	}

	if *dotPath == "" {
		return nil
	}
	dot, err := agent.MCTS.Dot(*dotDepth)
	if err != nil {
		return errors.WithMessage(err, "cannot render tree")
	}
	return errors.WithStack(os.WriteFile(*dotPath, []byte(dot), 0644))
}
