package main

import (
	"flag"
	"os"
	"time"

	banqizero "github.com/banqizero"
	dual "github.com/banqizero/dualnet"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	modelPath  = flag.String("model_path", "", "predictor weights (.onnx or gob), overrides the configuration")
	numGames   = flag.Int("num_game", 1, "number of games to play")
	budget     = flag.Int("budget", 0, "simulations per decision, overrides the configuration when positive")
	seed       = flag.Uint64("seed", 0, "seed for boards and search noise, 0 seeds from the clock")
	savePath   = flag.String("save", "", "write freshly initialized gob weights to this path and exit")
	verbose    = flag.Bool("v", false, "log every committed action")
)

func main() {
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	conf := banqizero.DefaultConfig()
	if *configPath != "" {
		var err error
		if conf, err = banqizero.LoadConfig(*configPath); err != nil {
			log.Fatal().Err(err).Str("config", *configPath).Msg("cannot load configuration")
		}
	}
	if *modelPath != "" {
		conf.ModelPath = *modelPath
	}
	if *budget > 0 {
		conf.MCTSConf.Budget = *budget
	}
	if *seed != 0 {
		conf.Seed = *seed
		conf.MCTSConf.Seed = *seed
	}

	if *savePath != "" {
		if err := saveWeights(conf.NNConf, *savePath); err != nil {
			log.Fatal().Err(err).Msg("cannot save weights")
		}
		log.Info().Str("path", *savePath).Msg("weights saved")
		return
	}

	if err := run(conf); err != nil {
		log.Fatal().Err(err).Msg("banqi failed")
	}
}

func saveWeights(conf dual.Config, path string) error {
	d := dual.New(conf)
	if err := d.Init(); err != nil {
		return err
	}
	defer d.Close()
	return dual.Save(d, path)
}

// run plays the matches. The arena is closed on every path, including errors.
func run(conf banqizero.Config) (err error) {
	arena, err := banqizero.New(conf)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := arena.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for i := 0; i < *numGames; i++ {
		if _, err := arena.Play(); err != nil {
			log.Error().Err(err).Int("game", i).Msg("match aborted")
			break
		}
		if *verbose {
			os.Stderr.WriteString(arena.State().String())
		}
	}

	for idx := 0; idx < 2; idx++ {
		ag := arena.Agent(idx)
		log.Info().
			Str("agent", ag.Name()).Float32("wins", ag.Wins).Float32("loss", ag.Loss).Float32("draw", ag.Draw).
			Msg("statistics")
	}
	return nil
}
