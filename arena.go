package banqizero

import (
	"time"

	"github.com/banqizero/game"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Arena lets two agents play full matches through the same commit path a human click
// would take: Validate, then Play.
type Arena struct {
	r      *rand.Rand
	game   *game.State
	agents [2]*Agent

	conf   Config
	logger zerolog.Logger

	name       string
	gameNumber int
}

// MakeArena makes an arena for agents a and b. Player index 0 is always a.
func MakeArena(a, b *Agent, conf Config) *Arena {
	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	name := conf.Name
	if name == "" {
		name = "UNKNOWN GAME"
	}
	return &Arena{
		r:      rand.New(rand.NewSource(seed)),
		agents: [2]*Agent{a, b},
		conf:   conf,
		name:   name,
		logger: log.Logger.With().Str("arena", name).Logger(),
	}
}

// NewGame starts a fresh match. Extra options are applied after the arena's own.
func (a *Arena) NewGame(opts ...game.Option) *game.State {
	base := []game.Option{
		game.WithRand(a.r),
		game.WithIdleLimit(a.conf.IdleLimit),
		game.WithPlayers(
			game.Player{Name: a.agents[0].name, IsAI: true},
			game.Player{Name: a.agents[1].name, IsAI: true},
		),
	}
	a.game = game.NewState(append(base, opts...)...)
	return a.game
}

// Step lets the player to move decide and commits the decision. A decision the rules
// reject is logged and returned; the state is left unchanged.
func (a *Arena) Step() (game.Action, error) {
	if a.game == nil {
		a.NewGame()
	}
	idx := a.game.CurrentIndex()
	agent := a.agents[idx]
	action, err := agent.Predict(a.game)
	if err != nil {
		return action, errors.WithMessagef(err, "agent %s", agent.name)
	}
	if !a.game.Validate(action) {
		a.logger.Error().Str("agent", agent.name).Str("action", action.Key()).Msg("rejected action")
		return action, errors.Wrapf(game.ErrInvalidAction, "agent %s chose %v", agent.name, action)
	}
	if err = a.game.Play(action); err != nil {
		return action, err
	}
	a.logger.Debug().
		Str("agent", agent.name).
		Str("action", action.Key()).
		Int("idle", a.game.IdleSteps()).
		Str("status", a.game.Status().String()).
		Msg("action committed")
	return action, nil
}

// Play plays a match to its end from the current game, or from a fresh one if the
// current game is over, and records who is the winner.
func (a *Arena) Play() (Result, error) {
	if a.game == nil || a.game.Ended() {
		a.NewGame()
	}
	var res Result
	for !a.game.Ended() {
		if _, err := a.Step(); err != nil {
			return res, err
		}
		res.Actions++
	}
	a.gameNumber++

	res.Status = a.game.Status()
	switch w := a.game.Winner(); w {
	case -1:
		a.agents[0].Draw++
		a.agents[1].Draw++
	default:
		a.agents[w].Wins++
		a.agents[1-w].Loss++
		res.Winner = a.agents[w].name
	}
	a.logger.Info().
		Int("game", a.gameNumber).
		Str("status", res.Status.String()).
		Str("winner", res.Winner).
		Int("actions", res.Actions).
		Msg("match over")
	return res, nil
}

// ResetStats clears the win/loss/draw counters of both agents.
func (a *Arena) ResetStats() {
	for _, ag := range a.agents {
		ag.resetStats()
	}
}

// GameNumber returns the number of finished matches.
func (a *Arena) GameNumber() int { return a.gameNumber }

// Name of the game
func (a *Arena) Name() string { return a.name }

// State of the game
func (a *Arena) State() *game.State { return a.game }

// Agent returns the agent playing as player idx.
func (a *Arena) Agent(idx int) *Agent { return a.agents[idx] }

// Close closes both agents.
func (a *Arena) Close() error {
	var errs error
	for _, ag := range a.agents {
		if err := ag.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}
