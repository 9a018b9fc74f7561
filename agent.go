package banqizero

import (
	"sync"

	"github.com/banqizero/game"
	"github.com/banqizero/mcts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorgonia.org/vecf32"
)

// An Agent is an AI player: a predictor and the search it guides.
type Agent struct {
	NN   Inferer
	MCTS *mcts.MCTS

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	name    string
	actions int
	shared  bool // NN belongs to another agent as well; Close leaves it alone
}

// NewAgent creates an agent searching with conf. The search logs under the agent's name
// unless opts replace the logger.
func NewAgent(name string, nn Inferer, conf mcts.Config, opts ...mcts.Option) *Agent {
	logger := log.Logger.With().Str("component", "mcts").Str("agent", name).Logger()
	opts = append([]mcts.Option{mcts.WithLogger(logger)}, opts...)
	return &Agent{
		NN:   nn,
		MCTS: mcts.New(conf, nn, opts...),
		name: name,
	}
}

func (a *Agent) Name() string { return a.name }

// Actions is the number of decisions the agent has made.
func (a *Agent) Actions() int { return a.actions }

// Policy runs one search on the current position of s and returns the visit distribution
// over the action space.
func (a *Agent) Policy(s *game.State) ([]float32, error) {
	if s.Ended() {
		return nil, errors.Wrapf(game.ErrGameOver, "status %v", s.Status())
	}
	return a.MCTS.Search(game.NewPosition(s))
}

// Predict picks the most visited action for the player to move in s. It does not apply it.
func (a *Agent) Predict(s *game.State) (game.Action, error) {
	probs, err := a.Policy(s)
	if err != nil {
		return game.Action{}, err
	}
	a.actions++
	return game.Decode(vecf32.Argmax(probs))
}

func (a *Agent) Close() error {
	if a.shared || a.NN == nil {
		return nil
	}
	a.MCTS.Reset()
	return a.NN.Close()
}

func (a *Agent) resetStats() {
	a.Lock()
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
	a.Unlock()
}
