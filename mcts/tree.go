package mcts

import (
	"time"

	"github.com/banqizero/game"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Config is the structure to configure the MCTS
type Config struct {
	// PUCT is the exploration constant C of the upper confidence bound.
	PUCT float32 `json:"puct" yaml:"puct"`
	// Budget is the number of simulations per search.
	Budget int `json:"budget" yaml:"budget"`

	// Root noise: policy' = (1-DirichletEpsilon)*policy + DirichletEpsilon*Dir(DirichletAlpha)
	DirichletEpsilon float32 `json:"dirichlet_epsilon" yaml:"dirichlet_epsilon"`
	DirichletAlpha   float64 `json:"dirichlet_alpha" yaml:"dirichlet_alpha"`

	// Seed seeds the noise source. Zero means seed from the clock.
	Seed uint64 `json:"seed" yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		PUCT:             2,
		Budget:           600,
		DirichletEpsilon: 0.1,
		DirichletAlpha:   0.3,
	}
}

func (c Config) IsValid() bool { return c.Validate() == nil }

// Validate reports every problem with the configuration.
func (c Config) Validate() error {
	var errs error
	if c.PUCT <= 0 {
		errs = multierror.Append(errs, errors.Errorf("puct must be positive, got %v", c.PUCT))
	}
	if c.Budget < 0 {
		errs = multierror.Append(errs, errors.Errorf("budget must not be negative, got %d", c.Budget))
	}
	if c.DirichletEpsilon < 0 || c.DirichletEpsilon > 1 {
		errs = multierror.Append(errs, errors.Errorf("dirichlet epsilon must be in [0, 1], got %v", c.DirichletEpsilon))
	}
	if c.DirichletEpsilon > 0 && c.DirichletAlpha <= 0 {
		errs = multierror.Append(errs, errors.Errorf("dirichlet alpha must be positive, got %v", c.DirichletAlpha))
	}
	return errs
}

// MCTS owns the node arena of one search. The goal is to build MCTS without much pointer chasing:
// nodes are addressed by index and link to their parent and children by index.
// A MCTS is not safe for concurrent use.
type MCTS struct {
	Config
	nn   Inferencer
	rand *rand.Rand

	// memory related fields
	nodes    []Node
	children [][]naughty
	root     naughty

	logger zerolog.Logger
}

// Option configures a MCTS.
type Option func(t *MCTS)

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(t *MCTS) {
		t.logger = l
	}
}

// WithRand sets the source of the root noise.
func WithRand(r *rand.Rand) Option {
	return func(t *MCTS) {
		if r != nil {
			t.rand = r
		}
	}
}

func New(conf Config, nn Inferencer, opts ...Option) *MCTS {
	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	retVal := &MCTS{
		Config: conf,
		nn:     nn,
		rand:   rand.New(rand.NewSource(seed)),

		nodes:    make([]Node, 0, 12288),
		children: make([][]naughty, 0, 12288),
		root:     nilNode,

		logger: log.Logger.With().Str("component", "mcts").Logger(),
	}
	for _, opt := range opts {
		opt(retVal)
	}
	return retVal
}

// alloc appends a node to the arena
func (t *MCTS) alloc(state game.Position, move int32, prior float32, parent naughty) naughty {
	id := naughty(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		state:  state,
		move:   move,
		parent: parent,
		psa:    prior,
		id:     id,
	})
	if int(id) < len(t.children) {
		t.children[id] = t.children[id][:0]
	} else {
		t.children = append(t.children, nil)
	}
	if parent.isValid() {
		t.children[parent] = append(t.children[parent], id)
	}
	return id
}

// nodeFromNaughty gets the node given the pointer.
func (t *MCTS) nodeFromNaughty(ptr naughty) *Node {
	return &t.nodes[int(ptr)]
}

// Children returns a list of children
func (t *MCTS) Children(of naughty) []naughty {
	return t.children[of]
}

func (t *MCTS) hasChildren(of naughty) bool { return len(t.children[of]) > 0 }

// Nodes returns the number of nodes of the last search.
func (t *MCTS) Nodes() int { return len(t.nodes) }

// Root returns the root of the last search, or nil before the first search.
func (t *MCTS) Root() *Node {
	if !t.root.isValid() {
		return nil
	}
	return t.nodeFromNaughty(t.root)
}

// Child returns the root's child reached by the given action index.
func (t *MCTS) Child(move int32) (*Node, bool) {
	if !t.root.isValid() {
		return nil, false
	}
	kid := t.findChild(t.root, move)
	if !kid.isValid() {
		return nil, false
	}
	return t.nodeFromNaughty(kid), true
}

// Reset empties the arena. The backing memory is kept for the next search.
func (t *MCTS) Reset() {
	t.nodes = t.nodes[:0]
	t.root = nilNode
}
