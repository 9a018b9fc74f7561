package banqizero

import (
	"io"

	dual "github.com/banqizero/dualnet"
	"github.com/banqizero/game"
	"github.com/banqizero/mcts"
)

// Config for the engine.
// It holds attributes that impacts the rules, the MCTS and the Neural Network.
type Config struct {
	Name      string      `json:"name" yaml:"name"`
	IdleLimit int         `json:"idle_limit" yaml:"idle_limit"`
	MCTSConf  mcts.Config `json:"mcts_conf" yaml:"mcts_conf"`
	NNConf    dual.Config `json:"nn_conf" yaml:"nn_conf"`

	// ModelPath points at the predictor weights: a .onnx model for ONNX Runtime, anything
	// else is read as gob encoded dualnet weights. Empty means freshly initialized weights.
	ModelPath string `json:"model_path" yaml:"model_path"`

	// Seed seeds board shuffles and the first mover. Zero means seed from the clock.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// Inferer is anything that can infer given an encoded position.
type Inferer interface {
	mcts.Inferencer
	io.Closer
}

var (
	_ Inferer = (*dual.Dual)(nil)
)

// Result is the outcome of one match played in an Arena.
type Result struct {
	Status  game.Status
	Winner  string // empty on a draw
	Actions int
}
