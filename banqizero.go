// Package banqizero plays Banqi (Chinese dark chess) with an AlphaZero style agent: a
// policy/value predictor guiding a Monte Carlo tree search.
package banqizero

import (
	"path/filepath"
	"strings"

	dual "github.com/banqizero/dualnet"
	"github.com/banqizero/onnxnet"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func isONNX(path string) bool { return strings.EqualFold(filepath.Ext(path), ".onnx") }

// NewInferer builds the predictor described by conf: an ONNX Runtime session for .onnx
// models, gob weights for the built-in network, or a freshly initialized network when no
// path is given.
func NewInferer(conf Config) (Inferer, error) {
	switch {
	case conf.ModelPath == "":
		d := dual.New(conf.NNConf)
		if err := d.Init(); err != nil {
			return nil, errors.WithMessage(err, "initializing network")
		}
		log.Warn().Msg("no model path given, using untrained weights")
		return d, nil
	case isONNX(conf.ModelPath):
		c, err := onnxnet.New(conf.ModelPath)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		d, err := dual.Load(conf.ModelPath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("model", conf.ModelPath).Int("fc", d.FC).Msg("weights loaded")
		return d, nil
	}
}

// New validates conf and builds an Arena where two agents sharing one predictor play
// each other.
func New(conf Config) (*Arena, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid configuration")
	}
	nn, err := NewInferer(conf)
	if err != nil {
		return nil, err
	}
	a := NewAgent("A", nn, conf.MCTSConf)
	b := NewAgent("B", nn, conf.MCTSConf)
	b.shared = true
	return MakeArena(a, b, conf), nil
}
