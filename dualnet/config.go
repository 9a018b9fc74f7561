package dual

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Config configures the neural network
type Config struct {
	FC          int `json:"fc" yaml:"fc"`                     // hidden layer width
	Width       int `json:"width" yaml:"width"`               // board size width
	Height      int `json:"height" yaml:"height"`             // board size height
	Features    int `json:"features" yaml:"features"`         // input planes
	ActionSpace int `json:"action_space" yaml:"action_space"` // policy head width
}

func DefaultConf(m, n, features, actionSpace int) Config {
	return Config{
		FC:          4 * round(m*n),
		Width:       n,
		Height:      m,
		Features:    features,
		ActionSpace: actionSpace,
	}
}

func (conf Config) IsValid() bool { return conf.Validate() == nil }

// Validate reports every problem with the configuration.
func (conf Config) Validate() error {
	var errs error
	if conf.FC <= 1 {
		errs = multierror.Append(errs, errors.Errorf("fc must be greater than 1, got %d", conf.FC))
	}
	if conf.ActionSpace < 3 {
		errs = multierror.Append(errs, errors.Errorf("action space must be at least 3, got %d", conf.ActionSpace))
	}
	if conf.Width <= 0 || conf.Height <= 0 {
		errs = multierror.Append(errs, errors.Errorf("board must not be empty, got %dx%d", conf.Height, conf.Width))
	}
	if conf.Features <= 0 {
		errs = multierror.Append(errs, errors.Errorf("features must be positive, got %d", conf.Features))
	}
	return errs
}

// inputSize is the length of one flattened input.
func (conf Config) inputSize() int { return conf.Features * conf.Height * conf.Width }

// round rounds a to the nearest power of two
func round(a int) int {
	n := a - 1
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++

	lt := n / 2
	if (a - lt) < (n - a) {
		return lt
	}
	return n
}
