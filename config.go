package banqizero

import (
	"os"

	dual "github.com/banqizero/dualnet"
	"github.com/banqizero/game"
	"github.com/banqizero/mcts"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func DefaultConfig() Config {
	return Config{
		Name:      "Banqi",
		IdleLimit: game.DefaultIdleLimit,
		MCTSConf:  mcts.DefaultConfig(),
		NNConf:    dual.DefaultConf(game.RowNum, game.ColNum, game.Features, game.ActionSpace),
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig, so a file only needs the fields
// it changes.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.WithStack(err)
	}
	if err = yaml.Unmarshal(raw, &conf); err != nil {
		return conf, errors.Wrapf(err, "parsing %s", path)
	}
	return conf, conf.Validate()
}

// Validate reports every problem with the configuration.
func (c Config) Validate() error {
	var errs error
	if c.IdleLimit <= 0 {
		errs = multierror.Append(errs, errors.Errorf("idle limit must be positive, got %d", c.IdleLimit))
	}
	if err := c.MCTSConf.Validate(); err != nil {
		errs = multierror.Append(errs, errors.WithMessage(err, "mcts"))
	}
	if !isONNX(c.ModelPath) {
		if err := c.NNConf.Validate(); err != nil {
			errs = multierror.Append(errs, errors.WithMessage(err, "nn"))
		}
		if c.NNConf.ActionSpace != game.ActionSpace {
			errs = multierror.Append(errs, errors.Errorf("nn action space must be %d, got %d", game.ActionSpace, c.NNConf.ActionSpace))
		}
		if c.NNConf.Features*c.NNConf.Height*c.NNConf.Width != game.InputSize {
			errs = multierror.Append(errs, errors.Errorf("nn input must hold %d values", game.InputSize))
		}
	}
	return errs
}
