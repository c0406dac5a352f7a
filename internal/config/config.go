package config

import (
	"os"

	"github.com/limaJavier/graphsat/pkg/sat"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the command line tools
type Config struct {
	// Solver names the default oracle
	Solver string `mapstructure:"solver"`
	// Solvers maps external solver names to their executables
	Solvers map[string]string `mapstructure:"solvers"`
	// Limit is the default maximum number of solutions, zero for all of them
	Limit         int    `mapstructure:"limit"`
	LogLevel      string `mapstructure:"logLevel"`
	BreakSymmetry bool   `mapstructure:"breakSymmetry"`
}

func Default() Config {
	return Config{
		Solver:   sat.Gophersat,
		Solvers:  map[string]string{},
		LogLevel: logrus.InfoLevel.String(),
	}
}

// Load reads a YAML or JSON configuration file on top of the defaults
func Load(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "cannot read config file")
	}
	return Parse(bytes)
}

func Parse(bytes []byte) (Config, error) {
	var document map[string]any
	if err := yaml.Unmarshal(bytes, &document); err != nil {
		return Config{}, errors.Wrap(err, "cannot parse config")
	}

	config := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(document); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (config Config) Validate() error {
	if _, err := sat.NewSolver(config.Solver, config.Solvers); err != nil {
		return err
	}
	for name := range config.Solvers {
		if sat.InProcess(name) {
			return errors.Errorf("solver %q runs in process and takes no executable", name)
		}
	}
	if config.Limit < 0 {
		return errors.Errorf("negative solution limit %d", config.Limit)
	}
	if _, err := logrus.ParseLevel(config.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}

// NewSolver builds the named solver, or the configured default when name is empty
func (config Config) NewSolver(name string) (sat.SATSolver, error) {
	if name == "" {
		name = config.Solver
	}
	return sat.NewSolver(name, config.Solvers)
}
