package util

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is looked up in the working directory when no -config
// flag is given.
const DefaultConfigFile = "glogo.toml"

// Configuration carries run defaults. Values come from the optional TOML
// config file; command-line flags override them.
type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Output   string `toml:"output"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Width:    200,
		Height:   200,
		Output:   "output.svg",
		LogLevel: "error",
	}
}

// LoadConfiguration reads path over the defaults. An empty path means "use
// the default file if present"; a missing default file is not an error, a
// missing explicit file is.
func LoadConfiguration(path string) (Configuration, error) {
	cfg := DefaultConfiguration()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	return cfg, nil
}
