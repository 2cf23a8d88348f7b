package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// fileConfig is the optional unistat.toml sitting next to the invocation,
// supplying defaults for flags that were not given.
type fileConfig struct {
	Directory string `toml:"directory"`
	Program   string `toml:"program"`
}

const defaultConfigFile = "unistat.toml"

// loadConfig reads the config file named by --config, or unistat.toml when
// present. A missing default file is not an error.
func loadConfig(cmd *cobra.Command) (fileConfig, error) {
	var cfg fileConfig

	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return cfg, fmt.Errorf("failed to get config flag: %w", err)
	}
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// statsDirArg resolves the stats directory for a command: the positional
// argument when given, the config file default otherwise.
func statsDirArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	if cfg.Directory == "" {
		return "", fmt.Errorf("no stats directory given and none configured")
	}
	return cfg.Directory, nil
}
