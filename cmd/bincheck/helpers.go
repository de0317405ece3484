package main

import (
	"fmt"

	"github.com/ludo-technologies/bincheck/internal/config"
	"github.com/ludo-technologies/bincheck/internal/logging"
	"github.com/sirupsen/logrus"
)

// loadSetup resolves configuration and logging for a command invocation.
// Flags override config file values; quiet suppresses all log output so
// machine-readable streams stay clean.
func loadSetup(configPath, binaryPath string, verbose, quiet bool) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if binaryPath != "" {
		cfg.Target.BinaryPath = binaryPath
	}

	if quiet {
		return cfg, logging.Quiet(), nil
	}
	log, err := logging.New(verbose, cfg.Suite.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
