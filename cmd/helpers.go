package cmd

import (
	"fmt"
	"strconv"

	"invoicer/internal/config"
	"invoicer/internal/store"
)

// loadConfig loads configuration and ensures the data directories exist.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore loads configuration and opens the local database.
func openStore() (*config.Config, *store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

// parseCycleID parses a positional cycle id argument.
func parseCycleID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid cycle id %q: must be a number", arg)
	}
	return uint(id), nil
}

// truncate shortens s to at most n runes for table display.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
