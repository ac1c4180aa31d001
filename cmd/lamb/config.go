package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "lamb.toml"

type config struct {
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
	Eval        evalConfig        `toml:"eval"`
	Repl        replConfig        `toml:"repl"`
}

type diagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

type evalConfig struct {
	MaxSteps int  `toml:"max_steps"`
	Cache    bool `toml:"cache"`
}

type replConfig struct {
	History string `toml:"history"`
}

const defaultMaxSteps = 200_000

func defaultConfig() config {
	return config{
		Diagnostics: diagnosticsConfig{Max: 100, Color: "auto"},
		Eval:        evalConfig{MaxSteps: defaultMaxSteps, Cache: true},
	}
}

// findConfig walks up from startDir looking for lamb.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// loadConfig decodes path over the defaults. Unknown keys are errors so a
// typo does not go unnoticed.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Eval.MaxSteps < 0 {
		return config{}, fmt.Errorf("%s: eval.max_steps must not be negative", path)
	}
	if _, err := readColorMode(cfg.Diagnostics.Color); err != nil {
		return config{}, fmt.Errorf("%s: diagnostics.color: %w", path, err)
	}
	return cfg, nil
}

// resolveConfig returns the configuration for this run: --config, then the
// nearest lamb.toml, then the defaults.
func resolveConfig(cmd *cobra.Command) (config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		return loadConfig(explicit)
	}
	path, ok, err := findConfig(".")
	if err != nil || !ok {
		return defaultConfig(), err
	}
	return loadConfig(path)
}

// applyConfig fills every flag the user did not set from the config file.
// Flags a subcommand does not have are skipped.
func applyConfig(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	values := map[string]string{
		"max-diagnostics": strconv.Itoa(cfg.Diagnostics.Max),
		"color":           cfg.Diagnostics.Color,
		"max-steps":       strconv.Itoa(cfg.Eval.MaxSteps),
		"no-cache":        strconv.FormatBool(!cfg.Eval.Cache),
		"history":         cfg.Repl.History,
	}
	flags := cmd.Flags()
	for name, value := range values {
		f := flags.Lookup(name)
		if f == nil || f.Changed || value == "" {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("config value for %s: %w", name, err)
		}
	}
	return nil
}
