package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WORD2048_"

// Load reads the configuration.
// Search order: customPath -> ~/.word2048/config.yaml -> ./configs/word2048.yaml -> embedded default.
// A .env file in the working directory and WORD2048_* variables are applied on top.
func Load(customPath string) (Config, error) {
	cfg := Default()

	switch {
	case customPath != "":
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
	default:
		loaded := false
		for _, p := range searchPaths() {
			data, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			next := Default()
			if err := yaml.Unmarshal(data, &next); err != nil {
				continue
			}
			cfg, loaded = next, true
			break
		}
		if !loaded {
			if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
				cfg = Default()
			}
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	return cfg, nil
}

// ApplyEnv overrides cfg with WORD2048_* environment variables.
func ApplyEnv(cfg *Config) error {
	sections := []any{&cfg.Game, &cfg.Vocab, &cfg.UI, &cfg.Audio, &cfg.Storage, &cfg.Log, &cfg.Server}
	for _, s := range sections {
		if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
			return fmt.Errorf("failed to parse environment: %w", err)
		}
	}
	return nil
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath("config.yaml"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", "word2048.yaml"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".word2048", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
