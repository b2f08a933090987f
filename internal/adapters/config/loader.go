// Package config provides the configuration loader for snc.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration for the project containing cwd. Values from
// snc.yaml override the defaults; when no file exists the defaults are
// returned as-is.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	configPath := l.findConfiguration(cwd)
	if configPath == "" {
		l.Logger.Info(fmt.Sprintf("no %s found, using default configuration", domain.ConfigFileName))
		return cfg, nil
	}

	var projectfile Projectfile
	if err := readAndUnmarshalYAML(configPath, &projectfile); err != nil {
		return nil, zerr.With(err, "config_path", configPath)
	}

	if err := applyProjectfile(cfg, &projectfile); err != nil {
		return nil, zerr.With(err, "config_path", configPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, zerr.With(err, "config_path", configPath)
	}

	return cfg, nil
}

// DiscoverRoot walks up from cwd to find the project root. The root is the
// directory containing snc.yaml; when no file exists cwd itself is the root.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	if configPath := l.findConfiguration(cwd); configPath != "" {
		return filepath.Dir(configPath), nil
	}
	return cwd, nil
}

func (l *Loader) findConfiguration(cwd string) string {
	currentDir := cwd

	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return ""
		}
		currentDir = parentDir
	}
}

// applyProjectfile overlays the file values onto cfg. Zero values are treated
// as absent and keep the default.
func applyProjectfile(cfg *domain.Config, file *Projectfile) error {
	if file.Provider != "" {
		cfg.Provider = file.Provider
	}
	if file.Model != "" {
		cfg.Model = file.Model
	}
	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if file.APIKeyEnv != "" {
		cfg.APIKeyEnv = file.APIKeyEnv
	}
	if file.Language != "" {
		cfg.Language = file.Language
	}
	if file.Framework != "" {
		cfg.Framework = file.Framework
	}
	if file.Style != "" {
		cfg.Style = file.Style
	}
	if file.MaxAttempts != 0 {
		cfg.MaxAttempts = file.MaxAttempts
	}
	if file.Parallelism != 0 {
		cfg.Parallelism = file.Parallelism
	}
	if file.Timeout != "" {
		timeout, err := time.ParseDuration(file.Timeout)
		if err != nil {
			parseErr := zerr.Wrap(err, domain.ErrConfigInvalid.Error())
			return zerr.With(parseErr, "timeout", file.Timeout)
		}
		cfg.Timeout = timeout
	}
	if file.TransientRetries != 0 {
		cfg.TransientRetries = file.TransientRetries
	}
	cfg.Evaluate = file.Evaluate
	if file.CacheSize != 0 {
		cfg.CacheSize = file.CacheSize
	}
	if file.Store != "" {
		cfg.StoreDriver = file.Store
	}
	if file.Checker != nil {
		if file.Checker.Kind != "" {
			cfg.Checker.Kind = file.Checker.Kind
		}
		if file.Checker.Command != "" {
			cfg.Checker.Command = file.Checker.Command
		}
		cfg.Checker.Strict = file.Checker.Strict
	}
	return nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML(configPath string, target *Projectfile) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
