package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/vitals/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the VITALS_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (VITALS_API_LISTEN, VITALS_CORPUS_DIR, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: VITALS_API_LISTEN, VITALS_SUMMARIZER_MODEL, etc.
	v.SetEnvPrefix("VITALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Corpus
	v.SetDefault("corpus.dir", d.Corpus.Dir)
	v.SetDefault("corpus.watch", d.Corpus.Watch)

	// API
	v.SetDefault("api.listen", d.API.Listen)

	// Summarizer
	v.SetDefault("summarizer.provider", d.Summarizer.Provider)
	v.SetDefault("summarizer.model", d.Summarizer.Model)
	v.SetDefault("summarizer.base_url", d.Summarizer.BaseURL)
	v.SetDefault("summarizer.deadline_seconds", d.Summarizer.DeadlineSeconds)

	// Retrieval caps
	v.SetDefault("retrieval.global_cap", d.Retrieval.GlobalCap)
	v.SetDefault("retrieval.category_cap", d.Retrieval.CategoryCap)
}
