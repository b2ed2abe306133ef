package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config represents the persistent vitals configuration stored as config.toml
// in the .vitals/ directory. The TOML layout uses sections for logical
// grouping.
type Config struct {
	Version    int              `toml:"version"`
	Corpus     CorpusConfig     `toml:"corpus"`
	API        APIConfig        `toml:"api"`
	Summarizer SummarizerConfig `toml:"summarizer"`
	Retrieval  RetrievalConfig  `toml:"retrieval"`
}

// CorpusConfig holds settings for the JSONL sample corpus.
type CorpusConfig struct {
	// Dir is the directory of JSONL sample files. Defaults to corpus/
	// inside the resolved .vitals/ directory when empty.
	Dir string `toml:"dir,omitempty"`

	// Watch enables automatic reload when corpus files change on disk.
	Watch bool `toml:"watch"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// SummarizerConfig holds settings for the model-backed category summarizer.
type SummarizerConfig struct {
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`

	// DeadlineSeconds is the global wall-clock budget for the per-query
	// summarization fan-out. Categories that miss it fall back to
	// template summaries.
	DeadlineSeconds uint `toml:"deadline_seconds,omitempty"`
}

// Deadline returns the summarization budget as a duration.
func (s SummarizerConfig) Deadline() time.Duration {
	return time.Duration(s.DeadlineSeconds) * time.Second
}

// RetrievalConfig holds the data-size caps applied per query.
type RetrievalConfig struct {
	GlobalCap   uint `toml:"global_cap,omitempty"`
	CategoryCap uint `toml:"category_cap,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"corpus.dir": {
		get: func(c *Config) string { return c.Corpus.Dir },
		set: func(c *Config, v string) error { c.Corpus.Dir = v; return nil },
	},
	"corpus.watch": {
		get: func(c *Config) string { return strconv.FormatBool(c.Corpus.Watch) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for corpus.watch: %w", err)
			}
			c.Corpus.Watch = b
			return nil
		},
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"summarizer.provider": {
		get: func(c *Config) string { return c.Summarizer.Provider },
		set: func(c *Config, v string) error { c.Summarizer.Provider = v; return nil },
	},
	"summarizer.model": {
		get: func(c *Config) string { return c.Summarizer.Model },
		set: func(c *Config, v string) error { c.Summarizer.Model = v; return nil },
	},
	"summarizer.base_url": {
		get: func(c *Config) string { return c.Summarizer.BaseURL },
		set: func(c *Config, v string) error { c.Summarizer.BaseURL = v; return nil },
	},
	"summarizer.deadline_seconds": {
		get: func(c *Config) string {
			if c.Summarizer.DeadlineSeconds == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Summarizer.DeadlineSeconds), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for summarizer.deadline_seconds: %w", err)
			}
			c.Summarizer.DeadlineSeconds = uint(n)
			return nil
		},
	},
	"retrieval.global_cap": {
		get: func(c *Config) string {
			if c.Retrieval.GlobalCap == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Retrieval.GlobalCap), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for retrieval.global_cap: %w", err)
			}
			c.Retrieval.GlobalCap = uint(n)
			return nil
		},
	},
	"retrieval.category_cap": {
		get: func(c *Config) string {
			if c.Retrieval.CategoryCap == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Retrieval.CategoryCap), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for retrieval.category_cap: %w", err)
			}
			c.Retrieval.CategoryCap = uint(n)
			return nil
		},
	},
}
