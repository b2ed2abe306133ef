package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --provider
// on both "vitals serve" and "vitals query").
type Flag struct {
	// Name is the long flag name (e.g. "listen").
	Name string

	// Shorthand is the one-letter short flag (e.g. "l"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "api.listen").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagAPIListen   = "listen"
	FlagCorpusDir   = "corpus"
	FlagProvider    = "provider"
	FlagModel       = "model"
	FlagBaseURL     = "base-url"
	FlagDeadline    = "deadline"
	FlagGlobalCap   = "global-cap"
	FlagCategoryCap = "category-cap"
)

// Flags is the default registry shared by the serve and query commands.
var Flags = FlagSet{
	FlagAPIListen: {
		Name:        "listen",
		Shorthand:   "l",
		ViperKey:    "api.listen",
		Description: "Address for the API server to listen on",
	},
	FlagCorpusDir: {
		Name:        "corpus",
		Shorthand:   "c",
		ViperKey:    "corpus.dir",
		Description: "Directory of JSONL sample files",
	},
	FlagProvider: {
		Name:        "provider",
		ViperKey:    "summarizer.provider",
		Description: "Summarizer LLM provider (anthropic, openai, ollama)",
	},
	FlagModel: {
		Name:        "model",
		Shorthand:   "m",
		ViperKey:    "summarizer.model",
		Description: "Summarizer model name",
	},
	FlagBaseURL: {
		Name:        "base-url",
		ViperKey:    "summarizer.base_url",
		Description: "Summarizer provider base URL",
	},
	FlagDeadline: {
		Name:        "deadline",
		ViperKey:    "summarizer.deadline_seconds",
		Description: "Global summarization deadline in seconds",
	},
	FlagGlobalCap: {
		Name:        "global-cap",
		ViperKey:    "retrieval.global_cap",
		Description: "Maximum total data items retrieved per query",
	},
	FlagCategoryCap: {
		Name:        "category-cap",
		ViperKey:    "retrieval.category_cap",
		Description: "Maximum data items retrieved per category",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	v := viper.New()
	setViperDefaults(v)
	return v.GetUint(viperKey)
}
