package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/vitals/pkg/dotdir"
)

const (
	configFile = "config.toml"

	// corpusDirName is the default corpus location inside the dotdir.
	corpusDirName = "corpus"

	// v0 is the alpha version of the config
	v0 = 0

	// CurrentV is the currently supported version, points to v0
	CurrentV = v0
)

type Configer struct {
	ddm        *dotdir.Manager
	targetDir  string
	targetPath string
}

func NewConfiger(override string) (*Configer, error) {
	cfger := &Configer{}

	cfger.ddm = dotdir.NewManager()
	target, err := cfger.ddm.Target(override)
	if err != nil {
		return nil, err
	}

	// If no .vitals/ directory was resolved, targetPath stays empty;
	// LoadConfig will return defaults and SaveConfig will error clearly.
	if target == "" {
		return cfger, nil
	}

	path := filepath.Join(target, configFile)
	_, err = os.Stat(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Always set targetPath when the directory exists so SaveConfig
	// can create or overwrite the file.
	cfger.targetDir = target
	cfger.targetPath = path

	return cfger, nil
}

// ValidConfigKeys returns the list of all supported configuration key names
// in a stable, logical order matching the TOML section layout.
func ValidConfigKeys() []string {
	ordered := []string{
		"corpus.dir",
		"corpus.watch",
		"api.listen",
		"summarizer.provider",
		"summarizer.model",
		"summarizer.base_url",
		"summarizer.deadline_seconds",
		"retrieval.global_cap",
		"retrieval.category_cap",
	}

	result := make([]string, 0, len(configKeys))
	for _, k := range ordered {
		if _, ok := configKeys[k]; ok {
			result = append(result, k)
		}
	}

	seen := make(map[string]bool, len(result))
	for _, k := range result {
		seen[k] = true
	}
	for k := range configKeys {
		if !seen[k] {
			result = append(result, k)
		}
	}

	return result
}

// IsValidConfigKey returns true if the given key is a supported configuration key.
func IsValidConfigKey(key string) bool {
	_, ok := configKeys[key]
	return ok
}

func (c *Configer) GetTarget() string {
	return c.targetPath
}

// CorpusDir resolves the effective corpus directory for the given config:
// the configured corpus.dir when set, otherwise corpus/ inside the resolved
// .vitals/ directory.
func (c *Configer) CorpusDir(cfg *Config) string {
	if cfg != nil && cfg.Corpus.Dir != "" {
		return cfg.Corpus.Dir
	}
	if c.targetDir == "" {
		return corpusDirName
	}
	return filepath.Join(c.targetDir, corpusDirName)
}

// LoadConfig loads the configuration from config.toml in the target .vitals/
// directory. If the file does not exist, returns NewDefaultConfig() so callers
// always receive a fully-populated Config with sane defaults. Fields
// explicitly set in the file override the defaults.
func (c *Configer) LoadConfig() (*Config, error) {
	if c.targetPath == "" {
		return NewDefaultConfig(), nil
	}

	data, err := os.ReadFile(c.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := ParseConfigTOML(data)
	if err != nil {
		return nil, err
	}

	// Merge in defaults: fill in any zero-value fields from the loaded config
	applyDefaults(cfg)

	return cfg, nil
}

// ParseConfigTOML decodes raw TOML into a Config, rejecting unknown keys.
func ParseConfigTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if cfg.Version > CurrentV {
		return nil, fmt.Errorf("unsupported config version %d (current: %d)", cfg.Version, CurrentV)
	}

	return cfg, nil
}

// applyDefaults fills zero-value fields in cfg with values from NewDefaultConfig().
func applyDefaults(cfg *Config) {
	defaults := NewDefaultConfig()

	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}

	if cfg.API.Listen == "" {
		cfg.API.Listen = defaults.API.Listen
	}

	if cfg.Summarizer.Provider == "" {
		cfg.Summarizer.Provider = defaults.Summarizer.Provider
	}
	if cfg.Summarizer.BaseURL == "" {
		cfg.Summarizer.BaseURL = defaults.Summarizer.BaseURL
	}
	if cfg.Summarizer.DeadlineSeconds == 0 {
		cfg.Summarizer.DeadlineSeconds = defaults.Summarizer.DeadlineSeconds
	}

	if cfg.Retrieval.GlobalCap == 0 {
		cfg.Retrieval.GlobalCap = defaults.Retrieval.GlobalCap
	}
	if cfg.Retrieval.CategoryCap == 0 {
		cfg.Retrieval.CategoryCap = defaults.Retrieval.CategoryCap
	}
}

// SaveConfig persists the configuration to config.toml in the target .vitals/ directory.
func (c *Configer) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}

	if c.targetPath == "" {
		return errors.New("cannot save empty target path")
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// SetConfigValue loads the config, sets the given key to the given value, and saves it.
// Returns an error if the key is not a valid config key.
func (c *Configer) SetConfigValue(key string, value string) error {
	info, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	if err := info.set(cfg, value); err != nil {
		return err
	}

	return c.SaveConfig(cfg)
}

// GetConfigValue loads the config and returns the value for the given key.
func (c *Configer) GetConfigValue(key string) (string, error) {
	info, ok := configKeys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return "", err
	}

	return info.get(cfg), nil
}
