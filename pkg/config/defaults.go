package config

const (
	defaultAPIListen = ":8082"

	defaultSummarizerProvider = "ollama"
	defaultSummarizerTarget   = "http://localhost:11434"
	defaultDeadlineSeconds    = 180

	defaultGlobalCap   = 100
	defaultCategoryCap = 10
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Corpus: CorpusConfig{
			Watch: true,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Summarizer: SummarizerConfig{
			Provider:        defaultSummarizerProvider,
			BaseURL:         defaultSummarizerTarget,
			DeadlineSeconds: defaultDeadlineSeconds,
		},
		Retrieval: RetrievalConfig{
			GlobalCap:   defaultGlobalCap,
			CategoryCap: defaultCategoryCap,
		},
	}
}
