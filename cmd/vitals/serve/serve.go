// Package servecmder provides the serve command for running the vitals API server.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/api"
	"github.com/papercomputeco/vitals/api/mcp"
	"github.com/papercomputeco/vitals/pkg/config"
	"github.com/papercomputeco/vitals/pkg/corpus"
	"github.com/papercomputeco/vitals/pkg/logger"
	"github.com/papercomputeco/vitals/pkg/pipeline"
	"github.com/papercomputeco/vitals/pkg/retrieve"
	"github.com/papercomputeco/vitals/pkg/summarize"
)

type ServeCommander struct {
	listen      string
	corpusDir   string
	provider    string
	model       string
	baseURL     string
	deadline    uint
	globalCap   uint
	categoryCap uint

	debug     bool
	configDir string
	viper     *viper.Viper
	logger    *zap.Logger
}

// serveFlags are the registry keys bound on this command.
var serveFlags = []string{
	config.FlagAPIListen,
	config.FlagCorpusDir,
	config.FlagProvider,
	config.FlagModel,
	config.FlagBaseURL,
	config.FlagDeadline,
	config.FlagGlobalCap,
	config.FlagCategoryCap,
}

const serveLongDesc string = `Run the vitals API server.

Loads the JSONL health sample corpus, aggregates it into daily statistics,
and serves query, dashboard, and reload endpoints plus an MCP endpoint
at /mcp. Corpus files are watched for changes and reloaded automatically
unless corpus.watch is disabled.`

const serveShortDesc string = "Run the vitals API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			cmder.viper, err = config.InitViper(cmder.configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(cmder.viper, cmd, config.Flags, serveFlags)
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagCorpusDir, &cmder.corpusDir)
	config.AddStringFlag(cmd, config.Flags, config.FlagProvider, &cmder.provider)
	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddStringFlag(cmd, config.Flags, config.FlagBaseURL, &cmder.baseURL)
	config.AddUintFlag(cmd, config.Flags, config.FlagDeadline, &cmder.deadline)
	config.AddUintFlag(cmd, config.Flags, config.FlagGlobalCap, &cmder.globalCap)
	config.AddUintFlag(cmd, config.Flags, config.FlagCategoryCap, &cmder.categoryCap)

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	cfg := c.resolveConfig()

	cfger, err := config.NewConfiger(c.configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	corpusDir := cfger.CorpusDir(cfg)

	orch, store, err := buildPipeline(cfg, corpusDir, c.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Corpus.Watch {
		go func() {
			if err := store.Watch(ctx); err != nil {
				c.logger.Warn("corpus watcher stopped", zap.Error(err))
			}
		}()
	}

	mcpServer, err := mcp.NewServer(mcp.Config{
		Orchestrator: orch,
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	apiServer := api.NewServer(api.Config{
		ListenAddr: cfg.API.Listen,
	}, orch, mcpServer.Handler(), c.logger)

	errChan := make(chan error, 1)
	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		c.logger.Info("received signal, shutting down")
		return apiServer.Shutdown()
	}
}

// resolveConfig reads the effective configuration out of viper, which has
// already merged flags, environment, config file, and defaults.
func (c *ServeCommander) resolveConfig() *config.Config {
	v := c.viper
	return &config.Config{
		Corpus: config.CorpusConfig{
			Dir:   v.GetString("corpus.dir"),
			Watch: v.GetBool("corpus.watch"),
		},
		API: config.APIConfig{
			Listen: v.GetString("api.listen"),
		},
		Summarizer: config.SummarizerConfig{
			Provider:        v.GetString("summarizer.provider"),
			Model:           v.GetString("summarizer.model"),
			BaseURL:         v.GetString("summarizer.base_url"),
			DeadlineSeconds: v.GetUint("summarizer.deadline_seconds"),
		},
		Retrieval: config.RetrievalConfig{
			GlobalCap:   v.GetUint("retrieval.global_cap"),
			CategoryCap: v.GetUint("retrieval.category_cap"),
		},
	}
}

// buildPipeline opens the corpus store and assembles the query orchestrator.
func buildPipeline(cfg *config.Config, corpusDir string, log *zap.Logger) (*pipeline.Orchestrator, *corpus.Store, error) {
	store, err := corpus.Open(corpusDir, log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening corpus: %w", err)
	}

	call, err := summarize.NewCaller(summarize.CallerConfig{
		Provider: cfg.Summarizer.Provider,
		Model:    cfg.Summarizer.Model,
		APIKey:   os.Getenv("VITALS_API_KEY"),
		BaseURL:  cfg.Summarizer.BaseURL,
		Logger:   log,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating summarizer caller: %w", err)
	}

	orch := pipeline.New(pipeline.Options{
		Store:      store,
		Retriever:  retrieve.New(int(cfg.Retrieval.GlobalCap), int(cfg.Retrieval.CategoryCap)),
		Summarizer: summarize.New(call, log),
		Deadline:   cfg.Summarizer.Deadline(),
		Logger:     log,
	})

	return orch, store, nil
}
