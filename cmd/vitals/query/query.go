// Package querycmder provides the query command for one-shot health queries
// against the local corpus, without running the API server.
package querycmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/cliui"
	"github.com/papercomputeco/vitals/pkg/config"
	"github.com/papercomputeco/vitals/pkg/corpus"
	"github.com/papercomputeco/vitals/pkg/pipeline"
	"github.com/papercomputeco/vitals/pkg/retrieve"
	"github.com/papercomputeco/vitals/pkg/summarize"
)

type QueryCommander struct {
	provider    string
	model       string
	baseURL     string
	corpusDir   string
	deadline    uint
	globalCap   uint
	categoryCap uint
	jsonOut     bool

	configDir string
	viper     *viper.Viper
}

var queryFlags = []string{
	config.FlagCorpusDir,
	config.FlagProvider,
	config.FlagModel,
	config.FlagBaseURL,
	config.FlagDeadline,
	config.FlagGlobalCap,
	config.FlagCategoryCap,
}

const queryLongDesc string = `Run one health query against the local corpus and print the result.

The query goes through the same classify, retrieve, and summarize pipeline
as the API server. A query that needs no health data prints an empty result.

Examples:
  vitals query "how has my heart rate been this week?"
  vitals query --json "blood pressure trend last month"`

const queryShortDesc string = "Run a one-shot health query"

func NewQueryCmd() *cobra.Command {
	cmder := &QueryCommander{}

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: queryShortDesc,
		Long:  queryLongDesc,
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			var err error
			cmder.viper, err = config.InitViper(cmder.configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(cmder.viper, cmd, config.Flags, queryFlags)
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return cmder.run(strings.Join(args, " "))
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagCorpusDir, &cmder.corpusDir)
	config.AddStringFlag(cmd, config.Flags, config.FlagProvider, &cmder.provider)
	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddStringFlag(cmd, config.Flags, config.FlagBaseURL, &cmder.baseURL)
	config.AddUintFlag(cmd, config.Flags, config.FlagDeadline, &cmder.deadline)
	config.AddUintFlag(cmd, config.Flags, config.FlagGlobalCap, &cmder.globalCap)
	config.AddUintFlag(cmd, config.Flags, config.FlagCategoryCap, &cmder.categoryCap)
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Print the full result as JSON")

	return cmd
}

func (c *QueryCommander) run(query string) error {
	v := c.viper

	cfger, err := config.NewConfiger(c.configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	corpusDir := v.GetString("corpus.dir")
	if corpusDir == "" {
		corpusDir = cfger.CorpusDir(nil)
	}

	// Keep zap output away from the terminal result text.
	log := zap.NewNop()

	var orch *pipeline.Orchestrator
	err = cliui.Step(os.Stderr, "loading corpus", func() error {
		store, err := corpus.Open(corpusDir, log)
		if err != nil {
			return err
		}

		call, err := summarize.NewCaller(summarize.CallerConfig{
			Provider: v.GetString("summarizer.provider"),
			Model:    v.GetString("summarizer.model"),
			APIKey:   os.Getenv("VITALS_API_KEY"),
			BaseURL:  v.GetString("summarizer.base_url"),
			Logger:   log,
		})
		if err != nil {
			return err
		}

		orch = pipeline.New(pipeline.Options{
			Store:      store,
			Retriever:  retrieve.New(v.GetInt("retrieval.global_cap"), v.GetInt("retrieval.category_cap")),
			Summarizer: summarize.New(call, log),
			Deadline:   time.Duration(v.GetUint("summarizer.deadline_seconds")) * time.Second,
			Logger:     log,
		})
		return nil
	})
	if err != nil {
		return err
	}

	var result *pipeline.Result
	err = cliui.Step(os.Stderr, "processing query", func() error {
		result = orch.Process(context.Background(), query, time.Now())
		return nil
	})
	if err != nil {
		return err
	}

	if c.jsonOut {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	return printResult(result)
}

func printResult(result *pipeline.Result) error {
	if len(result.Categories) == 0 || result.ContextText == "" {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No relevant health data for this query."))
		return nil
	}

	var md strings.Builder
	for _, s := range result.Summaries {
		if s.Status == summarize.StatusNoData {
			continue
		}
		fmt.Fprintf(&md, "## %s\n\n%s\n\n", s.Category.DisplayName(), s.Text)
	}

	rendered, err := cliui.RenderMarkdown(md.String())
	if err != nil {
		// Fall back to the raw text if the terminal renderer fails.
		fmt.Println(md.String())
		return nil
	}
	fmt.Print(rendered)

	if len(result.DegradedCategories) > 0 {
		names := make([]string, len(result.DegradedCategories))
		for i, cat := range result.DegradedCategories {
			names[i] = cat.DisplayName()
		}
		fmt.Printf("  %s\n\n", cliui.WarnStyle.Render(
			fmt.Sprintf("Summaries degraded to templates for: %s", strings.Join(names, ", "))))
	}

	return nil
}
