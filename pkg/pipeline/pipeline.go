// Package pipeline wires classification, retrieval, and summarization into
// a single query entry point. One call fans out per matched category under
// a shared deadline and always comes back with renderable text: degraded
// categories carry template fallbacks instead of failing the request.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/classify"
	"github.com/papercomputeco/vitals/pkg/corpus"
	"github.com/papercomputeco/vitals/pkg/health"
	"github.com/papercomputeco/vitals/pkg/retrieve"
	"github.com/papercomputeco/vitals/pkg/summarize"
	"github.com/papercomputeco/vitals/pkg/utils"
)

// DefaultDeadline bounds one full Process call, covering every category's
// summarization. There is no separate per-category budget.
const DefaultDeadline = 180 * time.Second

// Options configures an Orchestrator.
type Options struct {
	Store      *corpus.Store
	Retriever  *retrieve.Retriever
	Summarizer *summarize.Summarizer
	Deadline   time.Duration
	Logger     *zap.Logger
}

// Result is the complete output for one processed query.
type Result struct {
	RequestID string           `json:"request_id"`
	Query     string           `json:"query"`
	Range     health.TimeRange `json:"range"`

	// Categories lists the matched categories in stable order. Empty means
	// the query needed no health data.
	Categories []health.Category `json:"categories"`

	// ContextText is the assembled summary block, one part per matched
	// category. Categories without data in range contribute their no-data
	// fallback text. Empty only when no category matched.
	ContextText string `json:"context_text"`

	Summaries []summarize.Summary `json:"summaries"`

	// DegradedCategories lists categories whose summary fell back to a
	// template because the model call timed out or errored.
	DegradedCategories []health.Category `json:"degraded_categories"`

	// TruncatedCategories lists categories that lost in-range entries to
	// retrieval caps.
	TruncatedCategories []health.Category `json:"truncated_categories"`

	TotalItems int   `json:"total_items"`
	ElapsedMS  int64 `json:"elapsed_ms"`
}

// Orchestrator runs queries end to end against the current corpus snapshot.
type Orchestrator struct {
	store      *corpus.Store
	retriever  *retrieve.Retriever
	summarizer *summarize.Summarizer
	deadline   time.Duration
	logger     *zap.Logger
}

func New(opts Options) *Orchestrator {
	deadline := opts.Deadline
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	retriever := opts.Retriever
	if retriever == nil {
		retriever = retrieve.New(0, 0)
	}
	return &Orchestrator{
		store:      opts.Store,
		retriever:  retriever,
		summarizer: opts.Summarizer,
		deadline:   deadline,
		logger:     logger,
	}
}

// Process runs one query: classify, retrieve against the current snapshot,
// then summarize every matched category concurrently under the shared
// deadline. A query that matches no category returns a valid empty Result.
func (o *Orchestrator) Process(ctx context.Context, query string, now time.Time) *Result {
	start := time.Now()
	requestID := uuid.NewString()

	intent := classify.Classify(query, now)

	result := &Result{
		RequestID:  requestID,
		Query:      query,
		Range:      intent.Range,
		Categories: intent.Categories,
	}

	o.logger.Info("query classified",
		zap.String("request_id", requestID),
		zap.String("query", utils.Truncate(query, 120)),
		zap.Int("categories", len(intent.Categories)),
		zap.Time("range_start", intent.Range.Start),
		zap.Time("range_end", intent.Range.End),
		zap.Bool("wants_trend", intent.WantsTrend),
	)

	if len(intent.Categories) == 0 {
		result.ElapsedMS = time.Since(start).Milliseconds()
		return result
	}

	state := o.store.State()
	if state == nil || state.Aggregates == nil {
		result.ElapsedMS = time.Since(start).Milliseconds()
		return result
	}

	retrieved := o.retriever.Retrieve(intent, state.Aggregates)
	result.TotalItems = retrieved.TotalItems
	result.TruncatedCategories = retrieved.Truncated

	o.logger.Info("retrieval complete",
		zap.String("request_id", requestID),
		zap.Int("total_items", retrieved.TotalItems),
		zap.Int("truncated_categories", len(retrieved.Truncated)),
	)

	result.Summaries = o.summarizeAll(ctx, intent, retrieved)

	var parts []string
	for _, s := range result.Summaries {
		if s.Degraded() {
			result.DegradedCategories = append(result.DegradedCategories, s.Category)
		}
		parts = append(parts, s.Text)
	}
	result.ContextText = strings.Join(parts, "\n\n")
	elapsed := time.Since(start)
	result.ElapsedMS = elapsed.Milliseconds()

	o.logger.Info("query processed",
		zap.String("request_id", requestID),
		zap.Int("summaries", len(result.Summaries)),
		zap.Int("degraded", len(result.DegradedCategories)),
		zap.Duration("elapsed", elapsed),
	)

	return result
}

// summarizeAll fans out one goroutine per matched category under the shared
// deadline. A summarizer that outlives the deadline has its result discarded
// and the category degrades to the template fallback, so one stalled call
// never holds the whole request.
func (o *Orchestrator) summarizeAll(ctx context.Context, intent classify.Intent, retrieved *retrieve.Result) []summarize.Summary {
	ctx, cancel := context.WithTimeout(ctx, o.deadline)
	defer cancel()

	summaries := make([]summarize.Summary, len(intent.Categories))

	var wg sync.WaitGroup
	for i, cat := range intent.Categories {
		wg.Add(1)
		go func(i int, cat health.Category) {
			defer wg.Done()
			slice := retrieved.Slices[cat]

			done := make(chan summarize.Summary, 1)
			go func() {
				done <- o.summarizer.Summarize(ctx, slice, intent.WantsTrend)
			}()

			select {
			case s := <-done:
				summaries[i] = s
			case <-ctx.Done():
				summaries[i] = summarize.Summary{
					Category: cat,
					Status:   summarize.StatusTimedOut,
					Text:     summarize.Fallback(slice),
				}
			}
		}(i, cat)
	}
	wg.Wait()

	return summaries
}

// Dashboard returns per-category daily stats for the trailing window,
// straight from the current aggregate snapshot.
func (o *Orchestrator) Dashboard(days int, now time.Time) map[health.Category][]health.DailyStat {
	state := o.store.State()
	if state == nil || state.Aggregates == nil {
		return map[health.Category][]health.DailyStat{}
	}
	if days <= 0 {
		days = 7
	}
	return state.Aggregates.Window(health.NewTimeRange(now, days))
}

// Reload forces a corpus reload and reports the freshly loaded state.
func (o *Orchestrator) Reload() (*corpus.State, error) {
	return o.store.Reload()
}
