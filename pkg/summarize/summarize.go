package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/health"
	"github.com/papercomputeco/vitals/pkg/retrieve"
)

// Status reports how a category summary was produced.
type Status string

const (
	StatusOK       Status = "ok"
	StatusNoData   Status = "no_data"
	StatusTimedOut Status = "timed_out"
	StatusErrored  Status = "errored"
)

// Summary is the per-category output of summarization. Text is always
// populated; degraded statuses carry the template fallback instead of
// model output.
type Summary struct {
	Category health.Category `json:"category"`
	Status   Status          `json:"status"`
	Text     string          `json:"text"`
}

// Degraded reports whether the summary fell back from model output.
func (s Summary) Degraded() bool {
	return s.Status != StatusOK && s.Status != StatusNoData
}

// Summarizer turns a retrieved slice into a short natural-language summary
// by prompting a model, falling back to a deterministic template when the
// call fails or the deadline expires.
type Summarizer struct {
	call   CallFunc
	logger *zap.Logger
}

func New(call CallFunc, logger *zap.Logger) *Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{call: call, logger: logger}
}

// Summarize produces the summary for one slice. An empty slice never
// reaches the model. Deadline expiry and call errors both degrade to the
// template fallback rather than failing the request.
func (s *Summarizer) Summarize(ctx context.Context, slice *retrieve.Slice, wantsTrend bool) Summary {
	if slice == nil || slice.Empty() {
		return Summary{
			Category: sliceCategory(slice),
			Status:   StatusNoData,
			Text:     noDataText(sliceCategory(slice)),
		}
	}

	prompt := buildPrompt(slice, wantsTrend)

	text, err := s.call(ctx, prompt)
	if err != nil {
		status := StatusErrored
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			status = StatusTimedOut
		}
		s.logger.Warn("summarization degraded to fallback",
			zap.String("category", string(slice.Category)),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return Summary{
			Category: slice.Category,
			Status:   status,
			Text:     Fallback(slice),
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Summary{
			Category: slice.Category,
			Status:   StatusErrored,
			Text:     Fallback(slice),
		}
	}

	return Summary{
		Category: slice.Category,
		Status:   StatusOK,
		Text:     text,
	}
}

func buildPrompt(slice *retrieve.Slice, wantsTrend bool) string {
	var b strings.Builder
	b.WriteString("You are summarizing personal health metrics for the user. ")
	b.WriteString("Write 2-3 plain sentences describing the data below. ")
	b.WriteString("Mention concrete numbers. Do not give medical advice.\n\n")
	b.WriteString(RenderSlice(slice, wantsTrend))
	return b.String()
}

func sliceCategory(slice *retrieve.Slice) health.Category {
	if slice == nil {
		return ""
	}
	return slice.Category
}

func noDataText(cat health.Category) string {
	name := "health"
	if cat != "" {
		name = strings.ToLower(cat.DisplayName())
	}
	return fmt.Sprintf("No %s data available for the requested period.", name)
}
