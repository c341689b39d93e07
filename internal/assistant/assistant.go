// Package assistant runs the question pipeline: classify the query, build
// the prompt, make one model call, pull the fenced program out of the
// reply, and run it against the in-memory dataset.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DataBuoy/databuoy-cli/internal/ai"
	"github.com/DataBuoy/databuoy-cli/internal/chart"
	"github.com/DataBuoy/databuoy-cli/internal/dataset"
	"github.com/DataBuoy/databuoy-cli/internal/extract"
	"github.com/DataBuoy/databuoy-cli/internal/interp"
	"github.com/DataBuoy/databuoy-cli/internal/prompt"
	"github.com/DataBuoy/databuoy-cli/internal/utils"
)

// Options configures a single Assistant.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Logger      *slog.Logger
}

// Result is the complete outcome of one query. Answer always holds
// something readable. Output and Figure are nil when the executed program
// produced none. Error is nil on full success; otherwise it holds the
// contained failure and the other fields describe whatever still worked.
type Result struct {
	Answer string       `json:"answer"`
	Output *string      `json:"output,omitempty"`
	Figure *chart.Chart `json:"figure,omitempty"`
	Error  *string      `json:"error,omitempty"`
	Code   string       `json:"code,omitempty"`
}

// Assistant answers natural-language questions about one loaded dataset.
type Assistant struct {
	frame *dataset.Frame
	rt    ai.Runtime
	info  string
	opts  Options
	log   *slog.Logger
}

// New builds an assistant around a prepared dataset and a model runtime.
// The dataset description fed to every prompt is computed once here.
func New(frame *dataset.Frame, rt ai.Runtime, opts Options) *Assistant {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Assistant{
		frame: frame,
		rt:    rt,
		info:  dataset.Info(frame),
		opts:  opts,
		log:   log,
	}
}

// Frame returns the canonical dataset.
func (a *Assistant) Frame() *dataset.Frame { return a.frame }

// Summary returns the precomputed dataset overview.
func (a *Assistant) Summary() dataset.Summary { return dataset.Summarize(a.frame) }

// DatasetInfo returns the dataset description included in every prompt.
func (a *Assistant) DatasetInfo() string { return a.info }

// HandleQuery runs one query end to end. It never returns an error: any
// failure past startup, model call included, is folded into Result.Error
// so a bad turn cannot take down a chat session.
func (a *Assistant) HandleQuery(ctx context.Context, query string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("internal fault: %v", r)
			res = Result{Answer: "Something went wrong while answering this question.", Error: &msg}
		}
	}()

	needsViz := prompt.NeedsVisualization(query)
	p := prompt.Build(query, needsViz, a.info)

	if mi, ok := ai.LookupModel(a.opts.Model); ok && mi.ContextTokens > 0 {
		if n := utils.CountTokens(p); n > mi.ContextTokens {
			a.log.Warn("prompt likely exceeds model context window",
				"model", a.opts.Model, "estimated_tokens", n, "context_tokens", mi.ContextTokens)
		}
	}

	a.log.Debug("sending query", "model", a.opts.Model, "visualization", needsViz)
	resp, err := a.rt.Generate(ctx, ai.GenerateRequest{
		Model:       a.opts.Model,
		Messages:    []ai.Message{{Role: "user", Content: p}},
		MaxTokens:   a.opts.MaxTokens,
		Temperature: a.opts.Temperature,
	})
	if err != nil {
		msg := fmt.Sprintf("model request failed: %v", err)
		a.log.Error("model request failed", "error", err)
		return Result{Answer: "The model request failed, so this question was not answered.", Error: &msg}
	}
	content := resp.Content()
	a.log.Debug("model responded", "request_id", resp.RequestID,
		"prompt_tokens", resp.Usage.PromptTokens, "completion_tokens", resp.Usage.CompletionTokens)
	if cost, ok := ai.EstimateCostUSD(a.opts.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens); ok && cost > 0 {
		a.log.Debug("estimated request cost", "model", a.opts.Model, "usd", cost)
	}

	code := extract.FirstFenced(content, prompt.CodeFence)
	answer := extract.StripFenced(content, prompt.CodeFence)
	if answer == "" {
		answer = content
	}
	if strings.TrimSpace(answer) == "" {
		answer = "The model returned an empty reply for this question."
	}

	output, figure, execErr := interp.Execute(code, a.frame)
	res = Result{Answer: answer, Output: output, Figure: figure, Code: code}
	if execErr != "" {
		res.Error = &execErr
		a.log.Warn("program execution failed", "error", execErr)
	}
	return res
}
