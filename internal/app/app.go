// Package app wires configuration, tools, and the stage sequencer into the
// batch operations exposed by the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/shpitdev/cold-outreach-pipeline/internal/config"
	"github.com/shpitdev/cold-outreach-pipeline/internal/dataio"
	"github.com/shpitdev/cold-outreach-pipeline/internal/llm"
	"github.com/shpitdev/cold-outreach-pipeline/internal/mail"
	"github.com/shpitdev/cold-outreach-pipeline/internal/pipeline"
	"github.com/shpitdev/cold-outreach-pipeline/internal/report"
	"github.com/shpitdev/cold-outreach-pipeline/internal/tools"
	"github.com/shpitdev/cold-outreach-pipeline/internal/validate"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/pipeline/worker"
)

// App carries the resolved dependencies for one run. The LLM client may be
// nil, in which case research falls back to its offline heuristics.
type App struct {
	Settings  config.Settings
	Profile   *config.UserProfile
	Templates config.TemplateStore
	Agents    config.AgentConfigs

	LLM    llm.Client
	Mailer mail.Mailer

	// RatePolicy caps draft creation. Zero value means DefaultPolicy.
	RatePolicy mail.Policy

	Clock func() time.Time
	Out   io.Writer
}

func (a *App) ratePolicy() mail.Policy {
	if a.RatePolicy == (mail.Policy{}) {
		return mail.DefaultPolicy
	}
	return a.RatePolicy
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

func (a *App) clock() func() time.Time {
	if a.Clock != nil {
		return a.Clock
	}
	return time.Now
}

func (a *App) buildTools() (*tools.Research, *tools.Matcher, *tools.Writer, *tools.Quality, *tools.Drafter) {
	clock := a.clock()
	research := tools.NewResearch(a.LLM, a.Agents[config.AgentResearcher], clock)
	matcher := tools.NewMatcher(a.Profile)
	writer := tools.NewWriter(a.Templates, a.Settings.SenderName)
	quality := tools.NewQuality()
	limiter := mail.NewLimiter(a.ratePolicy(), clock)
	drafter := tools.NewDrafter(a.Mailer, limiter, clock)
	return research, matcher, writer, quality, drafter
}

// BuildRegistry registers the five stage tools for name-based invocation.
func (a *App) BuildRegistry() *outreach.Registry {
	research, matcher, writer, quality, drafter := a.buildTools()
	r := outreach.NewRegistry()
	r.Register(research)
	r.Register(matcher)
	r.Register(writer)
	r.Register(quality)
	r.Register(drafter)
	return r
}

func (a *App) sequencer() *pipeline.Sequencer {
	research, matcher, writer, quality, drafter := a.buildTools()
	return &pipeline.Sequencer{
		Research:     research,
		Personalizer: matcher,
		Writer:       writer,
		Quality:      quality,
		Drafter:      drafter,
		Clock:        a.clock(),
	}
}

// RunPreview generates emails for the prospect file without creating drafts
// and saves the previews to outputPath.
func (a *App) RunPreview(ctx context.Context, inputPath string, limit int, outputPath string) error {
	if outputPath == "" {
		outputPath = config.DefaultPreviewOutput
	}
	return a.run(ctx, inputPath, limit, outputPath, pipeline.ModePreview)
}

// RunDraft generates emails and creates mail drafts, saving outcomes to
// outputPath.
func (a *App) RunDraft(ctx context.Context, inputPath string, limit int, outputPath string) error {
	if outputPath == "" {
		outputPath = config.DefaultDraftOutput
	}
	return a.run(ctx, inputPath, limit, outputPath, pipeline.ModeDraft)
}

func (a *App) run(ctx context.Context, inputPath string, limit int, outputPath string, mode pipeline.Mode) error {
	prospects, err := dataio.LoadProspects(inputPath, limit)
	if err != nil {
		return err
	}
	if len(prospects) == 0 {
		return fmt.Errorf("no prospects found in %s", inputPath)
	}

	seq := a.sequencer()
	w := a.out()

	// Draft runs pace slightly slower than the minimum draft interval so the
	// drafter's own limiter never rejects mid-batch.
	var rps float64
	if mode == pipeline.ModeDraft {
		if gap := a.ratePolicy().MinInterval; gap > 0 {
			rps = 1 / (gap + time.Second).Seconds()
		}
	}

	// Prospects run one at a time so rate limiting and per-prospect output
	// stay ordered.
	processed, err := worker.ProcessAllWithCallback(ctx, prospects,
		func(ctx context.Context, p outreach.Prospect) (outreach.Result, error) {
			return seq.ProcessProspect(ctx, p, mode), nil
		},
		func(r worker.Result[outreach.Prospect, outreach.Result]) error {
			printResult(w, r.Output)
			return nil
		},
		worker.Options{
			Workers:        1,
			MaxRetries:     a.Settings.MaxRetries,
			RequestTimeout: a.Settings.RequestTimeout,
			RateLimitRPS:   rps,
		})
	if err != nil {
		return err
	}

	results := make([]outreach.Result, 0, len(processed))
	for _, r := range processed {
		results = append(results, r.Output)
	}

	summary := report.Generate(results, string(mode), a.clock()())
	report.Display(w, summary)
	if err := report.Save(outputPath, results, summary); err != nil {
		return err
	}
	fmt.Fprintf(w, "Results saved to %s\n", outputPath)
	return nil
}

// RunValidate checks the prospect file without generating anything.
func (a *App) RunValidate(_ context.Context, inputPath string, limit int) error {
	prospects, err := dataio.LoadProspects(inputPath, limit)
	if err != nil {
		return err
	}
	summary := validate.CheckBatch(prospects)

	w := a.out()
	for i, pr := range summary.ByProspect {
		name := prospects[i].Name
		if name == "" {
			name = prospects[i].Email
		}
		for _, e := range pr.Errors {
			fmt.Fprintf(w, "✗ %s: %s\n", name, e)
		}
		for _, warn := range pr.Warnings {
			fmt.Fprintf(w, "! %s: %s\n", name, warn)
		}
	}
	report.DisplayValidation(w, summary)
	slog.Info("validation complete", "total", summary.Total, "valid", summary.Valid)
	return nil
}

func printResult(w io.Writer, r outreach.Result) {
	if r.Success && r.Email != nil {
		fmt.Fprintf(w, "✓ %s: %s (%s)\n", r.Prospect.Name, r.Email.Subject, r.Email.TemplateType)
		return
	}
	fmt.Fprintf(w, "✗ %s: %s\n", r.Prospect.Name, r.Error)
}
