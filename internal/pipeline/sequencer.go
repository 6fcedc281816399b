// Package pipeline sequences the stage tools over one prospect.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

// Mode selects whether the run stops at a preview or creates mail drafts.
type Mode string

const (
	ModePreview Mode = "preview"
	ModeDraft   Mode = "draft"
)

// Phase names, in execution order.
const (
	PhaseResearch        = "research"
	PhasePersonalization = "personalization"
	PhaseWriting         = "writing"
	PhaseQuality         = "quality"
	PhaseDraftCreation   = "draft_creation"
)

// Sequencer drives the five stages in order over one prospect. Any stage
// failure halts the run for that prospect; the batch moves on.
type Sequencer struct {
	Research     outreach.Tool
	Personalizer outreach.Tool
	Writer       outreach.Tool
	Quality      outreach.Tool
	Drafter      outreach.Tool

	Clock func() time.Time
}

type stage struct {
	phase string
	tool  outreach.Tool
}

// ProcessProspect runs the pipeline for one prospect and returns its result.
// Preview mode skips draft creation entirely.
func (s *Sequencer) ProcessProspect(ctx context.Context, p outreach.Prospect, mode Mode) outreach.Result {
	now := s.Clock
	if now == nil {
		now = time.Now
	}

	ec := outreach.NewContext(p)
	slog.Info("processing prospect", "name", p.Name, "company", p.Company, "mode", string(mode))

	stages := []stage{
		{PhaseResearch, s.Research},
		{PhasePersonalization, s.Personalizer},
		{PhaseWriting, s.Writer},
		{PhaseQuality, s.Quality},
	}
	if mode == ModeDraft {
		stages = append(stages, stage{PhaseDraftCreation, s.Drafter})
	}

	for _, st := range stages {
		res := outreach.Run(ctx, st.tool, ec, nil)
		if !res.Success {
			slog.Warn("stage failed", "phase", st.phase, "err", res.ErrorMessage)
			return outreach.Result{
				Success:     false,
				Prospect:    p,
				Error:       res.ErrorMessage,
				FailedPhase: st.phase,
				Timestamp:   now().Unix(),
				Status:      outreach.StatusError,
			}
		}
	}

	return outreach.Result{
		Success:     true,
		Prospect:    p,
		Email:       ec.EmailDraft,
		DraftResult: ec.SendResult,
		Timestamp:   now().Unix(),
		Status:      outreach.StatusSuccess,
	}
}
