// Package generator runs the generation-and-validation pipeline: build
// a prompt, call the model, sanitize, gate, and retry with corrective
// feedback until a candidate passes or attempts are exhausted. On
// exhaustion the deterministic fallback template is substituted, so a
// caller never receives a blank or broken page because of bad model
// output.
package generator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/your-org/launchpage/internal/asset"
	"github.com/your-org/launchpage/internal/brief"
	"github.com/your-org/launchpage/internal/fallback"
	"github.com/your-org/launchpage/internal/gate"
	"github.com/your-org/launchpage/internal/llm"
	"github.com/your-org/launchpage/internal/prompt"
	"github.com/your-org/launchpage/internal/sanitize"
)

// DefaultMaxAttempts bounds the retry loop when no limit is configured.
const DefaultMaxAttempts = 3

// Attempt records one cycle of the retry loop. Attempts are append-only
// history within a single request and are never persisted beyond it.
type Attempt struct {
	Index     int
	Prompt    prompt.Prompt
	Raw       string
	Candidate string
	Passed    bool
	Reason    string
}

// Result is the pipeline's outcome for one brief.
type Result struct {
	// Document is the final HTML, with placeholder tokens resolved.
	Document string
	// Fallback reports that attempts were exhausted and the
	// deterministic template was substituted.
	Fallback bool
	// Attempts is the per-attempt history, in order.
	Attempts []Attempt
}

// Config holds the pipeline's read-only settings.
type Config struct {
	MaxAttempts int
}

// Pipeline is the authoritative generation pipeline. Safe for
// concurrent use: each Generate call keeps its own attempt state.
type Pipeline struct {
	client llm.Client
	cfg    Config
	logger *zap.Logger
}

// NewPipeline creates a pipeline around a model collaborator.
func NewPipeline(client llm.Client, cfg Config, logger *zap.Logger) (*Pipeline, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{client: client, cfg: cfg, logger: logger}, nil
}

// Generate runs the full pipeline for a normalized brief.
//
// Content-quality failures are retried with a revision prompt carrying
// the rejection reason; a transport-level failure from the model call
// is not caught here and propagates to the caller.
func (p *Pipeline) Generate(ctx context.Context, b brief.Brief) (*Result, error) {
	result := &Result{}

	var chosen string
	lastReason := ""

	for index := 1; index <= p.cfg.MaxAttempts; index++ {
		var pr prompt.Prompt
		if index == 1 {
			pr = prompt.BuildInitial(b)
		} else {
			pr = prompt.BuildRevision(b, lastReason)
		}

		raw, err := p.client.Complete(ctx, pr)
		if err != nil {
			return nil, fmt.Errorf("generation attempt %d: %w", index, err)
		}

		candidate := sanitize.Sanitize(raw)
		outcome := gate.Evaluate(candidate)

		result.Attempts = append(result.Attempts, Attempt{
			Index:     index,
			Prompt:    pr,
			Raw:       raw,
			Candidate: candidate,
			Passed:    outcome.Passed,
			Reason:    outcome.Reason,
		})

		if outcome.Passed {
			p.logger.Info("Candidate accepted",
				zap.String("project", b.Name),
				zap.Int("attempt", index),
			)
			chosen = candidate
			break
		}

		lastReason = outcome.Reason
		p.logger.Warn("Candidate rejected",
			zap.String("project", b.Name),
			zap.Int("attempt", index),
			zap.String("reason", outcome.Reason),
		)
	}

	if chosen == "" {
		p.logger.Warn("Attempts exhausted, substituting fallback template",
			zap.String("project", b.Name),
			zap.Int("max_attempts", p.cfg.MaxAttempts),
		)
		doc, err := fallback.Render(b)
		if err != nil {
			return nil, fmt.Errorf("fallback render: %w", err)
		}
		chosen = doc
		result.Fallback = true
	}

	result.Document = asset.Inject(chosen, b.LogoAsset, b.BackgroundAsset)

	// Defensive re-check: injection could in theory reintroduce a
	// banned pattern through asset data. Force the fallback if so.
	if recheck := gate.CheckStructure(result.Document); !recheck.Passed {
		p.logger.Error("Injected document failed structural re-check, forcing fallback",
			zap.String("project", b.Name),
			zap.String("reason", recheck.Reason),
		)
		doc, err := fallback.Render(b)
		if err != nil {
			return nil, fmt.Errorf("fallback render: %w", err)
		}
		result.Document = asset.Inject(doc, b.LogoAsset, b.BackgroundAsset)
		result.Fallback = true
	}

	return result, nil
}
