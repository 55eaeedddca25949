package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amishk599/replydraft/internal/model"
	"github.com/amishk599/replydraft/internal/prompt"
)

// Screen reports whether a request is worth sending upstream.
type Screen interface {
	Match(req model.GenerateRequest) bool
}

// Drafter turns one recruiter message into one drafted reply. It holds only
// immutable state and is safe for concurrent use.
type Drafter struct {
	profile  model.Profile
	provider Provider
	screen   Screen
	logger   *slog.Logger
}

// NewDrafter wires a drafter. screen may be nil, in which case every request
// goes upstream.
func NewDrafter(profile model.Profile, provider Provider, screen Screen, logger *slog.Logger) *Drafter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Drafter{
		profile:  profile,
		provider: provider,
		screen:   screen,
		logger:   logger,
	}
}

// Prompt renders the prompt the drafter would send for req.
func (d *Drafter) Prompt(req model.GenerateRequest) (string, error) {
	return prompt.Build(d.profile, req)
}

// Draft builds the prompt, delegates generation and classifies the result.
// Upstream failures come back wrapping model.ErrUpstream; no partial
// response is ever returned alongside an error.
func (d *Drafter) Draft(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	if d.screen != nil && !d.screen.Match(req) {
		d.logger.Debug("message screened out locally", "message_len", len(req.Message))
		return model.NewResponse(model.SkipSentinel), nil
	}

	p, err := d.Prompt(req)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	d.logger.Debug("sending prompt", "prompt_version", prompt.Version, "prompt_len", len(p))

	raw, err := d.provider.Complete(ctx, p)
	if err != nil {
		return model.GenerateResponse{}, fmt.Errorf("draft reply: %w", err)
	}

	resp := model.NewResponse(raw)
	d.logger.Debug("draft ready", "reason", resp.Reason, "reply_len", len(resp.Reply))
	return resp, nil
}
