package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-estimator/internal/domain"
)

// StartEstimate submits the current prompt in the background. The returned
// channel is closed once Response holds the outcome. A blank prompt is a
// no-op reported as ErrEmptyPrompt; state is left untouched.
func (d *Dashboard) StartEstimate(ctx context.Context) (<-chan struct{}, error) {
	d.mu.Lock()
	prompt := d.state.Prompt
	if domain.IsBlank(prompt) {
		d.mu.Unlock()
		return nil, ErrEmptyPrompt
	}
	if d.state.Estimating {
		d.mu.Unlock()
		return nil, ErrEstimateInProgress
	}
	d.apply(domain.Event{Kind: domain.EventSubmitPrompt})
	d.work.Add(1)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer d.work.Done()
		defer close(done)
		d.runEstimate(ctx, uuid.NewString(), prompt)
	}()

	return done, nil
}

// Estimate submits the current prompt and waits for the outcome.
func (d *Dashboard) Estimate(ctx context.Context) error {
	done, err := d.StartEstimate(ctx)
	if err != nil {
		return err
	}
	<-done
	return nil
}

func (d *Dashboard) runEstimate(ctx context.Context, id, prompt string) {
	logger := d.logger.With(zap.String("estimate_id", id))
	logger.Info("requesting estimate", zap.Int("prompt_chars", len(prompt)))

	text, err := d.chat.Complete(ctx, domain.EstimatePrompt(prompt))
	switch {
	case errors.Is(err, domain.ErrNoChoices):
		logger.Warn("chat completion had no choices")
		text = domain.MsgNoResponse
	case err != nil:
		logger.Error("fetching estimate", zap.Error(err))
		text = domain.MsgEstimateFailed
	default:
		logger.Info("estimate received", zap.Int("chars", len(text)))
	}

	d.dispatch(domain.Event{Kind: domain.EventEstimateResolved, Text: text})
}
