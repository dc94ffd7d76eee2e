package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"job-estimator/internal/domain"
)

var (
	ErrEmptyPrompt        = errors.New("prompt is empty")
	ErrEstimateInProgress = errors.New("estimate already in progress")
	ErrCaptureInProgress  = errors.New("capture session already in progress")
)

// CaptureWindow is how long every capture session records for.
const CaptureWindow = 5 * time.Second

// Timer arms a one-shot timer, like time.After.
type Timer func(d time.Duration) <-chan time.Time

type Option func(*Dashboard)

// WithTimer replaces the timer that ends the capture window.
func WithTimer(t Timer) Option {
	return func(d *Dashboard) {
		d.after = t
	}
}

// Dashboard owns the shared view state and runs the estimate and voice
// actions against it. All state changes go through dispatch.
type Dashboard struct {
	chat   ChatCompleter
	stt    SpeechToText
	mic    Microphone
	after  Timer
	logger *zap.Logger

	mu    sync.Mutex
	state domain.State

	work sync.WaitGroup
}

func NewDashboard(
	chat ChatCompleter,
	stt SpeechToText,
	mic Microphone,
	logger *zap.Logger,
	opts ...Option,
) *Dashboard {
	d := &Dashboard{
		chat:   chat,
		stt:    stt,
		mic:    mic,
		after:  time.After,
		logger: logger,
		state:  domain.NewState(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns a snapshot of the view state.
func (d *Dashboard) State() domain.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Wait blocks until every estimate and capture session started so far has
// finished, or until ctx is done.
func (d *Dashboard) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.work.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for in-flight work: %w", ctx.Err())
	}
}

// SetPrompt records a user edit of the prompt field.
func (d *Dashboard) SetPrompt(text string) domain.State {
	return d.dispatch(domain.Event{Kind: domain.EventPromptEdited, Text: text})
}

func (d *Dashboard) dispatch(ev domain.Event) domain.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.apply(ev)
}

// apply requires d.mu to be held.
func (d *Dashboard) apply(ev domain.Event) domain.State {
	d.state = domain.Reduce(d.state, ev)
	d.logger.Debug("state transition",
		zap.String("event", string(ev.Kind)),
		zap.String("capture", string(d.state.Capture)),
		zap.Bool("recording", d.state.Recording),
		zap.Bool("estimating", d.state.Estimating),
	)
	return d.state
}
