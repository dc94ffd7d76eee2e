package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-estimator/internal/domain"
)

// StartCapture begins a capture session in the background: record for
// CaptureWindow, transcribe, and write the transcript into the prompt. The
// returned channel is closed when the session reaches a terminal phase.
func (d *Dashboard) StartCapture(ctx context.Context) (<-chan struct{}, error) {
	d.mu.Lock()
	if d.state.Capture.Active() {
		d.mu.Unlock()
		return nil, ErrCaptureInProgress
	}
	d.apply(domain.Event{Kind: domain.EventCaptureRequested})
	d.work.Add(1)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer d.work.Done()
		defer close(done)
		d.runCapture(ctx, uuid.NewString())
	}()

	return done, nil
}

// CaptureVoice runs a full capture session and waits for it to finish.
func (d *Dashboard) CaptureVoice(ctx context.Context) error {
	done, err := d.StartCapture(ctx)
	if err != nil {
		return err
	}
	<-done
	return nil
}

func (d *Dashboard) runCapture(ctx context.Context, id string) {
	logger := d.logger.With(
		zap.String("capture_id", id),
		zap.String("microphone", d.mic.Name()),
	)

	clip, ok := d.record(ctx, logger)
	if !ok {
		return
	}

	d.transcribe(ctx, logger, clip)
}

// record holds the device for the capture window and releases it on every
// path out.
func (d *Dashboard) record(ctx context.Context, logger *zap.Logger) ([]byte, bool) {
	capture, err := d.mic.Open(ctx)
	if err != nil {
		logger.Error("accessing microphone", zap.Error(err))
		d.dispatch(domain.Event{Kind: domain.EventCaptureDenied})
		return nil, false
	}

	release := sync.OnceFunc(func() {
		if err := capture.Close(); err != nil {
			logger.Warn("releasing microphone", zap.Error(err))
		}
	})
	defer release()

	format := capture.Format()

	var (
		mu     sync.Mutex
		chunks [][]byte
	)
	onChunk := func(chunk []byte) {
		mu.Lock()
		chunks = append(chunks, chunk)
		mu.Unlock()
	}

	if err := capture.Start(onChunk); err != nil {
		logger.Error("starting capture", zap.Error(err))
		d.dispatch(domain.Event{Kind: domain.EventCaptureDenied})
		return nil, false
	}

	started := time.Now()
	d.dispatch(domain.Event{Kind: domain.EventCaptureStarted})
	logger.Info("capture started", zap.Duration("window", CaptureWindow))

	<-d.after(CaptureWindow)

	stopErr := capture.Stop()
	release()
	d.dispatch(domain.Event{Kind: domain.EventCaptureStopped})

	if stopErr != nil {
		logger.Error("stopping capture", zap.Error(stopErr))
		d.dispatch(domain.Event{Kind: domain.EventTranscriptionFailed, Text: domain.MsgTranscriptionRetry})
		return nil, false
	}

	mu.Lock()
	clip := domain.EncodeWAV(format, chunks)
	count := len(chunks)
	mu.Unlock()

	logger.Info("capture stopped",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("chunks", count),
		zap.Int("clip_bytes", len(clip)),
	)

	return clip, true
}

func (d *Dashboard) transcribe(ctx context.Context, logger *zap.Logger, clip []byte) {
	d.dispatch(domain.Event{Kind: domain.EventTranscriptionStarted})

	text, err := d.stt.Transcribe(ctx, clip)
	switch {
	case err != nil:
		logger.Error("transcribing clip", zap.Error(err))
		d.dispatch(domain.Event{Kind: domain.EventTranscriptionFailed, Text: domain.MsgTranscriptionRetry})
	case text == "":
		logger.Warn("transcription response had no text")
		d.dispatch(domain.Event{Kind: domain.EventTranscriptionFailed, Text: domain.MsgNoTranscription})
	default:
		logger.Info("transcribed", zap.String("text", text))
		d.dispatch(domain.Event{Kind: domain.EventTranscriptionResolved, Text: text})
	}
}
