//go:build !portaudio
// +build !portaudio

package audio

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"job-estimator/internal/application"
)

var ErrMicrophoneUnavailable = errors.New("microphone source not available: rebuild with -tags portaudio")

// MicrophoneSource stub when portaudio is not available. Every Open is
// reported as a denied device.
type MicrophoneSource struct {
	logger *zap.Logger
}

func NewMicrophoneSource(sampleRate int, logger *zap.Logger) *MicrophoneSource {
	return &MicrophoneSource{logger: logger}
}

func (m *MicrophoneSource) Name() string {
	return "microphone"
}

func (m *MicrophoneSource) Open(_ context.Context) (application.Capture, error) {
	return nil, ErrMicrophoneUnavailable
}
