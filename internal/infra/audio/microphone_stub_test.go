//go:build !portaudio

package audio_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"job-estimator/internal/infra/audio"
)

func TestMicrophoneSource_StubDeniesAccess(t *testing.T) {
	mic := audio.NewMicrophoneSource(16000, zaptest.NewLogger(t))

	capture, err := mic.Open(context.Background())
	assert.Nil(t, capture)
	assert.ErrorIs(t, err, audio.ErrMicrophoneUnavailable)
	assert.Equal(t, "microphone", mic.Name())
}
