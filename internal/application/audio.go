package application

import (
	"context"

	"job-estimator/internal/domain"
)

// Microphone hands out capture handles. Open failing means access was denied
// or no device is present.
type Microphone interface {
	Name() string
	Open(ctx context.Context) (Capture, error)
}

// Capture is an opened input device. Start delivers raw PCM chunks to onChunk
// in arrival order until Stop returns; each chunk is a fresh slice owned by
// the receiver. Close releases the device and is safe after a failed Start.
type Capture interface {
	Format() domain.AudioFormat
	Start(onChunk func([]byte)) error
	Stop() error
	Close() error
}
