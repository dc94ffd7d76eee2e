package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"job-estimator/internal/application"
	"job-estimator/internal/domain"
)

const replayFrames = 1024

// FileSource stands in for a microphone by replaying a recorded clip at real
// time. A WAV file is decoded; anything else is taken as 16 kHz mono PCM.
type FileSource struct {
	path   string
	logger *zap.Logger
}

func NewFileSource(path string, logger *zap.Logger) *FileSource {
	return &FileSource{
		path:   path,
		logger: logger,
	}
}

func (f *FileSource) Name() string {
	return "file"
}

func (f *FileSource) Open(_ context.Context) (application.Capture, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading audio file: %w", err)
	}

	format, pcm, err := domain.DecodeWAV(data)
	switch {
	case errors.Is(err, domain.ErrNotWAV):
		format, pcm = domain.DefaultAudioFormat(), data
	case err != nil:
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}

	if format.SampleRate <= 0 || format.Channels <= 0 || format.BitDepth <= 0 {
		return nil, fmt.Errorf("unsupported format in %s: %+v", f.path, format)
	}

	f.logger.Debug("replaying audio file",
		zap.String("path", f.path),
		zap.Int("sample_rate", format.SampleRate),
		zap.Int("pcm_bytes", len(pcm)),
	)

	return &fileCapture{
		pcm:    pcm,
		format: format,
		done:   make(chan struct{}),
	}, nil
}

type fileCapture struct {
	pcm    []byte
	format domain.AudioFormat

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func (c *fileCapture) Format() domain.AudioFormat {
	return c.format
}

func (c *fileCapture) Start(onChunk func([]byte)) error {
	chunkSize := replayFrames * c.format.Channels * c.format.BitDepth / 8
	interval := time.Duration(replayFrames) * time.Second / time.Duration(c.format.SampleRate)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for off := 0; off < len(c.pcm); off += chunkSize {
			end := min(off+chunkSize, len(c.pcm))
			onChunk(append([]byte(nil), c.pcm[off:end]...))

			select {
			case <-c.done:
				return
			case <-ticker.C:
			}
		}
	}()

	return nil
}

func (c *fileCapture) Stop() error {
	c.stopOnce.Do(func() { close(c.done) })
	c.wg.Wait()
	return nil
}

func (c *fileCapture) Close() error {
	return c.Stop()
}
