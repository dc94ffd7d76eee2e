//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"go.uber.org/zap"

	"job-estimator/internal/application"
	"job-estimator/internal/domain"
)

const framesPerBuffer = 1024

// MicrophoneSource opens the host's default input device through portaudio.
type MicrophoneSource struct {
	sampleRate int
	logger     *zap.Logger
}

func NewMicrophoneSource(sampleRate int, logger *zap.Logger) *MicrophoneSource {
	return &MicrophoneSource{
		sampleRate: sampleRate,
		logger:     logger,
	}
}

func (m *MicrophoneSource) Name() string {
	return "microphone"
}

func (m *MicrophoneSource) Open(_ context.Context) (application.Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	buffer := make([]int16, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, buffer)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening input stream: %w", err)
	}

	format := domain.DefaultAudioFormat()
	format.SampleRate = m.sampleRate

	return &portaudioCapture{
		stream: stream,
		buffer: buffer,
		format: format,
		done:   make(chan struct{}),
		logger: m.logger,
	}, nil
}

type portaudioCapture struct {
	stream *portaudio.Stream
	buffer []int16
	format domain.AudioFormat
	logger *zap.Logger

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  bool
	readErr  error
}

func (c *portaudioCapture) Format() domain.AudioFormat {
	return c.format
}

func (c *portaudioCapture) Start(onChunk func([]byte)) error {
	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}
	c.started = true

	read := func() ([]int16, error) {
		if err := c.stream.Read(); err != nil && !errors.Is(err, portaudio.InputOverflowed) {
			return nil, err
		}
		return c.buffer, nil
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := readLoop(c.done, read, onChunk); err != nil {
			c.logger.Error("reading from stream", zap.Error(err))
			c.readErr = err
		}
	}()

	return nil
}

func (c *portaudioCapture) Stop() error {
	c.stopOnce.Do(func() { close(c.done) })
	c.wg.Wait()

	var errs []error
	if c.readErr != nil {
		errs = append(errs, fmt.Errorf("reading from stream: %w", c.readErr))
		c.readErr = nil
	}
	if c.started {
		if err := c.stream.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stopping stream: %w", err))
		}
		c.started = false
	}
	return errors.Join(errs...)
}

func (c *portaudioCapture) Close() error {
	if err := c.Stop(); err != nil {
		c.logger.Warn("stopping stream before close", zap.Error(err))
	}

	var errs []error
	if err := c.stream.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing stream: %w", err))
	}
	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, fmt.Errorf("terminating portaudio: %w", err))
	}
	return errors.Join(errs...)
}
