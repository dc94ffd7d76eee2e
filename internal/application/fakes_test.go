package application_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"job-estimator/internal/application"
	"job-estimator/internal/domain"
)

type chatReply struct {
	text string
	err  error
}

type fakeChat struct {
	mu      sync.Mutex
	replies []chatReply
	calls   []string
	block   chan struct{}
}

func (f *fakeChat) Complete(_ context.Context, content string) (string, error) {
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	idx := len(f.calls)
	f.calls = append(f.calls, content)
	if idx >= len(f.replies) {
		return "", errors.New("unexpected chat call")
	}
	return f.replies[idx].text, f.replies[idx].err
}

func (f *fakeChat) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeSTT struct {
	mu    sync.Mutex
	text  string
	err   error
	clips [][]byte
}

func (f *fakeSTT) Transcribe(_ context.Context, clip []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clips = append(f.clips, clip)
	return f.text, f.err
}

func (f *fakeSTT) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clips)
}

type fakeCapture struct {
	mu       sync.Mutex
	chunks   [][]byte
	startErr error
	stopErr  error
	started  time.Time
	stopped  time.Time
	closed   int
	calls    []string
}

func (c *fakeCapture) Format() domain.AudioFormat { return domain.DefaultAudioFormat() }

func (c *fakeCapture) Start(onChunk func([]byte)) error {
	c.mu.Lock()
	c.calls = append(c.calls, "start")
	c.started = time.Now()
	c.mu.Unlock()

	if c.startErr != nil {
		return c.startErr
	}
	for _, chunk := range c.chunks {
		onChunk(append([]byte(nil), chunk...))
	}
	return nil
}

func (c *fakeCapture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "stop")
	c.stopped = time.Now()
	return c.stopErr
}

func (c *fakeCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "close")
	c.closed++
	return nil
}

func (c *fakeCapture) history() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

type fakeMicrophone struct {
	capture *fakeCapture
	openErr error
	onOpen  func()
	opens   int
}

func (m *fakeMicrophone) Name() string { return "fake" }

func (m *fakeMicrophone) Open(_ context.Context) (application.Capture, error) {
	m.opens++
	if m.onOpen != nil {
		m.onOpen()
	}
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.capture, nil
}

// recordingTimer fires immediately and remembers what it was armed with.
type recordingTimer struct {
	mu        sync.Mutex
	durations []time.Duration
}

func (r *recordingTimer) after(d time.Duration) <-chan time.Time {
	r.mu.Lock()
	r.durations = append(r.durations, d)
	r.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

// gateTimer fires when the test closes release.
type gateTimer struct {
	release chan struct{}
}

func (g *gateTimer) after(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	go func() {
		<-g.release
		ch <- time.Now()
	}()
	return ch
}
