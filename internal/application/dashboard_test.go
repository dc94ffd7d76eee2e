package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"job-estimator/internal/application"
	"job-estimator/internal/domain"
)

func newDashboard(t *testing.T, chat *fakeChat, stt *fakeSTT, mic *fakeMicrophone, opts ...application.Option) *application.Dashboard {
	t.Helper()
	if chat == nil {
		chat = &fakeChat{}
	}
	if stt == nil {
		stt = &fakeSTT{}
	}
	if mic == nil {
		mic = &fakeMicrophone{capture: &fakeCapture{}}
	}
	return application.NewDashboard(chat, stt, mic, zaptest.NewLogger(t), opts...)
}

func TestEstimate_BlankPromptIssuesNoRequest(t *testing.T) {
	chat := &fakeChat{replies: []chatReply{{text: "seed response"}}}
	d := newDashboard(t, chat, nil, nil)

	d.SetPrompt("seed")
	require.NoError(t, d.Estimate(context.Background()))
	require.Equal(t, 1, chat.callCount())

	for _, prompt := range []string{"", " ", "\t", "\n  \t"} {
		d.SetPrompt(prompt)
		err := d.Estimate(context.Background())

		assert.ErrorIs(t, err, application.ErrEmptyPrompt, "prompt %q", prompt)
		assert.Equal(t, "seed response", d.State().Response, "prompt %q", prompt)
		assert.False(t, d.State().Estimating)
	}

	assert.Equal(t, 1, chat.callCount())
}

func TestEstimate_FirstChoiceVerbatim(t *testing.T) {
	reply := "  Labor: $400\nMaterials: $250\nTotal: $650  "
	chat := &fakeChat{replies: []chatReply{{text: reply}}}
	d := newDashboard(t, chat, nil, nil)

	d.SetPrompt("replace kitchen faucet")
	require.NoError(t, d.Estimate(context.Background()))

	assert.Equal(t, reply, d.State().Response)
	assert.False(t, d.State().Estimating)
	require.Len(t, chat.calls, 1)
	assert.Equal(t, domain.EstimatePrompt("replace kitchen faucet"), chat.calls[0])
}

func TestEstimate_NoChoices(t *testing.T) {
	chat := &fakeChat{replies: []chatReply{{err: domain.ErrNoChoices}}}
	d := newDashboard(t, chat, nil, nil)

	d.SetPrompt("drywall patch")
	require.NoError(t, d.Estimate(context.Background()))

	assert.Equal(t, "Error: No response from AI.", d.State().Response)
}

func TestEstimate_TransportFailureLeavesRecordingAlone(t *testing.T) {
	chat := &fakeChat{replies: []chatReply{{err: errors.New("dial tcp: connection refused")}}}
	gate := &gateTimer{release: make(chan struct{})}
	mic := &fakeMicrophone{capture: &fakeCapture{}}
	d := newDashboard(t, chat, &fakeSTT{text: "ok"}, mic, application.WithTimer(gate.after))

	captureDone, err := d.StartCapture(context.Background())
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return d.State().Capture == domain.PhaseCapturing
	}, time.Second, 5*time.Millisecond)

	d.SetPrompt("fence painting")
	require.NoError(t, d.Estimate(context.Background()))

	assert.Equal(t, "Error generating estimate. Please try again.", d.State().Response)
	assert.True(t, d.State().Recording)

	close(gate.release)
	<-captureDone
	assert.False(t, d.State().Recording)
}

func TestEstimate_SequentialCallsLastWriterWins(t *testing.T) {
	chat := &fakeChat{replies: []chatReply{{text: "first estimate"}, {text: "second estimate"}}}
	d := newDashboard(t, chat, nil, nil)

	d.SetPrompt("gutter cleaning")
	require.NoError(t, d.Estimate(context.Background()))
	require.NoError(t, d.Estimate(context.Background()))

	require.Len(t, chat.calls, 2)
	assert.Equal(t, chat.calls[0], chat.calls[1])
	assert.Equal(t, "second estimate", d.State().Response)
}

func TestEstimate_RejectsOverlappingRequest(t *testing.T) {
	chat := &fakeChat{
		replies: []chatReply{{text: "done"}},
		block:   make(chan struct{}),
	}
	d := newDashboard(t, chat, nil, nil)
	d.SetPrompt("roof inspection")

	done, err := d.StartEstimate(context.Background())
	require.NoError(t, err)
	assert.True(t, d.State().Estimating)

	_, err = d.StartEstimate(context.Background())
	assert.ErrorIs(t, err, application.ErrEstimateInProgress)

	close(chat.block)
	<-done

	assert.Equal(t, "done", d.State().Response)
	assert.Equal(t, 1, chat.callCount())
}
