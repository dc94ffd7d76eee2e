package domain

// Phase is the lifecycle of a single capture session.
type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseRequestingPermission Phase = "requesting_permission"
	PhaseDenied               Phase = "denied"
	PhaseCapturing            Phase = "capturing"
	PhaseStoppedCapturing     Phase = "stopped_capturing"
	PhaseTranscribing         Phase = "transcribing"
	PhaseTranscribed          Phase = "transcribed"
	PhaseTranscriptionFailed  Phase = "transcription_failed"
)

// Active reports whether a capture session is still running in this phase.
func (p Phase) Active() bool {
	switch p {
	case PhaseRequestingPermission, PhaseCapturing, PhaseStoppedCapturing, PhaseTranscribing:
		return true
	default:
		return false
	}
}

// User-visible literals written to State.Response.
const (
	MsgNoResponse         = "Error: No response from AI."
	MsgEstimateFailed     = "Error generating estimate. Please try again."
	MsgMicrophoneDenied   = "Microphone access denied."
	MsgNoTranscription    = "Error: No transcription available."
	MsgTranscriptionRetry = "Error processing voice input. Please try again."
)

const (
	LabelUseVoice  = "Use Voice"
	LabelRecording = "Recording..."
)

// State is everything the dashboard shows. It is never persisted.
type State struct {
	Prompt     string
	Response   string
	Recording  bool
	Estimating bool
	Capture    Phase
}

func NewState() State {
	return State{Capture: PhaseIdle}
}

func (s State) VoiceLabel() string {
	if s.Recording {
		return LabelRecording
	}
	return LabelUseVoice
}

type EventKind string

const (
	EventPromptEdited          EventKind = "PROMPT_EDITED"
	EventSubmitPrompt          EventKind = "SUBMIT_PROMPT"
	EventEstimateResolved      EventKind = "ESTIMATE_RESOLVED"
	EventCaptureRequested      EventKind = "CAPTURE_REQUESTED"
	EventCaptureDenied         EventKind = "CAPTURE_DENIED"
	EventCaptureStarted        EventKind = "CAPTURE_STARTED"
	EventCaptureStopped        EventKind = "CAPTURE_STOPPED"
	EventTranscriptionStarted  EventKind = "TRANSCRIPTION_STARTED"
	EventTranscriptionResolved EventKind = "TRANSCRIPTION_RESOLVED"
	EventTranscriptionFailed   EventKind = "TRANSCRIPTION_FAILED"
)

// Event is a named transition. Text carries the prompt, the estimate, the
// transcript or the failure message depending on Kind.
type Event struct {
	Kind EventKind
	Text string
}

// Reduce applies ev to s. Writes to Prompt and Response are last-writer-wins.
func Reduce(s State, ev Event) State {
	switch ev.Kind {
	case EventPromptEdited:
		s.Prompt = ev.Text
	case EventSubmitPrompt:
		s.Estimating = true
	case EventEstimateResolved:
		s.Estimating = false
		s.Response = ev.Text
	case EventCaptureRequested:
		s.Recording = true
		s.Capture = PhaseRequestingPermission
	case EventCaptureDenied:
		s.Recording = false
		s.Capture = PhaseDenied
		s.Response = MsgMicrophoneDenied
	case EventCaptureStarted:
		s.Capture = PhaseCapturing
	case EventCaptureStopped:
		s.Recording = false
		s.Capture = PhaseStoppedCapturing
	case EventTranscriptionStarted:
		s.Capture = PhaseTranscribing
	case EventTranscriptionResolved:
		s.Capture = PhaseTranscribed
		s.Prompt = ev.Text
	case EventTranscriptionFailed:
		s.Recording = false
		s.Capture = PhaseTranscriptionFailed
		s.Response = ev.Text
	}
	return s
}
