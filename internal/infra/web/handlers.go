package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"job-estimator/internal/application"
	"job-estimator/internal/domain"
)

type stateResponse struct {
	Prompt        string `json:"prompt"`
	Response      string `json:"response"`
	Recording     bool   `json:"recording"`
	Estimating    bool   `json:"estimating"`
	Capture       string `json:"capture"`
	CaptureActive bool   `json:"capture_active"`
	VoiceLabel    string `json:"voice_label"`
}

func newStateResponse(s domain.State) stateResponse {
	return stateResponse{
		Prompt:        s.Prompt,
		Response:      s.Response,
		Recording:     s.Recording,
		Estimating:    s.Estimating,
		Capture:       string(s.Capture),
		CaptureActive: s.Capture.Active(),
		VoiceLabel:    s.VoiceLabel(),
	}
}

type promptRequest struct {
	Prompt *string `json:"prompt"`
}

// background detaches work from the request so that a closed browser tab
// never cancels an estimate or a recording already in flight.
func background(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderDashboard(w, s.dashboard.State()); err != nil {
		s.logger.Error("rendering dashboard", zap.Error(err))
		http.Error(w, "rendering dashboard", http.StatusInternalServerError)
	}
}

// syncPrompt stores the posted prompt field, if any, before the form action runs.
func (s *Server) syncPrompt(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	if _, ok := r.PostForm["prompt"]; ok {
		s.dashboard.SetPrompt(r.PostFormValue("prompt"))
	}
	return true
}

func (s *Server) handleEstimateForm(w http.ResponseWriter, r *http.Request) {
	if !s.syncPrompt(w, r) {
		return
	}

	if _, err := s.dashboard.StartEstimate(background(r)); err != nil {
		s.logger.Debug("estimate not started", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleVoiceForm(w http.ResponseWriter, r *http.Request) {
	if !s.syncPrompt(w, r) {
		return
	}

	if _, err := s.dashboard.StartCapture(background(r)); err != nil {
		s.logger.Debug("capture not started", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStateResponse(s.dashboard.State()))
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Prompt == nil {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	writeJSON(w, http.StatusOK, newStateResponse(s.dashboard.SetPrompt(*req.Prompt)))
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	_, err := s.dashboard.StartEstimate(background(r))
	switch {
	case errors.Is(err, application.ErrEmptyPrompt):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, application.ErrEstimateInProgress):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		s.logger.Error("starting estimate", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "starting estimate")
		return
	}

	writeJSON(w, http.StatusAccepted, newStateResponse(s.dashboard.State()))
}

func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	_, err := s.dashboard.StartCapture(background(r))
	switch {
	case errors.Is(err, application.ErrCaptureInProgress):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		s.logger.Error("starting capture", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "starting capture")
		return
	}

	writeJSON(w, http.StatusAccepted, newStateResponse(s.dashboard.State()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.dashboard.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"running":    s.isRunning(),
		"recording":  state.Recording,
		"estimating": state.Estimating,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
