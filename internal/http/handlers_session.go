package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"scbank/internal/services"
	"scbank/internal/session"
)

type sessionResponse struct {
	Token    string           `json:"token,omitempty"`
	Snapshot session.Snapshot `json:"snapshot"`
}

// handleSession creates a session (POST) or reports its current state (GET).
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		sess, token, err := s.sessions.Begin()
		if err != nil {
			slog.ErrorContext(r.Context(), "Session creation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create session")
			return
		}
		if err := s.audit.Record(r.Context(), sess.ID, services.AuditSessionStarted, ""); err != nil {
			slog.ErrorContext(r.Context(), "Audit record failed", "error", err)
		}
		writeJSON(w, http.StatusCreated, sessionResponse{
			Token:    token,
			Snapshot: sess.Machine.Snapshot(),
		})
	case http.MethodGet:
		sess, ok := s.resolveSession(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Snapshot: sess.Machine.Snapshot()})
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleRequestLogin(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	sess.Machine.RequestLogin()
	writeJSON(w, http.StatusOK, sessionResponse{Snapshot: sess.Machine.Snapshot()})
}

func (s *Server) handleCancelLogin(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	sess.Machine.CancelLogin()
	writeJSON(w, http.StatusOK, sessionResponse{Snapshot: sess.Machine.Snapshot()})
}

func (s *Server) handleSubmitCredentials(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := sess.Machine.SubmitCredentials(sanitizeInput(req.Email), req.Password)
	if errors.Is(err, session.ErrEmptyCredentials) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if err := s.audit.Record(r.Context(), sess.ID, services.AuditLoginSucceeded, ""); err != nil {
		slog.ErrorContext(r.Context(), "Audit record failed", "error", err)
	}
	writeJSON(w, http.StatusOK, sessionResponse{Snapshot: sess.Machine.Snapshot()})
}

func (s *Server) handleBiometricStart(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	sess.Machine.StartBiometricScan()
	writeJSON(w, http.StatusOK, sessionResponse{Snapshot: sess.Machine.Snapshot()})
}

func (s *Server) handleBiometricCancel(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	sess.Machine.CancelBiometricScan()
	writeJSON(w, http.StatusOK, sessionResponse{Snapshot: sess.Machine.Snapshot()})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	sess.Machine.RequestLogout()
	if err := s.audit.Record(r.Context(), sess.ID, services.AuditLogout, ""); err != nil {
		slog.ErrorContext(r.Context(), "Audit record failed", "error", err)
	}
	writeJSON(w, http.StatusOK, sessionResponse{Snapshot: sess.Machine.Snapshot()})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}

	var req struct {
		View string `json:"view"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var nav session.Navigator = sess.Machine
	err := nav.GoTo(session.View(req.View))
	switch {
	case errors.Is(err, session.ErrUnknownView):
		writeError(w, http.StatusUnprocessableEntity, "unknown view")
		return
	case errors.Is(err, session.ErrNotAuthenticated):
		writeError(w, http.StatusConflict, "not on the dashboard")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "navigation failed")
		return
	}
	if err := s.audit.Record(r.Context(), sess.ID, services.AuditViewOpened, req.View); err != nil {
		slog.ErrorContext(r.Context(), "Audit record failed", "error", err)
	}
	writeJSON(w, http.StatusOK, sessionResponse{Snapshot: sess.Machine.Snapshot()})
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	var nav session.Navigator = sess.Machine
	nav.Back()
	writeJSON(w, http.StatusOK, sessionResponse{Snapshot: sess.Machine.Snapshot()})
}
