package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"scbank/internal/assistant"
	"scbank/internal/core"
	"scbank/internal/services"
	"scbank/internal/settings"
)

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}

	var req struct {
		FromAccount string `json:"fromAccount"`
		ContactName string `json:"contactName"`
		AmountCents int64  `json:"amountCents"`
		Note        string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := s.transfers.Transfer(r.Context(), sess.Machine, services.TransferRequest{
		SessionID:   sess.ID,
		FromAccount: strings.TrimSpace(req.FromAccount),
		ContactName: sanitizeInput(req.ContactName),
		AmountCents: req.AmountCents,
		Note:        sanitizeInput(req.Note),
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, core.ErrUnknownAccount) || errors.Is(err, core.ErrUnknownContact) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"receipt": toReceiptDTO(receipt)})
}

func (s *Server) handleDonation(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}

	var req struct {
		CharityName string `json:"charityName"`
		AmountCents int64  `json:"amountCents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := s.transfers.Donate(r.Context(), sess.Machine, services.DonationRequest{
		SessionID:   sess.ID,
		CharityName: sanitizeInput(req.CharityName),
		AmountCents: req.AmountCents,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"receipt": toReceiptDTO(receipt)})
}

// handleSettings reads (GET) or updates (PUT) the preference store.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := s.resolveSession(w, r); !ok {
			return
		}
		writeJSON(w, http.StatusOK, s.settings.Get())
	case http.MethodPut:
		sess, ok := s.resolveSession(w, r)
		if !ok {
			return
		}
		var req settings.Settings
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		updated, err := s.settings.Update(r.Context(), func(settings.Settings) settings.Settings {
			return req
		})
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := s.audit.Record(r.Context(), sess.ID, services.AuditSettingsSaved, string(updated.Theme)); err != nil {
			slog.ErrorContext(r.Context(), "Audit record failed", "error", err)
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleAssistant executes an explicit command, or routes a free-form
// utterance through the model first when a router is configured.
func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Utterance string            `json:"utterance"`
		Command   string            `json:"command"`
		Args      map[string]string `json:"args"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	intent := assistant.Intent{Command: req.Command, Args: req.Args}
	if intent.Args == nil {
		intent.Args = map[string]string{}
	}

	if req.Command == "" {
		if s.router == nil {
			writeError(w, http.StatusNotImplemented, "utterance routing is not configured; send an explicit command")
			return
		}
		routed, err := s.router.Route(r.Context(), sanitizeInput(req.Utterance))
		if err != nil {
			slog.ErrorContext(r.Context(), "Utterance routing failed", "error", err)
			writeError(w, http.StatusBadGateway, "could not understand the request")
			return
		}
		intent = routed
	}

	result := s.assist.Execute(r.Context(), sess.Machine, sess.ID, intent)
	writeJSON(w, http.StatusOK, result)
}
