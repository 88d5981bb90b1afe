package http

import (
	"net/http"
	"strconv"
	"time"

	"scbank/internal/services"
)

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := s.resolveSession(w, r); !ok {
		return
	}
	accounts := s.catalog.Accounts()
	dtos := make([]accountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = toAccountDTO(a)
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": dtos})
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := s.resolveSession(w, r); !ok {
		return
	}
	contacts := s.catalog.Contacts()
	out := make([]map[string]string, len(contacts))
	for i, c := range contacts {
		out[i] = map[string]string{"id": c.ID, "name": c.Name, "avatarUrl": c.AvatarURL}
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": out})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := s.resolveSession(w, r); !ok {
		return
	}
	names := s.catalog.Categories()
	out := make([]map[string]string, len(names))
	for i, name := range names {
		out[i] = map[string]string{"name": name, "icon": s.catalog.IconFor(name)}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) handleFaqs(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := s.resolveSession(w, r); !ok {
		return
	}
	faqs := s.catalog.Faqs()
	out := make([]map[string]string, len(faqs))
	for i, f := range faqs {
		out[i] = map[string]string{"question": f.Question, "answer": f.Answer}
	}
	writeJSON(w, http.StatusOK, map[string]any{"faqs": out})
}

// handleRecurringPayments lists the scheduled payments with their next
// projected charge dates.
func (s *Server) handleRecurringPayments(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := s.resolveSession(w, r); !ok {
		return
	}

	upcoming := 3
	if v := r.URL.Query().Get("upcoming"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 12 {
			upcoming = n
		}
	}

	now := s.clock.Now()
	payments := s.catalog.RecurringPayments()
	out := make([]map[string]any, 0, len(payments))
	for _, p := range payments {
		entry := map[string]any{
			"id":        p.ID,
			"recipient": p.Recipient,
			"amount":    toMoneyDTO(p.Amount),
			"frequency": string(p.Frequency),
			"nextDate":  p.NextDate.UTC().Format(time.RFC3339),
			"category":  p.Category,
		}
		if dates, err := services.UpcomingCharges(p, now, upcoming); err == nil {
			formatted := make([]string, len(dates))
			for i, d := range dates {
				formatted[i] = d.UTC().Format("2006-01-02")
			}
			entry["upcoming"] = formatted
		}
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{"recurringPayments": out})
}

// handleReceipts returns the session's receipts, newest first.
func (s *Server) handleReceipts(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	receipts := sess.Machine.Receipts()
	dtos := make([]receiptDTO, len(receipts))
	for i, rc := range receipts {
		dtos[i] = toReceiptDTO(rc)
	}
	writeJSON(w, http.StatusOK, map[string]any{"receipts": dtos})
}
