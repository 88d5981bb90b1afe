package http

import (
	"log/slog"
	"net/http"
	"strings"

	"scbank/internal/core"
	"scbank/internal/query"
	"scbank/internal/services"
)

// handleTransactions filters the ledger by the query-string criteria and
// returns matches newest first.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := s.resolveSession(w, r); !ok {
		return
	}

	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records := s.filteredTransactions(criteria)
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": s.toTransactionDTOs(records),
		"total":        len(records),
		"criteria":     toCriteriaDTO(criteria),
	})
}

// filteredTransactions runs the filter through the LRU cache.
func (s *Server) filteredTransactions(criteria core.FilterCriteria) []core.Transaction {
	key := criteriaCacheKey(criteria)
	if cached, found := s.filterCache.Get(key); found {
		return append([]core.Transaction(nil), cached...)
	}
	records := query.Filter(s.catalog.Transactions(), criteria)
	s.filterCache.Set(key, records)
	return records
}

// handleExport streams the current filter result as a CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}

	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records := s.filteredTransactions(criteria)
	if len(records) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no transactions match the current filters")
		return
	}

	filename := query.ExportFilename(s.exportPrefix, s.clock.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := query.WriteCSV(w, records); err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
		return
	}

	if err := s.audit.Record(r.Context(), sess.ID, services.AuditExportCreated, filename); err != nil {
		slog.ErrorContext(r.Context(), "Audit record failed", "error", err)
	}
}

// handlePills derives the active-filter pill row for the given criteria.
func (s *Server) handlePills(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := s.resolveSession(w, r); !ok {
		return
	}

	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pills := query.ActivePills(criteria, s.catalog.Accounts())
	writeJSON(w, http.StatusOK, map[string]any{"pills": toPillDTOs(pills)})
}

// handlePillRemove clears one pill's predicate and echoes the updated
// criteria so the client can re-query.
func (s *Server) handlePillRemove(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if _, ok := s.resolveSession(w, r); !ok {
		return
	}

	values := r.URL.Query()
	criteria, err := parseCriteria(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	kind := strings.TrimSpace(values.Get("pill"))
	switch kind {
	case query.PillSearch, query.PillType, query.PillCategory,
		query.PillDateStart, query.PillDateEnd, query.PillAccount:
	default:
		writeError(w, http.StatusBadRequest, "unknown pill kind")
		return
	}

	pill := query.Pill{Kind: kind, Value: strings.TrimSpace(values.Get("value"))}
	updated := pill.Remove(criteria)
	pills := query.ActivePills(updated, s.catalog.Accounts())
	writeJSON(w, http.StatusOK, map[string]any{
		"criteria": toCriteriaDTO(updated),
		"pills":    toPillDTOs(pills),
	})
}

// handleGlobalSearch answers the overlay search across transactions and
// FAQ entries.
func (s *Server) handleGlobalSearch(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := s.resolveSession(w, r); !ok {
		return
	}

	q := r.URL.Query().Get("q")
	res := query.GlobalSearch(s.catalog.Transactions(), s.catalog.Faqs(), q)

	faqs := make([]map[string]string, len(res.Faqs))
	for i, f := range res.Faqs {
		faqs[i] = map[string]string{"question": f.Question, "answer": f.Answer}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": s.toTransactionDTOs(res.Transactions),
		"faqs":         faqs,
	})
}
