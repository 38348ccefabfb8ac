package http

import (
	"net/http"

	"hisab/internal/core"
	"hisab/internal/export"
)

type settingsRequest struct {
	Currency string `json:"currency"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(s.ledger.Settings()).Write(w)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	settings, err := s.ledger.SetCurrency(r.Context(), sanitizeInput(req.Currency))
	if err != nil {
		s.writeServiceError(w, r, "update settings", err)
		return
	}
	NewJSONResponse().JSON(settings).Write(w)
}

func handleCurrencies(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(core.Currencies).Write(w)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	body := export.CSV(s.ledger.Transactions(), s.ledger.Categories())
	NewJSONResponse().
		Header("Content-Disposition", `attachment; filename="`+export.FileName(s.now())+`"`).
		Raw("text/csv; charset=utf-8", []byte(body)).
		Write(w)
}

// handleReset wipes transactions, categories and tags. Settings survive.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.ClearAll(r.Context()); err != nil {
		s.writeServiceError(w, r, "reset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
