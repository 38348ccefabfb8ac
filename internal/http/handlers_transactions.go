package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"hisab/internal/services"
)

// amountField accepts an amount as a JSON string or a JSON number.
type amountField string

func (a *amountField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = amountField(n.String())
	return nil
}

type transactionRequest struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Amount      amountField `json:"amount"`
	CategoryID  string      `json:"categoryId"`
	Type        string      `json:"type"`
}

func (req transactionRequest) input() services.TransactionInput {
	return services.TransactionInput{
		Date:        sanitizeInput(req.Date),
		Description: sanitizeInput(req.Description),
		Amount:      sanitizeInput(string(req.Amount)),
		CategoryID:  sanitizeInput(req.CategoryID),
		Type:        sanitizeInput(req.Type),
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q, err := ParseListQuery(r.URL.Query())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	NewJSONResponse().JSON(s.ledger.ListTransactions(q)).Write(w)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.ledger.Transaction(r.PathValue("id"))
	if err != nil {
		ErrorFor(err).Write(w)
		return
	}
	NewJSONResponse().JSON(tx).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	tx, err := s.ledger.CreateTransaction(r.Context(), req.input())
	if err != nil {
		s.writeServiceError(w, r, "create transaction", err)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).JSON(tx).Write(w)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	tx, err := s.ledger.UpdateTransaction(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		s.writeServiceError(w, r, "update transaction", err)
		return
	}
	NewJSONResponse().JSON(tx).Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, "delete transaction", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError logs failures that are not the client's fault before
// mapping err to a response.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	resp := ErrorFor(err)
	if resp.statusCode >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "Request failed", "operation", op, "error", err)
	}
	resp.Write(w)
}
