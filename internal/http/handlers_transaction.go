package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pocketledger/internal/core"
)

// dateOnlyLayout is accepted on input alongside full RFC 3339 timestamps;
// responses always carry RFC 3339.
const dateOnlyLayout = "2006-01-02"

type transactionRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Type        string `json:"type"`
}

type transactionPatchRequest struct {
	Amount      *string `json:"amount"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Type        *string `json:"type"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toTransactionResponse(txn core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          txn.ID,
		Amount:      txn.Amount.String(),
		Category:    txn.Category,
		Description: txn.Description,
		Date:        txn.Date.Format(time.RFC3339),
		Type:        string(txn.Type),
		CreatedAt:   txn.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   txn.UpdatedAt.Format(time.RFC3339),
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", errInvalidDate, s)
}

func (req transactionRequest) toDraft() (core.TransactionDraft, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return core.TransactionDraft{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.TransactionDraft{}, err
	}
	typ, err := core.ParseTransactionType(req.Type)
	if err != nil {
		return core.TransactionDraft{}, err
	}
	return core.TransactionDraft{
		Amount:      amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		Type:        typ,
	}, nil
}

func (req transactionPatchRequest) toPatch() (core.TransactionPatch, error) {
	var patch core.TransactionPatch
	if req.Amount != nil {
		amount, err := core.ParseAmount(*req.Amount)
		if err != nil {
			return core.TransactionPatch{}, err
		}
		patch.Amount = &amount
	}
	patch.Category = req.Category
	patch.Description = req.Description
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return core.TransactionPatch{}, err
		}
		patch.Date = &date
	}
	if req.Type != nil {
		typ, err := core.ParseTransactionType(*req.Type)
		if err != nil {
			return core.TransactionPatch{}, err
		}
		patch.Type = &typ
	}
	return patch, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		respondError(w, err)
		return
	}

	txn, err := s.ledger.CreateTransaction(r.Context(), draft)
	if err != nil {
		respondError(w, err)
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, toTransactionResponse(txn))
}

// handleListTransactions lists transactions newest first. Paging via
// limit/offset; from/to (inclusive) switch to a date-range listing.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Has("from") || q.Has("to") {
		s.listTransactionsInRange(w, r)
		return
	}

	limit, err := queryInt(q.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := queryInt(q.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	txns, err := s.ledger.Transactions(r.Context(), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	writeTransactionList(w, txns)
}

func (s *Server) listTransactionsInRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("from") || !q.Has("to") {
		writeError(w, http.StatusBadRequest, "range listing requires both from and to")
		return
	}

	from, err := parseDate(q.Get("from"))
	if err != nil {
		respondError(w, err)
		return
	}
	to, err := parseDate(q.Get("to"))
	if err != nil {
		respondError(w, err)
		return
	}
	// A bare to-date means "through the end of that day".
	if len(q.Get("to")) == len(dateOnlyLayout) {
		to = to.Add(24*time.Hour - time.Second)
	}

	txns, err := s.ledger.TransactionsInRange(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	writeTransactionList(w, txns)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := s.ledger.Transaction(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(txn))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		respondError(w, err)
		return
	}

	txn, err := s.ledger.UpdateTransaction(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		respondError(w, err)
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, toTransactionResponse(txn))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	s.invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}

func writeTransactionList(w http.ResponseWriter, txns []core.Transaction) {
	out := make([]transactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, toTransactionResponse(txn))
	}
	writeJSON(w, http.StatusOK, out)
}

func queryInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return n, nil
}
