package handlers

import (
	"errors"
	"net/http"

	"github.com/dvloznov/keep2notion/internal/api/middleware"
	"github.com/dvloznov/keep2notion/internal/expense"
	"github.com/dvloznov/keep2notion/internal/logger"
	"github.com/dvloznov/keep2notion/internal/notionsync"
)

// ExpensesHandler handles the parse, validate and upload endpoints.
type ExpensesHandler struct {
	parser    *expense.Parser
	newClient notionsync.ClientFactory
	defaults  NotionDefaults
}

// NewExpensesHandler creates a new expenses handler.
func NewExpensesHandler(parser *expense.Parser, newClient notionsync.ClientFactory, defaults NotionDefaults) *ExpensesHandler {
	return &ExpensesHandler{
		parser:    parser,
		newClient: newClient,
		defaults:  defaults,
	}
}

// ParseExpenses handles POST /api/parse-expenses
func (h *ExpensesHandler) ParseExpenses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KeepText string `json:"keepText"`
	}

	if !decodeBody(w, r, &req) {
		return
	}

	if req.KeepText == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Keep text is required")
		return
	}

	result, err := h.parser.Parse(r.Context(), req.KeepText)
	if err != nil {
		if errors.Is(err, expense.ErrInvalidText) {
			middleware.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("Failed to parse expenses")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to parse expenses")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"expenses": result.Records,
		"count":    len(result.Records),
		"warnings": result.Warnings,
	})
}

// ValidateExpenses handles POST /api/validate-expenses
func (h *ExpensesHandler) ValidateExpenses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Expenses []expensePayload `json:"expenses"`
	}

	if !decodeBody(w, r, &req) {
		return
	}

	records := toRecords(req.Expenses)
	if records == nil {
		middleware.WriteError(w, http.StatusBadRequest, "Expenses are required")
		return
	}

	report := expense.Validate(records)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"isValid": report.Valid,
		"errors":  report.Errors,
	})
}

// UploadExpenses handles POST /api/upload-expenses
func (h *ExpensesHandler) UploadExpenses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NotionToken string           `json:"notionToken"`
		DatabaseURL string           `json:"databaseUrl"`
		Expenses    []expensePayload `json:"expenses"`
	}

	if !decodeBody(w, r, &req) {
		return
	}

	records := toRecords(req.Expenses)
	token, databaseURL := h.defaults.resolve(req.NotionToken, req.DatabaseURL)
	if token == "" || databaseURL == "" || records == nil {
		middleware.WriteError(w, http.StatusBadRequest, "Notion token, database URL, and expenses are required")
		return
	}

	databaseID, err := notionsync.ExtractDatabaseID(databaseURL)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, invalidDatabaseURLMessage)
		return
	}

	summary := notionsync.UploadRecords(r.Context(), h.newClient(token), databaseID, records, notionsync.UploadOptions{})

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": summary.Message(),
		"results": summary.Results,
		"summary": summary,
	})
}
