package handlers

import (
	"net/http"

	"github.com/dvloznov/keep2notion/internal/api/middleware"
	"github.com/dvloznov/keep2notion/internal/logger"
	"github.com/dvloznov/keep2notion/internal/notionsync"
)

const invalidDatabaseURLMessage = "Invalid Notion database URL. Please check the URL format."

// NotionHandler handles Notion connection endpoints.
type NotionHandler struct {
	newClient notionsync.ClientFactory
	defaults  NotionDefaults
}

// NewNotionHandler creates a new Notion handler.
func NewNotionHandler(newClient notionsync.ClientFactory, defaults NotionDefaults) *NotionHandler {
	return &NotionHandler{
		newClient: newClient,
		defaults:  defaults,
	}
}

// TestNotion handles POST /api/test-notion
func (h *NotionHandler) TestNotion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NotionToken string `json:"notionToken"`
		DatabaseURL string `json:"databaseUrl"`
	}

	if !decodeBody(w, r, &req) {
		return
	}

	token, databaseURL := h.defaults.resolve(req.NotionToken, req.DatabaseURL)
	if token == "" || databaseURL == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Notion token and database URL are required")
		return
	}

	databaseID, err := notionsync.ExtractDatabaseID(databaseURL)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, invalidDatabaseURLMessage)
		return
	}

	ctx := r.Context()
	log := logger.FromContext(ctx)

	info, err := notionsync.DescribeDatabase(ctx, h.newClient(token), databaseID)
	if err != nil {
		log.Warn().Err(err).Str("database_id", databaseID).Msg("Notion connection test failed")
		middleware.WriteError(w, http.StatusBadRequest, "Failed to connect to Notion database")
		return
	}

	log.Info().
		Str("database_id", databaseID).
		Str("database_name", info.Title).
		Msg("Connected to Notion database")

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"message":        "Successfully connected to Notion database!",
		"databaseName":   info.Title,
		"schema":         info.Schema,
		"schemaProblems": notionsync.SchemaProblems(info),
	})
}
