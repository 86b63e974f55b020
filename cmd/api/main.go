package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/keep2notion/internal/api/handlers"
	"github.com/dvloznov/keep2notion/internal/api/middleware"
	"github.com/dvloznov/keep2notion/internal/config"
	"github.com/dvloznov/keep2notion/internal/expense"
	"github.com/dvloznov/keep2notion/internal/logger"
	"github.com/dvloznov/keep2notion/internal/notionsync"
	"github.com/shopspring/decimal"
)

// maxRequestBody bounds pasted notes and expense batches.
const maxRequestBody = 5 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New()
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.NewFromConfig(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	// The UI expects amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.NotionToken == "" || cfg.NotionDatabaseURL == "" {
		log.Info().Msg("No default Notion credentials configured - requests must supply them")
	}

	parser := expense.NewParser(expense.WithYear(cfg.Year))
	defaults := handlers.NotionDefaults{
		Token:       cfg.NotionToken,
		DatabaseURL: cfg.NotionDatabaseURL,
	}

	// Initialize handlers
	notionHandler := handlers.NewNotionHandler(notionsync.NewService, defaults)
	expensesHandler := handlers.NewExpensesHandler(parser, notionsync.NewService, defaults)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/test-notion", postOnly(notionHandler.TestNotion))
	mux.HandleFunc("/api/parse-expenses", postOnly(expensesHandler.ParseExpenses))
	mux.HandleFunc("/api/validate-expenses", postOnly(expensesHandler.ValidateExpenses))
	mux.HandleFunc("/api/upload-expenses", postOnly(expensesHandler.UploadExpenses))

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		handlers.Health(w, r)
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(log)(
				middleware.CORS(
					middleware.MaxBodySize(maxRequestBody)(mux),
				),
			),
		),
	)

	// Create HTTP server. Uploads create one Notion page per expense, so the
	// write timeout is generous.
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Int("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h(w, r)
	}
}
