package notionsync

import (
	"context"
	"fmt"

	"github.com/dvloznov/keep2notion/internal/expense"
	"github.com/dvloznov/keep2notion/internal/logger"
	"github.com/google/uuid"
)

// UploadResult is the outcome of uploading a single record.
type UploadResult struct {
	Success bool   `json:"success"`
	Expense string `json:"expense"`
	PageID  string `json:"pageId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UploadSummary aggregates the results of an upload run.
type UploadSummary struct {
	RunID   string         `json:"runId"`
	Total   int            `json:"total"`
	Success int            `json:"success"`
	Errors  int            `json:"errors"`
	Results []UploadResult `json:"-"`
}

// Message is a one-line human readable summary.
func (s *UploadSummary) Message() string {
	return fmt.Sprintf("Successfully uploaded %d expenses. %d failed.", s.Success, s.Errors)
}

// UploadOptions tunes UploadRecords.
type UploadOptions struct {
	// DryRun logs what would be created without calling Notion.
	DryRun bool

	// OnResult, when set, is called after each record.
	OnResult func(UploadResult)
}

// UploadRecords creates one Notion page per record, one record at a time.
// A failed record is logged and counted; it never stops the remaining uploads.
// Once ctx is done the remaining records fail with the context error.
func UploadRecords(ctx context.Context, notionClient NotionService, databaseID string, records []expense.Record, opts UploadOptions) *UploadSummary {
	summary := &UploadSummary{
		RunID:   uuid.NewString(),
		Total:   len(records),
		Results: make([]UploadResult, 0, len(records)),
	}

	log := logger.FromContext(ctx).With().
		Str("run_id", summary.RunID).
		Str("database_id", databaseID).
		Logger()

	log.Info().
		Int("expense_count", len(records)).
		Bool("dry_run", opts.DryRun).
		Msg("Starting expense upload to Notion")

	cancelled := false
	for i := range records {
		rec := &records[i]

		var result UploadResult
		switch err := ctx.Err(); {
		case err != nil:
			// Remaining records are reported as failed without calling Notion.
			if !cancelled {
				cancelled = true
				log.Warn().
					Err(err).
					Int("remaining", len(records)-i).
					Msg("Upload cancelled, skipping remaining expenses")
			}
			result = UploadResult{Expense: rec.Title, Error: err.Error()}
		case opts.DryRun:
			log.Info().
				Str("expense", rec.Title).
				Str("amount", signedAmount(rec)).
				Msg("[DRY RUN] Would create Notion page")
			result = UploadResult{Success: true, Expense: rec.Title}
		default:
			result = createPage(ctx, notionClient, databaseID, rec)
		}

		if result.Success {
			summary.Success++
		} else {
			if !cancelled {
				log.Warn().
					Int("position", i+1).
					Str("expense", rec.Title).
					Str("error", result.Error).
					Msg("Failed to create Notion page")
			}
			summary.Errors++
		}
		summary.Results = append(summary.Results, result)

		if opts.OnResult != nil {
			opts.OnResult(result)
		}
	}

	log.Info().
		Int("success", summary.Success).
		Int("errors", summary.Errors).
		Int("total", summary.Total).
		Msg("Expense upload completed")

	return summary
}

func createPage(ctx context.Context, notionClient NotionService, databaseID string, rec *expense.Record) UploadResult {
	result := UploadResult{Expense: rec.Title}

	page, err := notionClient.CreatePage(ctx, databaseID, RecordToNotionProperties(rec))
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	if page != nil {
		result.PageID = string(page.ID)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("expense", rec.Title).
		Str("amount", signedAmount(rec)).
		Str("page_id", result.PageID).
		Msg("Added expense")

	return result
}

func signedAmount(rec *expense.Record) string {
	if !rec.Amount.Valid {
		return ""
	}
	if rec.Amount.Decimal.IsNegative() {
		return rec.Amount.Decimal.String()
	}
	return "+" + rec.Amount.Decimal.String()
}
