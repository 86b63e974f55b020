package handlers

import (
	"encoding/json"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/keep2notion/internal/expense"
	"github.com/shopspring/decimal"
)

// expensePayload is an expense as the browser sends it back. Amount and date
// are decoded by hand so a malformed value becomes a validation error for
// that record instead of failing the whole request.
type expensePayload struct {
	Title        string          `json:"title"`
	Amount       json.RawMessage `json:"amount"`
	Date         *string         `json:"date"`
	Type         expense.Type    `json:"type"`
	Modes        []string        `json:"modes"`
	Tag          *string         `json:"tag"`
	OriginalLine string          `json:"originalLine"`
}

// Record converts the payload. An amount that is not a number (or a numeric
// string) is left absent, as is a date that is empty or not YYYY-MM-DD.
func (p expensePayload) Record() expense.Record {
	rec := expense.Record{
		Title:        p.Title,
		Type:         p.Type,
		Modes:        p.Modes,
		Tag:          p.Tag,
		OriginalLine: p.OriginalLine,
	}

	var amount decimal.NullDecimal
	if len(p.Amount) > 0 && amount.UnmarshalJSON(p.Amount) == nil {
		rec.Amount = amount
	}

	if p.Date != nil && *p.Date != "" {
		if d, err := civil.ParseDate(*p.Date); err == nil {
			rec.Date = &d
		}
	}

	return rec
}

// toRecords converts a decoded expenses list. A nil list stays nil so callers
// can tell "missing" from "empty".
func toRecords(payloads []expensePayload) []expense.Record {
	if payloads == nil {
		return nil
	}
	records := make([]expense.Record, 0, len(payloads))
	for _, p := range payloads {
		records = append(records, p.Record())
	}
	return records
}
