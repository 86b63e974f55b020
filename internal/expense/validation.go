package expense

import (
	"fmt"
)

// Report is the outcome of Validate.
type Report struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// Validate checks that every record has the fields Notion needs.
// All checks run for every record; positions in messages are 1-based.
// Records are not modified.
func Validate(records []Record) Report {
	errs := []string{}

	for i, rec := range records {
		n := i + 1
		if rec.Title == "" {
			errs = append(errs, fmt.Sprintf("Expense %d: Missing title", n))
		}
		if !rec.Amount.Valid {
			errs = append(errs, fmt.Sprintf("Expense %d: Invalid amount", n))
		}
		if rec.Date == nil {
			errs = append(errs, fmt.Sprintf("Expense %d: Missing date", n))
		}
		if len(rec.Modes) == 0 {
			errs = append(errs, fmt.Sprintf("Expense %d: Missing payment mode", n))
		}
	}

	return Report{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
