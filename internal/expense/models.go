package expense

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Type is the sign marker of an expense entry.
type Type string

const (
	// TypeGain marks money coming in (positive amount).
	TypeGain Type = "+"
	// TypeSpend marks money going out (negative amount).
	TypeSpend Type = "-"
)

// Recognized payment modes. Anything else is kept verbatim as a fallback.
const (
	ModeUPI  = "UPI"
	ModeCash = "Cash"
	ModeCard = "Card"
	ModeIMPS = "IMPS"
	ModeBank = "Bank A/C"
)

// ValidModes lists the recognized payment modes in display order.
var ValidModes = []string{ModeUPI, ModeCash, ModeCard, ModeIMPS, ModeBank}

// Record is one expense parsed from a notes blob.
// JSON field names follow the browser UI contract.
type Record struct {
	Title string `json:"title"`

	// Amount is negative for spend and positive for gain.
	Amount decimal.NullDecimal `json:"amount"`

	// Date is nil until a date header has been seen.
	Date *civil.Date `json:"date"`

	Type  Type     `json:"type"`
	Modes []string `json:"modes"`

	// Tag is never set by the parser; it is curated by hand in Notion.
	Tag *string `json:"tag"`

	OriginalLine string `json:"originalLine"`
}

// Warning describes a bullet line that could not be turned into a record.
type Warning struct {
	LineNumber int    `json:"lineNumber"`
	Line       string `json:"line"`
	Reason     string `json:"reason"`
}

// ParseResult is the output of a single Parse call.
type ParseResult struct {
	Records  []Record  `json:"records"`
	Warnings []Warning `json:"warnings"`
}
