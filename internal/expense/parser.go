package expense

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/keep2notion/internal/logger"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidText is returned by Parse when the input is not text at all.
	ErrInvalidText = errors.New("input is not valid UTF-8 text")

	// ErrUnrecognizedLine is returned when a bullet line does not follow
	// the "<description> - <amount> (<modes>)" format.
	ErrUnrecognizedLine = errors.New("line does not match expense format")
)

var (
	// "Monday, 23rd June"
	dateHeaderPattern = regexp.MustCompile(`^([A-Za-z]+),\s*(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)$`)

	// "Coffee - 4.50 (Cash)", "Salary - +2000 (Bank A/C)"
	expensePattern = regexp.MustCompile(`^(.+?)\s*-\s*([+\-]?\d+(?:\.\d{2})?)\s*\(([^)]+)\)$`)

	bulletPattern = regexp.MustCompile(`^[•\-*]\s*`)
)

// Parser turns notes copied from Google Keep into expense records.
//
// Date headers carry no year. The year is taken from the clock at parse time
// (or from WithYear), so notes that span a year boundary end up with the
// wrong year for the older entries. This is a known limitation.
type Parser struct {
	now  func() time.Time
	year int
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the clock used to infer the year of date headers.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// WithYear pins the year of date headers instead of reading the clock.
// Zero keeps the clock behaviour.
func WithYear(year int) Option {
	return func(p *Parser) {
		p.year = year
	}
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse scans text line by line and returns every expense it recognizes.
// Bullet lines that cannot be parsed are dropped and reported as warnings;
// they never fail the call. Only text that is not valid UTF-8 is rejected.
func (p *Parser) Parse(ctx context.Context, text string) (*ParseResult, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("Parse: %w", ErrInvalidText)
	}

	log := logger.FromContext(ctx)

	result := &ParseResult{
		Records:  []Record{},
		Warnings: []Warning{},
	}

	var currentDate *civil.Date

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if date, ok := p.ExtractDate(line); ok {
			currentDate = &date
			continue
		}

		if !hasBullet(line) {
			continue
		}

		rec, err := p.ParseExpenseLine(strings.TrimSuffix(raw, "\r"), currentDate)
		if err != nil {
			warning := Warning{
				LineNumber: i + 1,
				Line:       line,
				Reason:     err.Error(),
			}
			result.Warnings = append(result.Warnings, warning)

			log.Warn().
				Int("line_number", warning.LineNumber).
				Str("line", line).
				Msg("Could not parse expense line")
			continue
		}

		result.Records = append(result.Records, rec)
	}

	log.Debug().
		Int("records", len(result.Records)).
		Int("warnings", len(result.Warnings)).
		Msg("Parsed notes")

	return result, nil
}

// ExtractDate recognizes a date header such as "Monday, 23rd June".
// The weekday is not checked against the calendar. Headers naming a day
// that does not exist in the assumed year are not a match.
func (p *Parser) ExtractDate(line string) (civil.Date, bool) {
	m := dateHeaderPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return civil.Date{}, false
	}

	month, ok := lookupMonth(m[3])
	if !ok {
		return civil.Date{}, false
	}

	day, err := strconv.Atoi(m[2])
	if err != nil {
		return civil.Date{}, false
	}

	d := civil.Date{Year: p.currentYear(), Month: month, Day: day}
	if !d.IsValid() {
		return civil.Date{}, false
	}
	return d, true
}

// ParseExpenseLine parses a single bullet line. date is the date context in
// effect for the line and may be nil.
func (p *Parser) ParseExpenseLine(line string, date *civil.Date) (Record, error) {
	clean := strings.TrimSpace(bulletPattern.ReplaceAllString(strings.TrimSpace(line), ""))

	m := expensePattern.FindStringSubmatch(clean)
	if m == nil {
		return Record{}, fmt.Errorf("%w: %q", ErrUnrecognizedLine, strings.TrimSpace(line))
	}
	title, amountStr, modeStr := m[1], m[2], m[3]

	// A leading "-" means the same as no sign at all: money spent.
	isGain := strings.HasPrefix(amountStr, "+")
	magnitude, err := decimal.NewFromString(strings.TrimLeft(amountStr, "+-"))
	if err != nil {
		return Record{}, fmt.Errorf("ParseExpenseLine: amount %q: %w", amountStr, err)
	}

	amount := magnitude
	typ := TypeGain
	if !isGain {
		amount = magnitude.Neg()
		typ = TypeSpend
	}

	rec := Record{
		Title:        strings.TrimSpace(title),
		Amount:       decimal.NewNullDecimal(amount),
		Type:         typ,
		Modes:        NormalizeModes(modeStr),
		OriginalLine: line,
	}
	if date != nil {
		d := *date
		rec.Date = &d
	}

	return rec, nil
}

// NormalizeModes splits the text inside the parentheses on commas and keeps
// the recognized payment modes, in order and with duplicates. When nothing is
// recognized the whole text is kept as a single mode so no data is lost.
func NormalizeModes(modeText string) []string {
	var modes []string
	for _, part := range strings.Split(modeText, ",") {
		mode := strings.TrimSpace(part)
		if slices.Contains(ValidModes, mode) {
			modes = append(modes, mode)
		}
	}

	if len(modes) > 0 {
		return modes
	}
	return []string{strings.TrimSpace(modeText)}
}

func (p *Parser) currentYear() int {
	if p.year != 0 {
		return p.year
	}
	return p.now().Year()
}

func hasBullet(line string) bool {
	return strings.HasPrefix(line, "•") ||
		strings.HasPrefix(line, "-") ||
		strings.HasPrefix(line, "*")
}
