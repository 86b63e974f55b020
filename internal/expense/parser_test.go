package expense

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/keep2notion/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
}

func quietContext(buf *bytes.Buffer) context.Context {
	return logger.WithContext(context.Background(), logger.NewWithWriter(buf))
}

func TestParser_ExtractDate(t *testing.T) {
	p := NewParser(WithClock(fixedClock(2024)))

	tests := []struct {
		line   string
		want   civil.Date
		wantOK bool
	}{
		{"Monday, 23rd June", civil.Date{Year: 2024, Month: time.June, Day: 23}, true},
		{"Tuesday, 24th June", civil.Date{Year: 2024, Month: time.June, Day: 24}, true},
		{"Friday, 1st March", civil.Date{Year: 2024, Month: time.March, Day: 1}, true},
		{"Sunday, 2nd february", civil.Date{Year: 2024, Month: time.February, Day: 2}, true},
		{"Wed,3 Jan", civil.Date{Year: 2024, Month: time.January, Day: 3}, true},
		{"Monday, 9 Sept", civil.Date{Year: 2024, Month: time.September, Day: 9}, true},
		// weekday is not checked against the calendar
		{"Sunday, 23rd June", civil.Date{Year: 2024, Month: time.June, Day: 23}, true},
		// 2024 is a leap year
		{"Thursday, 29th February", civil.Date{Year: 2024, Month: time.February, Day: 29}, true},
		{"Monday, 32nd June", civil.Date{}, false},
		{"Friday, 30th February", civil.Date{}, false},
		{"Monday, 0 June", civil.Date{}, false},
		{"Monday, 23rd Juno", civil.Date{}, false},
		{"Monday 23rd June", civil.Date{}, false},
		{"Monday, 123 June", civil.Date{}, false},
		{"23rd June", civil.Date{}, false},
		{"• Coffee - 4.50 (Cash)", civil.Date{}, false},
		{"", civil.Date{}, false},
	}

	isoDate := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := p.ExtractDate(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.Regexp(t, isoDate, got.String())
			}
		})
	}
}

func TestParser_ExtractDate_NonLeapYear(t *testing.T) {
	p := NewParser(WithClock(fixedClock(2025)))

	_, ok := p.ExtractDate("Saturday, 29th February")
	assert.False(t, ok)
}

func TestParser_ExtractDate_YearOverride(t *testing.T) {
	p := NewParser(WithClock(fixedClock(2025)), WithYear(2023))

	got, ok := p.ExtractDate("Monday, 23rd June")
	require.True(t, ok)
	assert.Equal(t, "2023-06-23", got.String())
}

func TestParser_ParseExpenseLine(t *testing.T) {
	p := NewParser()
	date := &civil.Date{Year: 2024, Month: time.June, Day: 23}

	tests := []struct {
		name      string
		line      string
		wantTitle string
		wantAmt   string
		wantType  Type
		wantModes []string
	}{
		{"no sign is spend", "• Coffee - 50 (Cash)", "Coffee", "-50", TypeSpend, []string{"Cash"}},
		{"minus sign is spend", "• Coffee - -50 (Cash)", "Coffee", "-50", TypeSpend, []string{"Cash"}},
		{"plus sign is gain", "• Refund - +50 (UPI)", "Refund", "50", TypeGain, []string{"UPI"}},
		{"two decimals", "- Groceries - 45.20 (UPI, Cash)", "Groceries", "-45.2", TypeSpend, []string{"UPI", "Cash"}},
		{"asterisk bullet", "* Bus - 20 (Card)", "Bus", "-20", TypeSpend, []string{"Card"}},
		{"dash inside title", "• Auto-rickshaw - 80 (Cash)", "Auto-rickshaw", "-80", TypeSpend, []string{"Cash"}},
		{"spaced dash inside title", "• Dinner - Pizza - 300 (Card)", "Dinner - Pizza", "-300", TypeSpend, []string{"Card"}},
		{"no space around separator", "•Tea-10(Cash)", "Tea", "-10", TypeSpend, []string{"Cash"}},
		{"unrecognized mode kept verbatim", "• Lunch - 120 (Paytm Wallet)", "Lunch", "-120", TypeSpend, []string{"Paytm Wallet"}},
		{"bank account mode", "• Salary - +2000 (Bank A/C)", "Salary", "2000", TypeGain, []string{"Bank A/C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := p.ParseExpenseLine(tt.line, date)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTitle, rec.Title)
			require.True(t, rec.Amount.Valid)
			assert.True(t, decimal.RequireFromString(tt.wantAmt).Equal(rec.Amount.Decimal),
				"amount %s, want %s", rec.Amount.Decimal, tt.wantAmt)
			assert.Equal(t, tt.wantType, rec.Type)
			assert.Equal(t, tt.wantModes, rec.Modes)
			assert.Nil(t, rec.Tag)
			assert.Equal(t, tt.line, rec.OriginalLine)
			require.NotNil(t, rec.Date)
			assert.Equal(t, *date, *rec.Date)
		})
	}
}

func TestParser_ParseExpenseLine_Rejects(t *testing.T) {
	p := NewParser()

	lines := []string{
		"• just a note",
		"• Coffee - 4.5 (Cash)",
		"• Coffee - 4.505 (Cash)",
		"• Coffee - abc (Cash)",
		"• Coffee - 4.50",
		"• Coffee - 4.50 ()",
		"• - 4.50 (Cash)",
		"• Coffee 4.50 (Cash)",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, err := p.ParseExpenseLine(line, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnrecognizedLine)
		})
	}
}

func TestParser_ParseExpenseLine_DateIsCopied(t *testing.T) {
	p := NewParser()
	date := &civil.Date{Year: 2024, Month: time.June, Day: 23}

	rec, err := p.ParseExpenseLine("• Coffee - 4.50 (Cash)", date)
	require.NoError(t, err)

	date.Day = 1
	assert.Equal(t, 23, rec.Date.Day)
}

func TestNormalizeModes(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"UPI, Cash", []string{"UPI", "Cash"}},
		{"Paytm Wallet", []string{"Paytm Wallet"}},
		{"UPI, Paytm Wallet", []string{"UPI"}},
		{"Paytm, Wallet", []string{"Paytm, Wallet"}},
		{"  Card  ", []string{"Card"}},
		{"Cash,Cash", []string{"Cash", "Cash"}},
		{"IMPS, Bank A/C", []string{"IMPS", "Bank A/C"}},
		{"upi", []string{"upi"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeModes(tt.input))
		})
	}
}

func TestParser_Parse_EndToEnd(t *testing.T) {
	text := `Monday, 23rd June
• Coffee - 4.50 (Cash)
• Salary - +2000 (Bank A/C)
Tuesday, 24th June
• Groceries - 45.20 (UPI, Cash)
`
	buf := &bytes.Buffer{}
	p := NewParser(WithClock(fixedClock(2024)))

	result, err := p.Parse(quietContext(buf), text)
	require.NoError(t, err)
	require.Len(t, result.Records, 3)
	assert.Empty(t, result.Warnings)

	want := []struct {
		title string
		amt   string
		date  string
		typ   Type
		modes []string
	}{
		{"Coffee", "-4.50", "2024-06-23", TypeSpend, []string{"Cash"}},
		{"Salary", "2000", "2024-06-23", TypeGain, []string{"Bank A/C"}},
		{"Groceries", "-45.20", "2024-06-24", TypeSpend, []string{"UPI", "Cash"}},
	}

	for i, w := range want {
		rec := result.Records[i]
		assert.Equal(t, w.title, rec.Title)
		assert.Equal(t, decimal.RequireFromString(w.amt).StringFixed(2), rec.Amount.Decimal.StringFixed(2))
		require.NotNil(t, rec.Date)
		assert.Equal(t, w.date, rec.Date.String())
		assert.Equal(t, w.typ, rec.Type)
		assert.Equal(t, w.modes, rec.Modes)
		assert.Nil(t, rec.Tag)
	}
}

func TestParser_Parse_BadBulletLineIsSkipped(t *testing.T) {
	text := "Monday, 23rd June\n• just a note\n• Coffee - 4.50 (Cash)\n"
	buf := &bytes.Buffer{}
	p := NewParser(WithClock(fixedClock(2024)))

	result, err := p.Parse(quietContext(buf), text)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Coffee", result.Records[0].Title)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 2, result.Warnings[0].LineNumber)
	assert.Equal(t, "• just a note", result.Warnings[0].Line)
	assert.Contains(t, buf.String(), "Could not parse expense line")
}

func TestParser_Parse_NoDateHeaderYet(t *testing.T) {
	p := NewParser(WithClock(fixedClock(2024)))

	result, err := p.Parse(quietContext(&bytes.Buffer{}), "• Coffee - 4.50 (Cash)")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Nil(t, result.Records[0].Date)
}

func TestParser_Parse_IgnoresOtherLines(t *testing.T) {
	text := "Expenses\n\n   \nMonday, 23rd June\nremember to buy milk\n  • Coffee - 4.50 (Cash)  \r\n"
	p := NewParser(WithClock(fixedClock(2024)))

	result, err := p.Parse(quietContext(&bytes.Buffer{}), text)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "  • Coffee - 4.50 (Cash)  ", result.Records[0].OriginalLine)
}

func TestParser_Parse_InvalidDateHeaderFallsThrough(t *testing.T) {
	text := "Monday, 23rd June\nFriday, 30th February\n• Coffee - 4.50 (Cash)"
	p := NewParser(WithClock(fixedClock(2024)))

	result, err := p.Parse(quietContext(&bytes.Buffer{}), text)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "2024-06-23", result.Records[0].Date.String())
}

func TestParser_Parse_Empty(t *testing.T) {
	p := NewParser()

	result, err := p.Parse(quietContext(&bytes.Buffer{}), "")
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.NotNil(t, result.Records)
}

func TestParser_Parse_InvalidUTF8(t *testing.T) {
	p := NewParser()

	result, err := p.Parse(quietContext(&bytes.Buffer{}), "Monday, 23rd June\n\xff\xfe")
	assert.ErrorIs(t, err, ErrInvalidText)
	assert.Nil(t, result)
}

func TestParser_Parse_Idempotent(t *testing.T) {
	text := "Monday, 23rd June\n• Coffee - 4.50 (Cash)\n• note\nTuesday, 24th June\n• Tea - 10 (UPI)"
	p := NewParser(WithClock(fixedClock(2024)))
	ctx := quietContext(&bytes.Buffer{})

	first, err := p.Parse(ctx, text)
	require.NoError(t, err)
	second, err := p.Parse(ctx, text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
