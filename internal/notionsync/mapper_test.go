package notionsync

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/keep2notion/internal/expense"
	"github.com/jomei/notionapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordToNotionProperties(t *testing.T) {
	rec := &expense.Record{
		Title:  "Coffee",
		Amount: decimal.NewNullDecimal(decimal.RequireFromString("-4.50")),
		Date:   &civil.Date{Year: 2024, Month: time.June, Day: 23},
		Type:   expense.TypeSpend,
		Modes:  []string{expense.ModeCash, expense.ModeCard},
	}

	props := RecordToNotionProperties(rec)

	title, ok := props[PropertyTitle].(notionapi.TitleProperty)
	require.True(t, ok)
	require.Len(t, title.Title, 1)
	assert.Equal(t, "Coffee", title.Title[0].Text.Content)

	amount, ok := props[PropertyAmount].(notionapi.NumberProperty)
	require.True(t, ok)
	assert.Equal(t, -4.5, amount.Number)

	date, ok := props[PropertyDate].(notionapi.DateProperty)
	require.True(t, ok)
	require.NotNil(t, date.Date)
	require.NotNil(t, date.Date.Start)
	assert.Equal(t, time.Date(2024, time.June, 23, 0, 0, 0, 0, time.UTC), time.Time(*date.Date.Start))

	typ, ok := props[PropertyType].(notionapi.SelectProperty)
	require.True(t, ok)
	assert.Equal(t, "-", typ.Select.Name)

	mode, ok := props[PropertyMode].(notionapi.MultiSelectProperty)
	require.True(t, ok)
	assert.Equal(t, []notionapi.Option{{Name: "Cash"}, {Name: "Card"}}, mode.MultiSelect)

	assert.NotContains(t, props, PropertyTag)
}

func TestRecordToNotionProperties_Gain(t *testing.T) {
	rec := &expense.Record{
		Title:  "Salary",
		Amount: decimal.NewNullDecimal(decimal.RequireFromString("2000")),
		Type:   expense.TypeGain,
		Modes:  []string{expense.ModeBank},
	}

	props := RecordToNotionProperties(rec)

	amount := props[PropertyAmount].(notionapi.NumberProperty)
	assert.Equal(t, 2000.0, amount.Number)
	assert.Equal(t, "+", props[PropertyType].(notionapi.SelectProperty).Select.Name)
}

func TestRecordToNotionProperties_OmitsAbsentFields(t *testing.T) {
	props := RecordToNotionProperties(&expense.Record{Title: "Tea"})

	assert.Len(t, props, 1)
	assert.Contains(t, props, PropertyTitle)
}

func TestRecordToNotionProperties_Tag(t *testing.T) {
	tag := "Food"
	props := RecordToNotionProperties(&expense.Record{Title: "Lunch", Tag: &tag})

	sel, ok := props[PropertyTag].(notionapi.SelectProperty)
	require.True(t, ok)
	assert.Equal(t, "Food", sel.Select.Name)

	empty := ""
	props = RecordToNotionProperties(&expense.Record{Title: "Lunch", Tag: &empty})
	assert.NotContains(t, props, PropertyTag)
}
