package notionsync

import (
	"time"

	"github.com/dvloznov/keep2notion/internal/expense"
	"github.com/jomei/notionapi"
)

// Property names of the expenses database.
const (
	PropertyTitle  = "Title"
	PropertyDate   = "Date"
	PropertyAmount = "Amount"
	PropertyType   = "Type"
	PropertyMode   = "Mode"
	PropertyTag    = "Tag"
)

// expectedSchema is the property type each column must have for uploads to work.
var expectedSchema = map[string]notionapi.PropertyConfigType{
	PropertyTitle:  notionapi.PropertyConfigTypeTitle,
	PropertyDate:   notionapi.PropertyConfigTypeDate,
	PropertyAmount: notionapi.PropertyConfigTypeNumber,
	PropertyType:   notionapi.PropertyConfigTypeSelect,
	PropertyMode:   notionapi.PropertyConfigTypeMultiSelect,
	PropertyTag:    notionapi.PropertyConfigTypeSelect,
}

// RecordToNotionProperties converts an expense record to Notion page properties.
// Fields the record does not carry are left out so Notion keeps them empty.
func RecordToNotionProperties(rec *expense.Record) notionapi.Properties {
	props := notionapi.Properties{}

	// Date
	if rec.Date != nil {
		props[PropertyDate] = notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: func() *notionapi.Date {
					d := notionapi.Date(rec.Date.In(time.UTC))
					return &d
				}(),
			},
		}
	}

	// Amount, negative for spend and positive for gain
	if rec.Amount.Valid {
		props[PropertyAmount] = notionapi.NumberProperty{
			Number: rec.Amount.Decimal.InexactFloat64(),
		}
	}

	// Title
	if rec.Title != "" {
		props[PropertyTitle] = notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: rec.Title,
					},
				},
			},
		}
	}

	// Tag is normally unset after parsing
	if rec.Tag != nil && *rec.Tag != "" {
		props[PropertyTag] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: *rec.Tag,
			},
		}
	}

	// Mode
	if len(rec.Modes) > 0 {
		options := make([]notionapi.Option, 0, len(rec.Modes))
		for _, mode := range rec.Modes {
			options = append(options, notionapi.Option{Name: mode})
		}
		props[PropertyMode] = notionapi.MultiSelectProperty{
			MultiSelect: options,
		}
	}

	// Type
	if rec.Type != "" {
		props[PropertyType] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: string(rec.Type),
			},
		}
	}

	return props
}
