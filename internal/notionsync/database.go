package notionsync

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jomei/notionapi"
)

// ErrInvalidDatabaseURL is returned when no database ID can be found in a URL.
var ErrInvalidDatabaseURL = errors.New("invalid Notion database URL")

var databaseIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)notion\.so/.*?([a-f0-9]{32})`),
	regexp.MustCompile(`(?i)notion\.so/.*?([a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12})`),
}

// ExtractDatabaseID pulls the database ID out of a Notion database URL.
// Both the compact and the dashed ID forms are accepted, as is a bare ID.
// The result has no dashes.
func ExtractDatabaseID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)

	for _, pattern := range databaseIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return strings.ReplaceAll(m[1], "-", ""), nil
		}
	}

	if id, err := uuid.Parse(rawURL); err == nil {
		return strings.ReplaceAll(id.String(), "-", ""), nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDatabaseURL, rawURL)
}

// PropertySchema describes one column of a Notion database.
// Options is only set for select and multi-select columns.
type PropertySchema struct {
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

// DatabaseInfo is what the UI shows after a successful connection test.
type DatabaseInfo struct {
	ID     string                    `json:"id"`
	Title  string                    `json:"title"`
	Schema map[string]PropertySchema `json:"schema"`
}

// DescribeDatabase retrieves a database and summarizes its title and schema.
func DescribeDatabase(ctx context.Context, notionClient NotionService, databaseID string) (*DatabaseInfo, error) {
	db, err := notionClient.RetrieveDatabase(ctx, databaseID)
	if err != nil {
		return nil, fmt.Errorf("DescribeDatabase: %w", err)
	}

	info := &DatabaseInfo{
		ID:     databaseID,
		Title:  databaseTitle(db),
		Schema: make(map[string]PropertySchema, len(db.Properties)),
	}

	for name, cfg := range db.Properties {
		if cfg == nil {
			continue
		}
		info.Schema[name] = PropertySchema{
			Type:    string(cfg.GetType()),
			Options: propertyOptions(cfg),
		}
	}

	return info, nil
}

// SchemaProblems lists the expense columns that are missing from the
// database or have a different type than uploads need. Sorted by column name.
func SchemaProblems(info *DatabaseInfo) []string {
	problems := []string{}
	for name, want := range expectedSchema {
		got, ok := info.Schema[name]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s: missing property (expected %s)", name, want))
		case got.Type != string(want):
			problems = append(problems, fmt.Sprintf("%s: has type %s, expected %s", name, got.Type, want))
		}
	}
	sort.Strings(problems)
	return problems
}

func databaseTitle(db *notionapi.Database) string {
	if len(db.Title) == 0 {
		return "Untitled"
	}
	first := db.Title[0]
	if first.Text != nil && first.Text.Content != "" {
		return first.Text.Content
	}
	if first.PlainText != "" {
		return first.PlainText
	}
	return "Untitled"
}

func propertyOptions(cfg notionapi.PropertyConfig) []string {
	switch c := cfg.(type) {
	case *notionapi.SelectPropertyConfig:
		return optionNames(c.Select.Options)
	case *notionapi.MultiSelectPropertyConfig:
		return optionNames(c.MultiSelect.Options)
	default:
		return nil
	}
}

func optionNames(options []notionapi.Option) []string {
	names := make([]string, 0, len(options))
	for _, opt := range options {
		names = append(names, opt.Name)
	}
	return names
}
