package notionsync

import (
	"context"

	"github.com/jomei/notionapi"
)

// NotionService defines the interface for interacting with Notion API.
// This interface enables mocking and testing of Notion operations.
type NotionService interface {
	// CreatePage creates a new page in a Notion database with the given properties.
	CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)

	// RetrieveDatabase fetches a database's title and property schema.
	RetrieveDatabase(ctx context.Context, databaseID string) (*notionapi.Database, error)
}

// ClientFactory builds a NotionService for an integration token. Credentials
// arrive per request, so callers hold a factory rather than a client.
type ClientFactory func(token string) NotionService
