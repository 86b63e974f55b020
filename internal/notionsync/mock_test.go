package notionsync

import (
	"context"
	"errors"

	"github.com/jomei/notionapi"
)

// MockNotionService is a mock implementation of NotionService for testing.
type MockNotionService struct {
	CreatePageFunc       func(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)
	RetrieveDatabaseFunc func(ctx context.Context, databaseID string) (*notionapi.Database, error)

	created []notionapi.Properties
}

func (m *MockNotionService) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	m.created = append(m.created, properties)
	if m.CreatePageFunc != nil {
		return m.CreatePageFunc(ctx, databaseID, properties)
	}
	return &notionapi.Page{ID: "page-id"}, nil
}

func (m *MockNotionService) RetrieveDatabase(ctx context.Context, databaseID string) (*notionapi.Database, error) {
	if m.RetrieveDatabaseFunc != nil {
		return m.RetrieveDatabaseFunc(ctx, databaseID)
	}
	return nil, errors.New("not implemented")
}
