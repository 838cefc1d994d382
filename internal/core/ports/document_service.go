package ports

import (
	"context"

	"github.com/docstream/document-platform/internal/core/domain"
)

// CreateDocumentInput carries the data needed to create a document.
type CreateDocumentInput struct {
	Title   string
	Content string
	UserID  int64
}

// UpdateDocumentInput carries the mutable document fields.
type UpdateDocumentInput struct {
	Title   string
	Content string
}

// DocumentService defines document CRUD use cases.
type DocumentService interface {
	List(ctx context.Context, page, limit int) ([]*domain.Document, error)
	Get(ctx context.Context, id int64) (*domain.Document, error)
	Create(ctx context.Context, input CreateDocumentInput) (*domain.Document, error)
	Update(ctx context.Context, id int64, input UpdateDocumentInput) (*domain.Document, error)
	Delete(ctx context.Context, id int64) error
}
