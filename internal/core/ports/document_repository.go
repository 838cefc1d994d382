package ports

import (
	"context"

	"github.com/docstream/document-platform/internal/core/domain"
)

// DocumentRepository defines persistence operations for documents.
type DocumentRepository interface {
	Insert(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	FindByID(ctx context.Context, id int64) (*domain.Document, error)
	List(ctx context.Context, page, limit int) ([]*domain.Document, error)
	Update(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
