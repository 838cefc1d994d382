package ports

import (
	"context"

	"github.com/docstream/document-platform/internal/core/domain"
)

// IngestionDetail is one row of the joined listing: the request plus the
// identity of the referenced document for display.
type IngestionDetail struct {
	Request       domain.IngestionRequest `json:"request"`
	DocumentTitle string                  `json:"document_title"`
}

// IngestionRepository defines persistence operations for ingestion requests.
// Insert assigns the numeric id and returns the stored record. Writes made
// with a context produced by TransactionRunner participate in that
// transaction.
type IngestionRepository interface {
	Insert(ctx context.Context, req *domain.IngestionRequest) (*domain.IngestionRequest, error)
	FindByID(ctx context.Context, id int64) (*domain.IngestionRequest, error)
	Update(ctx context.Context, req *domain.IngestionRequest) error
	// ListAllJoined returns every request in insertion order, each joined
	// with its document's identity.
	ListAllJoined(ctx context.Context) ([]IngestionDetail, error)
}

// TransactionRunner executes fn inside a single store transaction. The
// context passed to fn must be used for every repository call that should
// commit or roll back atomically.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DocumentExistenceChecker answers whether a document id refers to a stored
// document. Existence is validated at ingestion-request creation only.
type DocumentExistenceChecker interface {
	Exists(ctx context.Context, documentID int64) (bool, error)
}
