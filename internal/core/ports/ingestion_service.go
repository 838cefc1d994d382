package ports

import (
	"context"

	"github.com/docstream/document-platform/internal/core/domain"
)

// IngestionService defines the ingestion lifecycle use cases.
//
// Error strategy differs deliberately from AuthService: caller-contract
// violations (bad or missing document id) surface as descriptive errors
// wrapping domain.ErrInvalidArgument, a legitimate lookup miss in
// UpdateStatus surfaces as a nil result with a nil error, and transactional
// failures are logged and propagated.
type IngestionService interface {
	ListAll(ctx context.Context) ([]IngestionDetail, error)
	Trigger(ctx context.Context, documentID int64) (*domain.IngestionRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IngestionStatus) (*domain.IngestionRequest, error)
}
