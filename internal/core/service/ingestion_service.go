package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/docstream/document-platform/internal/core/domain"
	"github.com/docstream/document-platform/internal/core/ports"
)

// ProcessorQueue accepts committed ingestion requests for asynchronous
// submission to the external processor. Enqueue must not block the caller
// beyond its buffer capacity.
type ProcessorQueue interface {
	Enqueue(req domain.IngestionRequest)
}

// IngestionService orchestrates validation, transactional persistence, and
// status queries for ingestion requests.
//
// Unlike AuthService, this service returns errors: contract violations by
// the caller wrap domain.ErrInvalidArgument with a descriptive message, and
// transactional failures are logged, then propagated.
type IngestionService struct {
	repo   ports.IngestionRepository
	docs   ports.DocumentExistenceChecker
	tx     ports.TransactionRunner
	queue  ProcessorQueue
	logger zerolog.Logger
}

func NewIngestionService(
	repo ports.IngestionRepository,
	docs ports.DocumentExistenceChecker,
	tx ports.TransactionRunner,
	queue ProcessorQueue,
	logger zerolog.Logger,
) *IngestionService {
	return &IngestionService{repo: repo, docs: docs, tx: tx, queue: queue, logger: logger}
}

// ListAll returns every ingestion request in insertion order, joined with
// its document's identity.
func (s *IngestionService) ListAll(ctx context.Context) ([]ports.IngestionDetail, error) {
	return s.repo.ListAllJoined(ctx)
}

// Trigger creates an ingestion request for the given document. Inside a
// single transaction the row is inserted with status Pending and advanced
// to InProgress, so a concurrent reader sees either no row or an InProgress
// row, never a stuck Pending one. After commit the request is handed to the
// processor queue; submission is fire and forget, the local state does not
// depend on the remote call.
func (s *IngestionService) Trigger(ctx context.Context, documentID int64) (*domain.IngestionRequest, error) {
	if documentID <= 0 {
		return nil, fmt.Errorf("%w: document id must be greater than zero", domain.ErrInvalidArgument)
	}

	exists, err := s.docs.Exists(ctx, documentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("document_id", documentID).Msg("document existence check failed")
		return nil, fmt.Errorf("trigger ingestion: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: document with id %d does not exist", domain.ErrInvalidArgument, documentID)
	}

	var created *domain.IngestionRequest
	err = s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		req := &domain.IngestionRequest{
			DocumentID:  documentID,
			Status:      domain.StatusPending,
			RequestedAt: time.Now().UTC(),
		}

		inserted, err := s.repo.Insert(txCtx, req)
		if err != nil {
			return fmt.Errorf("insert ingestion request: %w", err)
		}

		inserted.Status = domain.StatusInProgress
		if err := s.repo.Update(txCtx, inserted); err != nil {
			return fmt.Errorf("advance ingestion request: %w", err)
		}

		created = inserted
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("document_id", documentID).Msg("failed to trigger ingestion")
		return nil, err
	}

	if s.queue != nil {
		s.queue.Enqueue(*created)
	}

	s.logger.Info().Int64("ingestion_id", created.ID).Int64("document_id", documentID).Msg("ingestion in progress")
	return created, nil
}

// UpdateStatus overwrites the request's status unconditionally; there is no
// transition graph. A missing request yields (nil, nil); "not found" is a
// legitimate lookup outcome here, not an error.
func (s *IngestionService) UpdateStatus(ctx context.Context, id int64, status domain.IngestionStatus) (*domain.IngestionRequest, error) {
	if !domain.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown ingestion status %q", domain.ErrInvalidArgument, status)
	}

	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrIngestionNotFound) {
			return nil, nil
		}
		s.logger.Error().Err(err).Int64("ingestion_id", id).Msg("ingestion lookup failed")
		return nil, err
	}

	req.Status = status
	if err := s.repo.Update(ctx, req); err != nil {
		s.logger.Error().Err(err).Int64("ingestion_id", id).Msg("ingestion status update failed")
		return nil, err
	}
	return req, nil
}
