package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/docstream/document-platform/internal/core/domain"
	"github.com/docstream/document-platform/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// DocumentService implements plain document CRUD. It carries no invariants
// beyond field mapping; the interesting logic lives in the auth and
// ingestion services.
type DocumentService struct {
	repo   ports.DocumentRepository
	logger zerolog.Logger
}

func NewDocumentService(repo ports.DocumentRepository, logger zerolog.Logger) *DocumentService {
	return &DocumentService{repo: repo, logger: logger}
}

func (s *DocumentService) List(ctx context.Context, page, limit int) ([]*domain.Document, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.repo.List(ctx, page, limit)
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DocumentService) Create(ctx context.Context, input ports.CreateDocumentInput) (*domain.Document, error) {
	doc := &domain.Document{
		Title:     input.Title,
		Content:   input.Content,
		UserID:    input.UserID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, doc)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create document")
		return nil, err
	}

	s.logger.Info().Int64("document_id", created.ID).Msg("document created")
	return created, nil
}

func (s *DocumentService) Update(ctx context.Context, id int64, input ports.UpdateDocumentInput) (*domain.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Title = input.Title
	doc.Content = input.Content
	if err := s.repo.Update(ctx, doc); err != nil {
		s.logger.Error().Err(err).Int64("document_id", id).Msg("failed to update document")
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("document_id", id).Msg("failed to delete document")
		return err
	}
	s.logger.Info().Int64("document_id", id).Msg("document deleted")
	return nil
}
