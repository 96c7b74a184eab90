package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mihailvs/docshare/internal/common"
	"github.com/mihailvs/docshare/internal/logging"
	"github.com/mihailvs/docshare/internal/server/blob"
	"github.com/mihailvs/docshare/internal/server/models"
	"github.com/mihailvs/docshare/internal/server/repositories/documents"
)

// UploadFile is one file of an upload batch.
type UploadFile struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// UploadMeta is the metadata shared by every file of an upload batch.
type UploadMeta struct {
	Title       string
	Description string
	Category    string
}

// DocumentService owns the document catalog: upload batches, listing, and
// signed download links.
type DocumentService struct {
	repo   documents.Repository
	blobs  blob.Gateway
	logger logging.Logger
}

func NewDocumentService(repo documents.Repository, blobs blob.Gateway, logger logging.Logger) *DocumentService {
	return &DocumentService{
		repo:   repo,
		blobs:  blobs,
		logger: logger.With("module", "document_service"),
	}
}

// Upload stores each file in the blob store and appends one catalog record
// per file. Files are written independently: a failure mid-batch leaves
// previously written blobs and records intact, there is no compensating
// rollback. When the shared title is empty, each record falls back to its
// filename.
func (s *DocumentService) Upload(ctx context.Context, uploader string, meta UploadMeta, files []UploadFile) ([]*models.Document, error) {

	if len(files) == 0 {
		return nil, common.ErrorValidation
	}

	var created []*models.Document
	for _, f := range files {

		key := blob.MakeStorageKey(f.Filename)

		if err := s.blobs.Store(ctx, key, f.ContentType, f.Data); err != nil {
			return created, fmt.Errorf("error storing blob: %w", err)
		}

		title := meta.Title
		if title == "" {
			title = f.Filename
		}

		doc := &models.Document{
			Title:       title,
			Description: meta.Description,
			Category:    meta.Category,
			Uploader:    uploader,
			StorageKey:  key,
			UploadDate:  time.Now(),
		}

		doc, err := s.repo.Create(ctx, doc)
		if err != nil {
			return created, fmt.Errorf("error creating document: %w", err)
		}

		created = append(created, doc)
	}

	return created, nil
}

// List returns all documents. Search and category filtering are the caller's
// concern at this scale.
func (s *DocumentService) List(ctx context.Context) ([]*models.Document, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	return docs, nil
}

// GetDownloadURL resolves a document id to a time-limited presigned URL and
// bumps the downloads counter. A malformed id behaves like an unknown one.
// A failed counter update does not fail the download; it is only logged.
func (s *DocumentService) GetDownloadURL(ctx context.Context, id string) (string, error) {

	if _, err := uuid.Parse(id); err != nil {
		return "", common.ErrorNotFound
	}

	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error getting document: %w", err)
	}

	url, err := s.blobs.PresignGetURL(ctx, doc.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning url: %w", err)
	}

	if err := s.repo.IncrementCounter(ctx, doc.ID, models.CounterDownloads); err != nil {
		s.logger.Warn(ctx, "failed to increment download counter", "id", doc.ID, "error", err.Error())
	}

	return url, nil
}
