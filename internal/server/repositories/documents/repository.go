package documents

import (
	"context"

	"github.com/mihailvs/docshare/internal/server/models"
)

// Repository is the persistence boundary for document metadata.
type Repository interface {
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	List(ctx context.Context) ([]*models.Document, error)
	GetByID(ctx context.Context, id string) (*models.Document, error)
	IncrementCounter(ctx context.Context, id string, kind string) error
}
