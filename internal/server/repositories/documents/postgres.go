package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mihailvs/docshare/internal/common"
	"github.com/mihailvs/docshare/internal/dbx"
	"github.com/mihailvs/docshare/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {

	query :=
		`INSERT INTO documents (title, description, category, uploader, storage_key, upload_date)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		doc.Title, doc.Description, doc.Category, doc.Uploader, doc.StorageKey, doc.UploadDate).Scan(&doc.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc, nil
}

// List returns all documents, newest first. Search and category filtering
// happen on the caller's side at this scale.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Document, error) {
	query :=
		`SELECT id, title, description, category, uploader, storage_key, upload_date, downloads, views
		 FROM documents
		 ORDER BY upload_date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Description, &doc.Category,
			&doc.Uploader, &doc.StorageKey, &doc.UploadDate, &doc.Downloads, &doc.Views); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return docs, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query :=
		`SELECT id, title, description, category, uploader, storage_key, upload_date, downloads, views
		 FROM documents
		 WHERE id = $1
		 `

	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc.ID, &doc.Title, &doc.Description, &doc.Category,
		&doc.Uploader, &doc.StorageKey, &doc.UploadDate, &doc.Downloads, &doc.Views)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc, nil
}

// IncrementCounter bumps the downloads or views counter for a document.
// The column name is chosen from a fixed set; unknown kinds are a validation
// error, never interpolated into SQL.
func (r *PostgresRepository) IncrementCounter(ctx context.Context, id string, kind string) error {

	var query string
	switch kind {
	case models.CounterDownloads:
		query = `UPDATE documents SET downloads = downloads + 1 WHERE id = $1`
	case models.CounterViews:
		query = `UPDATE documents SET views = views + 1 WHERE id = $1`
	default:
		return common.ErrorValidation
	}

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
