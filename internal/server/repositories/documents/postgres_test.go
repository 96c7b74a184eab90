package documents

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mihailvs/docshare/internal/common"
	"github.com/mihailvs/docshare/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func docColumns() []string {
	return []string{"id", "title", "description", "category", "uploader", "storage_key", "upload_date", "downloads", "views"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+documents\s*\(title,\s*description,\s*category,\s*uploader,\s*storage_key,\s*upload_date\)`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id"}).AddRow("d-1")
	mock.ExpectQuery(q).
		WithArgs("report", "annual report", "finance", "alice", "1700000000000-report.pdf", now).
		WillReturnRows(rows)

	doc := &models.Document{
		Title:       "report",
		Description: "annual report",
		Category:    "finance",
		Uploader:    "alice",
		StorageKey:  "1700000000000-report.pdf",
		UploadDate:  now,
	}
	got, err := repo.Create(context.Background(), doc)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "d-1" {
		t.Fatalf("unexpected document: %+v", got)
	}
}

func TestList_ReturnsAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*title,.*FROM\s+documents\s+ORDER\s+BY\s+upload_date\s+DESC\s*$`

	now := time.Now()
	rows := sqlmock.NewRows(docColumns()).
		AddRow("d-2", "b", "", "", "bob", "k2", now, int64(0), int64(0)).
		AddRow("d-1", "a", "", "", "alice", "k1", now.Add(-time.Hour), int64(3), int64(7))
	mock.ExpectQuery(q).WillReturnRows(rows)

	docs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "d-2" || docs[1].Downloads != 3 || docs[1].Views != 7 {
		t.Fatalf("unexpected documents: %+v %+v", docs[0], docs[1])
	}
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,`).WillReturnRows(sqlmock.NewRows(docColumns()))

	docs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*WHERE\s+id\s*=\s*\$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestIncrementCounter(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		column  string
		wantErr error
	}{
		{name: "downloads", kind: models.CounterDownloads, column: "downloads"},
		{name: "views", kind: models.CounterViews, column: "views"},
		{name: "unknown kind", kind: "likes", wantErr: common.ErrorValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			if tt.wantErr == nil {
				q := `(?s)^UPDATE\s+documents\s+SET\s+` + tt.column + `\s*=\s*` + tt.column + `\s*\+\s*1\s+WHERE\s+id\s*=\s*\$1\s*$`
				mock.ExpectExec(q).WithArgs("d-1").WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.IncrementCounter(context.Background(), "d-1", tt.kind)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestIncrementCounter_MissingDocument(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+documents\s+SET\s+downloads`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementCounter(context.Background(), "missing", models.CounterDownloads)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
