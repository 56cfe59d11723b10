package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"arnio/internal/domain"
	"arnio/internal/infra"
	"arnio/internal/sqlinline"
)

// TxBeginner starts pgx transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DocumentRepositoryPG implements domain.DocumentRepository backed by PostgreSQL.
type DocumentRepositoryPG struct {
	sql infra.SQLExecutor
	tx  TxBeginner
}

// NewDocumentRepository creates a new DocumentRepositoryPG.
func NewDocumentRepository(sql infra.SQLExecutor, tx TxBeginner) *DocumentRepositoryPG {
	return &DocumentRepositoryPG{sql: sql, tx: tx}
}

// ListByOwner returns the owner's documents, newest first.
func (r *DocumentRepositoryPG) ListByOwner(ctx context.Context, ownerID string) ([]domain.Document, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectDocumentsByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// UsageByOwner aggregates document count and stored bytes from live rows.
func (r *DocumentRepositoryPG) UsageByOwner(ctx context.Context, ownerID string) (domain.StorageUsage, error) {
	var usage domain.StorageUsage
	row := r.sql.QueryRow(ctx, sqlinline.QSelectOwnerUsage, ownerID)
	if err := row.Scan(&usage.DocumentCount, &usage.StorageBytes); err != nil {
		return domain.StorageUsage{}, err
	}
	return usage, nil
}

// Create persists the document and bumps the owner's documentsUploaded stat
// in a single transaction so a partial failure cannot leave them apart.
func (r *DocumentRepositoryPG) Create(ctx context.Context, doc *domain.Document) error {
	tx, err := r.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, sqlinline.QInsertDocument,
		doc.ID, doc.OwnerID, doc.Name, doc.SizeBytes, doc.MimeType, doc.TotalPages)
	if err := row.Scan(&doc.UploadedAt); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sqlinline.QTouchUploadUsage, doc.OwnerID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a document scoped to its owner.
func (r *DocumentRepositoryPG) Delete(ctx context.Context, docID, ownerID string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteDocumentScoped, docID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateProgress stores the new progress, recomputes the current page and
// stamps last_read, returning the updated row.
func (r *DocumentRepositoryPG) UpdateProgress(ctx context.Context, docID, ownerID string, progress int) (*domain.Document, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateDocumentProgress, docID, ownerID, progress)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var doc domain.Document
	if err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Name,
		&doc.SizeBytes,
		&doc.MimeType,
		&doc.ProgressPercent,
		&doc.TotalPages,
		&doc.CurrentPage,
		&doc.LastReadAt,
		&doc.UploadedAt,
	); err != nil {
		return nil, err
	}
	return &doc, nil
}
