package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-docs-api/internal/model"
)

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

const documentColumns = `id, title, content, type, language, description, is_public, user_id, created_at, updated_at`

func scanDocument(row pgx.Row) (model.Document, error) {
	var d model.Document
	err := row.Scan(&d.ID, &d.Title, &d.Content, &d.Type, &d.Language, &d.Description,
		&d.IsPublic, &d.UserID, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *DocumentRepository) Create(ctx context.Context, d model.Document) (model.Document, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO documents (title, content, type, language, description, is_public, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		d.Title, d.Content, d.Type, d.Language, d.Description, d.IsPublic, d.UserID, d.CreatedAt, d.UpdatedAt).
		Scan(&d.ID)
	if err != nil {
		return model.Document{}, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id int64) (model.Document, error) {
	d, err := scanDocument(r.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Document{}, model.ErrDocumentNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("find document by id: %w", err)
	}
	return d, nil
}

func (r *DocumentRepository) Update(ctx context.Context, d model.Document) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents
		 SET title = $2, content = $3, type = $4, language = $5, description = $6,
		     is_public = $7, user_id = $8, updated_at = $9
		 WHERE id = $1`,
		d.ID, d.Title, d.Content, d.Type, d.Language, d.Description, d.IsPublic, d.UserID, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepository) List(ctx context.Context) ([]model.Document, error) {
	return r.queryMany(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY id`)
}

func (r *DocumentRepository) ListByType(ctx context.Context, docType model.DocumentType) ([]model.Document, error) {
	return r.queryMany(ctx, `SELECT `+documentColumns+` FROM documents WHERE type = $1 ORDER BY id`, docType)
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID int64) ([]model.Document, error) {
	return r.queryMany(ctx, `SELECT `+documentColumns+` FROM documents WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *DocumentRepository) queryMany(ctx context.Context, sql string, args ...any) ([]model.Document, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
