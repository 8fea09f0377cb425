package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/upb/sportsgear-api/models"
	"github.com/upb/sportsgear-api/repositories"
	"go.uber.org/zap"
)

// DocumentRepository implements repositories.DocumentStore on a JSONB table.
// Each repository instance is scoped to one logical collection.
type DocumentRepository struct {
	db         *DB
	collection string
	logger     *zap.Logger
	now        func() time.Time
}

// NewDocumentRepository creates a repository for the given collection
func NewDocumentRepository(db *DB, collection string, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:         db,
		collection: collection,
		logger:     logger,
		now:        time.Now,
	}
}

// Insert stores a new document and returns its id
func (r *DocumentRepository) Insert(ctx context.Context, doc models.Document) (string, error) {
	data, err := json.Marshal(doc.WithoutID())
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	query := `
		INSERT INTO documents (id, collection, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`

	id := uuid.New()
	if _, err := r.db.ExecContext(ctx, query, id, r.collection, string(data), r.now().UTC()); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	r.logger.Debug("document inserted",
		zap.String("collection", r.collection),
		zap.String("id", id.String()))
	return id.String(), nil
}

// FindOne retrieves a document by id
func (r *DocumentRepository) FindOne(ctx context.Context, id string) (models.Document, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, repositories.ErrDocumentNotFound
	}

	query := `
		SELECT id, data
		FROM documents
		WHERE collection = $1 AND id = $2
	`

	var (
		rowID string
		raw   []byte
	)
	err = r.db.QueryRowContext(ctx, query, r.collection, docID).Scan(&rowID, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return decodeDocument(rowID, raw)
}

// FindMany retrieves every document containing all filter pairs
func (r *DocumentRepository) FindMany(ctx context.Context, filter repositories.Filter) ([]models.Document, error) {
	if filter == nil {
		filter = repositories.Filter{}
	}
	containment, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filter: %w", err)
	}

	query := `
		SELECT id, data
		FROM documents
		WHERE collection = $1 AND data @> $2::jsonb
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, r.collection, string(containment))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		var (
			rowID string
			raw   []byte
		)
		if err := rows.Scan(&rowID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc, err := decodeDocument(rowID, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// Update merges fields into the document. A row whose data already contains
// every field unchanged counts as matched but not modified.
func (r *DocumentRepository) Update(ctx context.Context, id string, fields models.Document, upsert bool) (*repositories.UpdateResult, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	patch, err := json.Marshal(fields.WithoutID())
	if err != nil {
		return nil, fmt.Errorf("failed to encode update: %w", err)
	}
	now := r.now().UTC()

	updateQuery := `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = $4
		WHERE collection = $1 AND id = $2 AND NOT (data @> $3::jsonb)
	`
	res, err := r.db.ExecContext(ctx, updateQuery, r.collection, docID, string(patch), now)
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	} else if affected > 0 {
		return &repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}

	var exists bool
	existsQuery := `SELECT EXISTS (SELECT 1 FROM documents WHERE collection = $1 AND id = $2)`
	if err := r.db.QueryRowContext(ctx, existsQuery, r.collection, docID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check document: %w", err)
	}
	if exists {
		return &repositories.UpdateResult{MatchedCount: 1}, nil
	}
	if !upsert {
		return &repositories.UpdateResult{}, nil
	}

	insertQuery := `
		INSERT INTO documents (id, collection, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (id) DO NOTHING
	`
	res, err = r.db.ExecContext(ctx, insertQuery, docID, r.collection, string(patch), now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		// lost a race with a concurrent writer for the same id
		return &repositories.UpdateResult{MatchedCount: 1}, nil
	}

	r.logger.Debug("document upserted",
		zap.String("collection", r.collection),
		zap.String("id", docID.String()))
	return &repositories.UpdateResult{UpsertedCount: 1, UpsertedID: docID.String()}, nil
}

// Delete removes the document with the given id
func (r *DocumentRepository) Delete(ctx context.Context, id string) (*repositories.DeleteResult, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return &repositories.DeleteResult{}, nil
	}

	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, r.collection, docID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return &repositories.DeleteResult{DeletedCount: affected}, nil
}

func decodeDocument(id string, raw []byte) (models.Document, error) {
	doc := models.Document{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
	}
	doc[models.IDField] = id
	return doc, nil
}
