package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wiseman/studentrecords/internal/pkg/logger"
)

// PostgresStore keeps one JSONB table per collection. Collections are
// created on startup if they do not exist.
type PostgresStore struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresStore creates a PostgresStore over an existing pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// EnsureCollections creates the backing table for every known collection.
func (s *PostgresStore) EnsureCollections(ctx context.Context) error {
	for _, collection := range Collections {
		ddl := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, doc JSONB NOT NULL)`,
			pgx.Identifier{collection}.Sanitize(),
		)
		if _, err := s.db.Exec(ctx, ddl); err != nil {
			logger.Error().Err(err).Str("collection", collection).Msg("Error creating collection table")
			return fmt.Errorf("failed to create collection %s: %w", collection, err)
		}
	}
	return nil
}

// Get reads a single document by id.
func (s *PostgresStore) Get(ctx context.Context, collection, id string) (Document, error) {
	sql, args, err := s.sb.Select("doc").
		From(collection).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return Document{}, fmt.Errorf("failed to build get query: %w", err)
	}

	var data json.RawMessage
	err = s.db.QueryRow(ctx, sql, args...).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		logger.Error().Err(err).Str("collection", collection).Str("id", id).Msg("Error reading document")
		return Document{}, fmt.Errorf("error reading document: %w", err)
	}

	return Document{ID: id, Data: data}, nil
}

// Put upserts a document keyed by its id.
func (s *PostgresStore) Put(ctx context.Context, collection string, doc Document) error {
	sql, args, err := s.sb.Insert(collection).
		Columns("id", "doc").
		Values(doc.ID, doc.Data).
		Suffix("ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build put query: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("collection", collection).Str("id", doc.ID).Msg("Error writing document")
		return fmt.Errorf("error writing document: %w", err)
	}

	return nil
}

// Query scans a collection for documents whose fields contain the filter.
// Uses the JSONB containment operator, so equality only.
func (s *PostgresStore) Query(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	builder := s.sb.Select("id", "doc").From(collection)
	if len(filter) > 0 {
		filterJSON, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal query filter: %w", err)
		}
		builder = builder.Where(squirrel.Expr("doc @> ?", filterJSON))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("collection", collection).Msg("Error scanning collection")
		return nil, fmt.Errorf("error scanning collection: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Data); err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, nil
}
