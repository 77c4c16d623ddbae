package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	seq        BIGSERIAL,
	body       JSONB NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_body_idx ON documents USING GIN (body);
`

// PostgresStore keeps every collection in one JSONB table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ConnectPostgres opens a pooled connection and verifies it.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the documents table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, documentsSchema)
	return err
}

func (s *PostgresStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	if filter == nil {
		filter = Filter{}
	}
	containment, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("marshal filter: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM documents WHERE collection = $1 AND body @> $2::jsonb ORDER BY seq`,
		collection, string(containment),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		doc, err := decodeBody(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *PostgresStore) Insert(ctx context.Context, collection string, doc Document) (Document, error) {
	id := doc.ID()
	if id == "" {
		return nil, ErrMissingID
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	var raw []byte
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb) RETURNING body`,
		collection, id, string(body),
	).Scan(&raw)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateID
		}
		return nil, err
	}
	return decodeBody(raw)
}

// UpdateOne merges patch with the JSONB concatenation operator in a single statement.
func (s *PostgresStore) UpdateOne(ctx context.Context, collection, id string, patch Document) (Document, error) {
	clean := patch.Clone()
	delete(clean, "id")
	body, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("marshal patch: %w", err)
	}

	var raw []byte
	err = s.db.QueryRowContext(ctx,
		`UPDATE documents SET body = body || $3::jsonb WHERE collection = $1 AND id = $2 RETURNING body`,
		collection, id, string(body),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeBody(raw)
}

func (s *PostgresStore) DeleteOne(ctx context.Context, collection, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func decodeBody(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
