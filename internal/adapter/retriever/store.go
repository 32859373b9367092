package retriever

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"pantry-ai/internal/domain"
)

// Document is one stored knowledge-base entry. The ID is the stable source
// file name, which is what makes the bulk load idempotent.
type Document struct {
	ID        string
	Content   string
	Source    string
	CreatedAt time.Time
}

// Store implements domain.Retriever backed by SQLite with per-document
// embedding vectors. An in-memory docIndex caches embeddings to avoid
// SQLite I/O on every search; it is lazily loaded on the first search and
// incrementally updated on writes.
type Store struct {
	db       *sql.DB
	embedder domain.EmbeddingProvider
	logger   *slog.Logger
	dbPath   string
	docIdx   *docIndex
}

// New opens (or creates) a SQLite database at dbPath, runs migrations, and
// returns a ready Store.
func New(dbPath string, embedder domain.EmbeddingProvider, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %v", domain.ErrStoreFailed, err)
	}

	// SQLite write safety: single writer.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: pragma: %v", domain.ErrStoreFailed, err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", domain.ErrStoreFailed, err)
	}

	return &Store{
		db:       db,
		embedder: embedder,
		logger:   logger,
		dbPath:   dbPath,
		docIdx:   newDocIndex(),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add upserts a single document, embedding its content when an embedder is
// configured. Documents whose embedding fails are stored without a vector.
func (s *Store) Add(ctx context.Context, doc Document) error {
	var embeddingBlob []byte
	if s.embedder != nil && doc.Content != "" {
		vecs, err := s.embedder.Embed(ctx, []string{doc.Content})
		if err != nil {
			s.logger.Warn("retriever: embedding failed, storing without vector",
				"id", doc.ID, "error", err)
		} else if len(vecs) > 0 {
			embeddingBlob = float32ToBytes(vecs[0])
		}
	}
	return s.upsert(ctx, doc, embeddingBlob)
}

// AddBatch stores multiple documents in a single transaction with one
// batched embedding call. Documents whose embedding could not be generated
// are skipped, matching the loader contract: a document without a vector
// can never be retrieved by similarity.
func (s *Store) AddBatch(ctx context.Context, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}

	var vecs [][]float32
	if s.embedder != nil {
		var err error
		vecs, err = s.embedder.Embed(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("%w: batch embed: %v", domain.ErrEmbeddingFailed, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx: %v", domain.ErrStoreFailed, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return 0, fmt.Errorf("%w: prepare: %v", domain.ErrStoreFailed, err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	stored := 0
	for i, doc := range docs {
		if vecs == nil || i >= len(vecs) || len(vecs[i]) == 0 {
			s.logger.Warn("retriever: no embedding for document, skipping", "id", doc.ID)
			continue
		}
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = now
		}
		_, err := stmt.ExecContext(ctx,
			doc.ID, doc.Content, doc.Source,
			float32ToBytes(vecs[i]),
			doc.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return 0, fmt.Errorf("%w: upsert document %q: %v", domain.ErrStoreFailed, doc.ID, err)
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", domain.ErrStoreFailed, err)
	}

	if s.docIdx.isLoaded() {
		for i, doc := range docs {
			if vecs != nil && i < len(vecs) && len(vecs[i]) > 0 {
				s.docIdx.put(doc, vecs[i])
			}
		}
	}

	return stored, nil
}

const upsertSQL = `
	INSERT INTO documents (id, content, source, embedding, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		content   = excluded.content,
		source    = excluded.source,
		embedding = excluded.embedding
`

func (s *Store) upsert(ctx context.Context, doc Document, embeddingBlob []byte) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, upsertSQL,
		doc.ID, doc.Content, doc.Source, embeddingBlob,
		doc.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: upsert: %v", domain.ErrStoreFailed, err)
	}

	if embeddingBlob != nil && s.docIdx.isLoaded() {
		s.docIdx.put(doc, bytesToFloat32(embeddingBlob))
	}
	return nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count: %v", domain.ErrStoreFailed, err)
	}
	return n, nil
}

// All implements domain.Retriever. Documents come back in insertion order.
func (s *Store) All(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT content FROM documents ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("%w: select all: %v", domain.ErrStoreFailed, err)
	}
	defer rows.Close()

	var docs []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", domain.ErrStoreFailed, err)
		}
		docs = append(docs, content)
	}
	return docs, rows.Err()
}

// Compile-time interface check.
var _ domain.Retriever = (*Store)(nil)
