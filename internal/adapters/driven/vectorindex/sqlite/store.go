// Package sqlite provides a vector index backed by a SQLite database.
//
// Vectors are stored as little-endian float32 blobs and searched with a
// brute-force cosine scan. That is plenty for corpora of compliance
// documents, which number in the hundreds, not millions.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorIndex = (*Store)(nil)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is a SQLite-backed vector index.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a vector index at the given path.
// The parent directory is created if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite handles one writer at a time; serialise access at the pool level.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// migrate applies the embedded schema migrations in filename order.
func (s *Store) migrate() error {
	entries, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(entries)

	for _, name := range entries {
		script, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Count returns the number of entries in the index.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vectors`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count vectors: %w", err)
	}
	return count, nil
}

// InsertBatch inserts all entries in a single transaction.
// Either every entry is committed or none are.
func (s *Store) InsertBatch(ctx context.Context, entries []driven.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vectors (id, content, source, section, title, embedding)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if entry.ID == "" {
			return fmt.Errorf("entry with empty id")
		}
		if len(entry.Embedding) == 0 {
			return fmt.Errorf("entry %s has empty embedding", entry.ID)
		}
		_, err := stmt.ExecContext(ctx,
			entry.ID,
			entry.Content,
			entry.Metadata.Source,
			entry.Metadata.Section,
			entry.Metadata.Title,
			float32SliceToBytes(entry.Embedding),
		)
		if err != nil {
			return fmt.Errorf("insert entry %s: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Query returns up to topK entries nearest to the given embedding,
// ordered by ascending cosine distance. Equal distances keep insertion
// order.
func (s *Store) Query(ctx context.Context, embedding []float32, topK int) ([]driven.VectorHit, error) {
	if topK <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, source, section, title, embedding
		FROM vectors
		ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("query vectors: %w", err)
	}
	defer rows.Close()

	var hits []driven.VectorHit
	for rows.Next() {
		var (
			hit  driven.VectorHit
			blob []byte
		)
		if err := rows.Scan(&hit.ID, &hit.Content, &hit.Metadata.Source,
			&hit.Metadata.Section, &hit.Metadata.Title, &blob); err != nil {
			return nil, fmt.Errorf("scan vector row: %w", err)
		}

		stored, err := bytesToFloat32Slice(blob)
		if err != nil {
			return nil, fmt.Errorf("%w: decode embedding for %s: %w", domain.ErrIndexUnavailable, hit.ID, err)
		}
		if len(stored) != len(embedding) {
			return nil, fmt.Errorf("%w: dimension mismatch: index has %d, query has %d",
				domain.ErrIndexUnavailable, len(stored), len(embedding))
		}

		hit.Distance = cosineDistance(embedding, stored)
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vector rows: %w", err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// cosineDistance returns 1 - cosine similarity. Zero-norm vectors are
// treated as maximally distant.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1.0
	}
	return 1.0 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// float32SliceToBytes encodes a vector as little-endian float32 bits.
func float32SliceToBytes(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// bytesToFloat32Slice decodes a little-endian float32 blob.
func bytesToFloat32Slice(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 4", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
