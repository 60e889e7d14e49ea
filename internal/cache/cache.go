// Package cache stores classification results in SQLite, keyed by workbook
// content and the thresholds used to classify it.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ukaji3/layoutview/pkg/layoutview/classifier"
	"github.com/ukaji3/layoutview/pkg/layoutview/models"
)

//go:embed schema.sql
var schemaSQL string

// Store is a SQLite-backed result cache. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives the cache key for a workbook's content under the given settings.
func Key(content []byte, th classifier.Thresholds, skipHidden bool) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte(th.Fingerprint()))
	h.Write([]byte(strconv.FormatBool(skipHidden)))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached results for key. The boolean is false on a miss.
func (s *Store) Get(ctx context.Context, key string) ([]models.SheetClassification, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM classifications WHERE cache_key = ?", key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	var results []models.SheetClassification
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, false, fmt.Errorf("decode cached payload: %w", err)
	}
	return results, true, nil
}

// Put stores results under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key, sourcePath string, results []models.SheetClassification) error {
	if results == nil {
		results = []models.SheetClassification{}
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO classifications (id, cache_key, source_path, created_at, payload)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		   source_path = excluded.source_path,
		   created_at = excluded.created_at,
		   payload = excluded.payload`,
		uuid.NewString(), key, sourcePath, time.Now().Unix(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Len returns the number of cached entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM classifications").Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return n, nil
}
