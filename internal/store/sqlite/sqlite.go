package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nirdonia/council/internal/model"
	"github.com/nirdonia/council/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// migrations is an ordered list of SQL migrations.
// Each migration runs exactly once, tracked by schema_version table.
var migrations = []string{
	// Migration 1: Initial schema
	`
CREATE TABLE IF NOT EXISTS council_posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	author TEXT NOT NULL CHECK (length(trim(author)) > 0),
	content TEXT NOT NULL CHECK (length(trim(content)) > 0 AND length(content) <= 500),
	votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
	hash TEXT NOT NULL,
	is_anonymous INTEGER NOT NULL DEFAULT 0,
	task_type TEXT NOT NULL DEFAULT 'general' CHECK (task_type IN ('repair', 'replace', 'privacy', 'learn', 'general')),
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_council_posts_hash ON council_posts(hash);
CREATE INDEX IF NOT EXISTS idx_council_posts_created_at ON council_posts(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_council_posts_votes ON council_posts(votes DESC);
`,
	// Future migrations go here:
	// Migration 2: `ALTER TABLE ...`,
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return err
	}

	var currentVersion int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	if err := row.Scan(&currentVersion); err != nil {
		return err
	}

	for i := currentVersion; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
	}

	return nil
}

func (s *Store) CreatePost(ctx context.Context, post *model.CouncilPost) (int64, error) {
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = post.CreatedAt

	res, err := s.db.ExecContext(ctx, `
INSERT INTO council_posts (author, content, votes, hash, is_anonymous, task_type, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, post.Author, post.Content, post.Votes, post.Hash, boolToInt(post.IsAnonymous), post.TaskType, post.CreatedAt.UnixMilli(), post.UpdatedAt.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrDuplicateHash
		}
		if isCheckViolation(err) {
			return 0, store.ErrConstraint
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	post.ID = id
	return id, nil
}

func (s *Store) GetPost(ctx context.Context, id int64) (model.CouncilPost, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, author, content, votes, hash, is_anonymous, task_type, created_at, updated_at
FROM council_posts
WHERE id = ?
LIMIT 1
`, id)
	return scanPost(row)
}

func (s *Store) FindPostByHash(ctx context.Context, hash string) (model.CouncilPost, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, author, content, votes, hash, is_anonymous, task_type, created_at, updated_at
FROM council_posts
WHERE hash = ?
LIMIT 1
`, hash)
	return scanPost(row)
}

func (s *Store) ListRecentPosts(ctx context.Context, limit int) ([]model.CouncilPost, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, author, content, votes, hash, is_anonymous, task_type, created_at, updated_at
FROM council_posts
ORDER BY created_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.CouncilPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (s *Store) UpdatePost(ctx context.Context, post *model.CouncilPost) error {
	post.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx, `
UPDATE council_posts
SET author = ?, content = ?, votes = ?, is_anonymous = ?, task_type = ?, updated_at = ?
WHERE id = ?
`, post.Author, post.Content, post.Votes, boolToInt(post.IsAnonymous), post.TaskType, post.UpdatedAt.UnixMilli(), post.ID)
	if err != nil {
		if isCheckViolation(err) {
			return store.ErrConstraint
		}
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id int64) (model.CouncilPost, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return model.CouncilPost{}, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM council_posts WHERE id = ?`, id); err != nil {
		return model.CouncilPost{}, err
	}
	return post, nil
}

func scanPost(scanner interface{ Scan(dest ...any) error }) (model.CouncilPost, error) {
	var p model.CouncilPost
	var anonymous int
	var created int64
	var updated int64
	if err := scanner.Scan(&p.ID, &p.Author, &p.Content, &p.Votes, &p.Hash, &anonymous, &p.TaskType, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CouncilPost{}, store.ErrNotFound
		}
		return model.CouncilPost{}, err
	}
	p.IsAnonymous = anonymous == 1
	p.CreatedAt = time.UnixMilli(created)
	p.UpdatedAt = time.UnixMilli(updated)
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY")
}

func isCheckViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "CHECK constraint failed")
}
