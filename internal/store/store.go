package store

import (
	"context"
	"errors"

	"github.com/nirdonia/council/internal/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateHash = errors.New("duplicate hash")
	ErrConstraint    = errors.New("constraint violation")
)

// PostStore persists council posts. Each call is atomic on its own;
// read-modify-write sequences (load post, then UpdatePost) are not
// transactional, which is acceptable for an approximate vote count.
type PostStore interface {
	// CreatePost inserts a new post, assigning its id and timestamps.
	// Returns ErrDuplicateHash when the hash is already taken and
	// ErrConstraint when a field violates a schema constraint.
	CreatePost(ctx context.Context, post *model.CouncilPost) (int64, error)
	GetPost(ctx context.Context, id int64) (model.CouncilPost, error)
	FindPostByHash(ctx context.Context, hash string) (model.CouncilPost, error)
	// ListRecentPosts returns up to limit posts, newest first.
	ListRecentPosts(ctx context.Context, limit int) ([]model.CouncilPost, error)
	// UpdatePost persists mutations to an already-loaded post and
	// refreshes its UpdatedAt.
	UpdatePost(ctx context.Context, post *model.CouncilPost) error
	// DeletePost removes and returns the deleted post.
	DeletePost(ctx context.Context, id int64) (model.CouncilPost, error)
	Close() error
}
