package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/repository"
)

// UserDirectory answers user lookups. Accounts are managed elsewhere; this
// service only checks that a referenced user exists.
type UserDirectory interface {
	// Exists returns domain.ErrUserNotFound when no user has the id.
	Exists(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*repository.User, error)
}

type userDirectory struct {
	repo repository.Querier
}

// NewUserDirectory creates a UserDirectory backed by the users table.
func NewUserDirectory(repo repository.Querier) UserDirectory {
	return &userDirectory{repo: repo}
}

func (d *userDirectory) Exists(ctx context.Context, id uuid.UUID) error {
	return userExists(ctx, d.repo, id, "user.exists")
}

func (d *userDirectory) Get(ctx context.Context, id uuid.UUID) (*repository.User, error) {
	user, err := d.repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound, "user.get")
	}
	return &user, nil
}

// userExists runs the existence check on q, which may be transaction scoped.
func userExists(ctx context.Context, q repository.Querier, id uuid.UUID, op string) error {
	ok, err := q.UserExists(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to look up user")
	}
	if !ok {
		return domain.WithOp(domain.ErrUserNotFound, op)
	}
	return nil
}
