package repository

import (
	"context"

	"github.com/google/uuid"
)

const createUser = `
INSERT INTO users (email, first_name, last_name)
VALUES ($1, $2, $3)
RETURNING id, email, first_name, last_name, created_at`

type CreateUserParams struct {
	Email     string
	FirstName string
	LastName  string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Email, arg.FirstName, arg.LastName)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.FirstName, &i.LastName, &i.CreatedAt)
	return i, err
}

const getUser = `
SELECT id, email, first_name, last_name, created_at
FROM users
WHERE id = $1`

func (q *Queries) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUser, id)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.FirstName, &i.LastName, &i.CreatedAt)
	return i, err
}

const userExists = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

func (q *Queries) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	row := q.db.QueryRow(ctx, userExists, id)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
