// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tsuzuki/internal/platform/database/schema"
	"github.com/taibuivan/tsuzuki/internal/platform/dberr"
)

// # PostgreSQL Repositories

// userRepository implements the [UserRepository] interface using pgx.
type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed user store.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// # User Repository Implementation

// FindByID returns the account with the given ID.
func (repository *userRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findByColumn(context, schema.UsersAccount.ID, id)
}

// FindByEmail returns the account with the given email.
func (repository *userRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findByColumn(context, schema.UsersAccount.Email, email)
}

// FindByUsername returns the account with the given username.
func (repository *userRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findByColumn(context, schema.UsersAccount.Username, username)
}

// findByColumn is the shared single-row account lookup.
func (repository *userRepository) findByColumn(context context.Context, column, value string) (*User, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.DisplayName, schema.UsersAccount.PasswordHash, schema.UsersAccount.Role,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table,
		column,
	)

	var record User
	err := repository.pool.QueryRow(context, query, value).Scan(
		&record.ID,
		&record.Username,
		&record.Email,
		&record.DisplayName,
		&record.PasswordHash,
		&record.Role,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "")
	}

	return &record, nil
}

/*
Create persists a brand-new user account to the storage.

Description: Unique constraints on username and email turn racing duplicate
registrations into a Conflict for the loser.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict on duplicate identity, or storage failures
*/
func (repository *userRepository) Create(context context.Context, user *User) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.DisplayName, schema.UsersAccount.PasswordHash, schema.UsersAccount.Role,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "User", "Username or email is already registered")
	}

	return nil
}
