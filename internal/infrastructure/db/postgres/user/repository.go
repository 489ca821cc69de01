package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"user-resource-api/internal/domain/user"
	"user-resource-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUsers(ctx context.Context, f *user.Filter) (user.Users, error) {
	where, args, err := whereClause(f)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, SelectUsers+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := Users{}
	for rows.Next() {
		u := new(User)
		if err = rows.Scan(u.scanDest()...); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}

func (r *Repository) FetchUser(ctx context.Context, f *user.Filter) (*user.User, error) {
	where, args, err := whereClause(f)
	if err != nil {
		return nil, err
	}

	u := new(User)
	err = r.db.QueryRow(ctx, SelectUsers+where+" LIMIT 1", args...).Scan(u.scanDest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.Name, req.Email, req.PasswordHash, req.Cellphone, req.Status,
	).Scan(u.scanDest()...)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) UpdateUser(ctx context.Context, id user.ID, ch user.Changes) error {
	if _, err := r.db.Exec(ctx, UpdateUserByID, ch.Name, ch.PasswordHash, ch.Cellphone, int64(id)); err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}

	return nil
}

func (r *Repository) SetStatus(ctx context.Context, id user.ID, status bool) error {
	if _, err := r.db.Exec(ctx, UpdateStatusByID, status, int64(id)); err != nil {
		return fmt.Errorf("set status of user %d: %w", id, err)
	}

	return nil
}
