package user

import (
	"context"
)

type Repository interface {
	FetchUser(ctx context.Context, f *Filter) (*User, error)
	FetchUsers(ctx context.Context, f *Filter) (Users, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateUser(ctx context.Context, id ID, ch Changes) error
	SetStatus(ctx context.Context, id ID, status bool) error
}
