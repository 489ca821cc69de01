package ports

import (
	"context"

	"user-resource-api/internal/domain/user"
)

type UserService interface {
	CreateUser(ctx context.Context, in user.CreateInput) (*user.User, error)
	FindActiveUsers(ctx context.Context) (user.Users, error)
	SearchUsers(ctx context.Context, p user.SearchParams) (user.Users, error)
	BulkCreateUsers(ctx context.Context, in []user.CreateInput) user.BulkResult
	FindUserByID(ctx context.Context, id user.ID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	UserExists(ctx context.Context, id user.ID) (bool, error)
	UpdateUser(ctx context.Context, id user.ID, in user.UpdateInput) error
	DeleteUser(ctx context.Context, id user.ID) error
}
