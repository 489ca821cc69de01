package user

import (
	"time"
)

type (
	ID   int64
	User struct {
		ID           ID
		Name         string
		Email        string
		PasswordHash string
		Cellphone    string
		Status       bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User

	// Changes is the merged payload written by an update.
	Changes struct {
		Name         string
		PasswordHash string
		Cellphone    string
	}
)

// Active reports whether the user has not been soft-deleted.
func (u *User) Active() bool { return u.Status }
