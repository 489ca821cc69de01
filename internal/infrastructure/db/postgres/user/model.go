package user

import (
	"time"
)

type (
	User struct {
		ID        int64
		Name      string
		Email     string
		Password  string
		Cellphone string
		Status    bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)

func (u *User) scanDest() []any {
	return []any{
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Cellphone,
		&u.Status,

		&u.CreatedAt,
		&u.UpdatedAt,
	}
}
