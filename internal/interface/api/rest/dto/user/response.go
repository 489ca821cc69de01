package user

import (
	"time"
)

type (
	User struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Cellphone string    `json:"cellphone"`
		Status    bool      `json:"status"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
	Users []User

	BulkCreateResponse struct {
		SuccessfulCount int `json:"successfulCount"`
		FailedCount     int `json:"failedCount"`
	}
)
