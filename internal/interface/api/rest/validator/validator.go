package validator

import (
	"strconv"

	"user-resource-api/internal/domain/user"
)

// ParseID accepts positive base-10 integers only: no sign, no spaces.
func ParseID(s string) (user.ID, bool) {
	if s == "" || s[0] == '+' {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return user.ID(id), true
}

// QueryParam distinguishes an absent query value (nil) from an empty one.
func QueryParam(v string, ok bool) *string {
	if !ok {
		return nil
	}
	return &v
}
