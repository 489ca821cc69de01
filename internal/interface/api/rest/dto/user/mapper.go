package user

import (
	"user-resource-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		ID:        int64(uDomain.ID),
		Name:      uDomain.Name,
		Email:     uDomain.Email,
		Cellphone: uDomain.Cellphone,
		Status:    uDomain.Status,
		CreatedAt: uDomain.CreatedAt,
		UpdatedAt: uDomain.UpdatedAt,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToCreateInput(r CreateRequest) user.CreateInput {
	return user.CreateInput{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Cellphone: r.Cellphone,
	}
}

func ToCreateInputs(rs []CreateRequest) []user.CreateInput {
	in := make([]user.CreateInput, len(rs))
	for idx, r := range rs {
		in[idx] = ToCreateInput(r)
	}

	return in
}

func ToUpdateInput(r UpdateRequest) user.UpdateInput {
	return user.UpdateInput{
		Name:      r.Name,
		Password:  r.Password,
		Cellphone: r.Cellphone,
	}
}

func ToBulkCreateResponse(r user.BulkResult) BulkCreateResponse {
	return BulkCreateResponse{
		SuccessfulCount: r.SuccessfulCount,
		FailedCount:     r.FailedCount,
	}
}
