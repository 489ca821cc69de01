package user

import "encoding/json"

type (
	CreateRequest struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Cellphone string `json:"cellphone"`
	}

	// BulkCreateRequest items are decoded one by one so a malformed item
	// only fails itself.
	BulkCreateRequest struct {
		Users []json.RawMessage `json:"users"`
	}

	// UpdateRequest fields left out of the body stay nil and keep the stored value.
	UpdateRequest struct {
		Name      *string `json:"name"`
		Password  *string `json:"password"`
		Cellphone *string `json:"cellphone"`
	}
)
