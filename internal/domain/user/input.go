package user

type (
	CreateInput struct {
		Name      string
		Email     string
		Password  string
		Cellphone string
	}

	// UpdateInput fields that are nil keep the stored value.
	UpdateInput struct {
		Name      *string
		Password  *string
		Cellphone *string
	}

	BulkResult struct {
		SuccessfulCount int
		FailedCount     int
	}
)
