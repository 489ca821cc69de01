package user

const (
	SelectUsers = `SELECT id, name, email, password, cellphone, status, created_at, updated_at FROM users`
	InsertUser  = `
		INSERT INTO users (name, email, password, cellphone, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING
		  id, name, email, password, cellphone, status, created_at, updated_at
	`
	UpdateUserByID = `
		UPDATE users
		SET name = $1,
		    password = $2,
		    cellphone = $3,
		    updated_at = now()
		WHERE id = $4
	`
	UpdateStatusByID = `
		UPDATE users
		SET status = $1,
		    updated_at = now()
		WHERE id = $2
	`
)
