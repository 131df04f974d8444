package user

const (
	SelectUserByID = `
		SELECT uuid, name, email, password_hash, is_admin, created_at, updated_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByEmail = `
		SELECT uuid, name, email, password_hash, is_admin, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING
		  uuid, name, email, password_hash, is_admin, created_at, updated_at
	`
	UpdateProfileByUUID = `
		UPDATE users
		SET name = $1,
		    email = $2,
		    updated_at = now()
		WHERE uuid = $3
		RETURNING
		  uuid, name, email, password_hash, is_admin, created_at, updated_at
	`
	UpdatePasswordByUUID = `
		UPDATE users
		SET password_hash = $1,
		    updated_at = now()
		WHERE uuid = $2
	`
)
