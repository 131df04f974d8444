package file

const (
	fileColumns = `uuid, user_id, storage_key, original_name, mime_type, size_bytes, email, download_url, status,
		  max_size_gb, validity_hours, is_premium, payment_id, uploaded_at, expires_at`

	SelectFileByID = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE uuid = $1
	`
	SelectUserFiles = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
	`
	InsertFile = `
		INSERT INTO files (user_id, storage_key, original_name, mime_type, size_bytes, status,
		                   max_size_gb, validity_hours, is_premium, uploaded_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + fileColumns
	UpdateDownloadURL = `
		UPDATE files
		SET download_url = $1
		WHERE uuid = $2
		RETURNING ` + fileColumns
	ConfirmFileByID = `
		UPDATE files
		SET user_id = $1,
		    email = $2,
		    download_url = $3,
		    status = $4
		WHERE uuid = $5
		RETURNING ` + fileColumns
	UpdateEntitlementByID = `
		UPDATE files
		SET max_size_gb = $1,
		    validity_hours = $2,
		    is_premium = $3,
		    payment_id = $4,
		    expires_at = $5,
		    download_url = $6
		WHERE uuid = $7
		RETURNING ` + fileColumns
	DeleteExpiredFiles = `
		DELETE FROM files
		WHERE expires_at < $1
		RETURNING ` + fileColumns
	DeleteAllFiles = `DELETE FROM files`
)
