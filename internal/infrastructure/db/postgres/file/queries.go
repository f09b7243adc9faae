package file

// Every select joins users for the owner uuid so the service layer can run
// ownership checks without a second round trip.
const (
	selectColumns = `
		  f.id, f.uuid, f.user_id, u.uuid,
		  f.file_name, f.mime_type, f.size_bytes,
		  f.bucket, f.storage_key, f.url, f.secure_url,
		  f.is_public, f.is_password_protected, f.password_hash, f.expires_at, f.shared_with,
		  f.created_at, f.updated_at
	`

	SelectFileByID = `
		SELECT` + selectColumns + `
		FROM files f
		JOIN users u ON u.id = f.user_id
		WHERE f.uuid = $1
	`

	// Expired public records are filtered out here rather than in Go so a
	// paged listing stays correct.
	SelectOwnerFiles = `
		SELECT` + selectColumns + `
		FROM files f
		JOIN users u ON u.id = f.user_id
		WHERE f.user_id = $1
		  AND NOT (f.is_public AND f.expires_at IS NOT NULL AND f.expires_at <= $2)
		ORDER BY f.created_at DESC
		LIMIT 50 OFFSET ( ($3 - 1) * 50 )
	`

	InsertFile = `
		WITH inserted AS (
			INSERT INTO files (user_id, file_name, mime_type, size_bytes, bucket, storage_key, url, secure_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING *
		)
		SELECT
		  f.id, f.uuid, f.user_id, u.uuid,
		  f.file_name, f.mime_type, f.size_bytes,
		  f.bucket, f.storage_key, f.url, f.secure_url,
		  f.is_public, f.is_password_protected, f.password_hash, f.expires_at, f.shared_with,
		  f.created_at, f.updated_at
		FROM inserted f
		JOIN users u ON u.id = f.user_id
	`

	DeleteFileByID = `DELETE FROM files WHERE uuid = $1`

	// No-op when the email is already present, which makes sharing idempotent.
	AppendSharedEmail = `
		WITH updated AS (
			UPDATE files
			SET shared_with = array_append(shared_with, $2),
			    updated_at = now()
			WHERE uuid = $1 AND NOT ($2 = ANY(shared_with))
			RETURNING *
		)
		SELECT
		  f.id, f.uuid, f.user_id, u.uuid,
		  f.file_name, f.mime_type, f.size_bytes,
		  f.bucket, f.storage_key, f.url, f.secure_url,
		  f.is_public, f.is_password_protected, f.password_hash, f.expires_at, f.shared_with,
		  f.created_at, f.updated_at
		FROM updated f
		JOIN users u ON u.id = f.user_id
	`

	// One atomic write for the whole link mutation. $2 tells whether to touch
	// expires_at at all; a NULL $3 then clears it. $4 carries a new password
	// hash or NULL to leave protection alone; once protected, the hash column
	// is never overwritten.
	UpdateShareSettings = `
		WITH updated AS (
			UPDATE files
			SET is_public = TRUE,
			    expires_at = CASE WHEN $2 THEN $3 ELSE expires_at END,
			    password_hash = CASE WHEN is_password_protected THEN password_hash ELSE COALESCE($4, password_hash) END,
			    is_password_protected = is_password_protected OR $4 IS NOT NULL,
			    updated_at = now()
			WHERE uuid = $1
			RETURNING *
		)
		SELECT
		  f.id, f.uuid, f.user_id, u.uuid,
		  f.file_name, f.mime_type, f.size_bytes,
		  f.bucket, f.storage_key, f.url, f.secure_url,
		  f.is_public, f.is_password_protected, f.password_hash, f.expires_at, f.shared_with,
		  f.created_at, f.updated_at
		FROM updated f
		JOIN users u ON u.id = f.user_id
	`

	SelectExpiredPublic = `
		SELECT` + selectColumns + `
		FROM files f
		JOIN users u ON u.id = f.user_id
		WHERE f.is_public AND f.expires_at IS NOT NULL AND f.expires_at <= $1
		LIMIT $2
	`
)
