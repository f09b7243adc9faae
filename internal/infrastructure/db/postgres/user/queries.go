package user

const (
	SelectUserByID = `
		SELECT id, uuid, email, password_hash, name, total_storage, used_storage, created_at, updated_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByEmail = `
		SELECT id, uuid, email, password_hash, name, total_storage, used_storage, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (email, password_hash, name, total_storage)
		VALUES ($1, $2, $3, $4)
		RETURNING
		  id, uuid, email, password_hash, name, total_storage, used_storage, created_at, updated_at
	`
	SelectIdByUUID = `SELECT id FROM users WHERE uuid = $1::uuid`

	SelectStorageUsage = `SELECT used_storage, total_storage FROM users WHERE id = $1`
	AddStorageUsage    = `
		UPDATE users
		SET used_storage = used_storage + $2,
		    updated_at = now()
		WHERE id = $1
	`
	ReduceStorageUsage = `
		UPDATE users
		SET used_storage = GREATEST(used_storage - $2, 0),
		    updated_at = now()
		WHERE id = $1
		RETURNING used_storage
	`
)
