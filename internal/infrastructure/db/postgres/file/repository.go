package file

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/user"
)

// DB is the slice of pgxpool.Pool the repository needs; pgxmock implements
// the same surface.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) file.Repository {
	return &Repository{db: db}
}

func scanFile(row pgx.Row) (*File, error) {
	f := new(File)
	err := row.Scan(
		&f.ID,
		&f.UUID,
		&f.UserID,
		&f.OwnerUUID,

		&f.FileName,
		&f.MimeType,
		&f.SizeBytes,

		&f.Bucket,
		&f.StorageKey,
		&f.URL,
		&f.SecureURL,

		&f.IsPublic,
		&f.IsPasswordProtected,
		&f.PasswordHash,
		&f.ExpiresAt,
		&f.SharedWith,

		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (r *Repository) FetchFileByID(ctx context.Context, id uuid.UUID) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, SelectFileByID, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchOwnerFiles(ctx context.Context, ownerID user.ID, now time.Time, page int) (file.Files, error) {
	rows, err := r.db.Query(ctx, SelectOwnerFiles, ownerID, now, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) CreateFile(ctx context.Context, ownerID user.ID, req *file.File) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(
		ctx,
		InsertFile,
		ownerID, req.FileName, req.MimeType, req.SizeBytes, req.Bucket, req.StorageKey, req.URL, req.SecureURL,
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) DeleteFile(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteFileByID, id.String())
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) AppendSharedEmail(ctx context.Context, id uuid.UUID, email string) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, AppendSharedEmail, id.String(), email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// already shared with that email
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) UpdateShareSettings(ctx context.Context, id uuid.UUID, patch file.SharePatch) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(
		ctx,
		UpdateShareSettings,
		id.String(), patch.TouchExpiry, patch.ExpiresAt, patch.PasswordHash,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchExpiredPublic(ctx context.Context, now time.Time, limit int) (file.Files, error) {
	rows, err := r.db.Query(ctx, SelectExpiredPublic, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}
