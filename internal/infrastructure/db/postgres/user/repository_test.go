package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "file-share-api/internal/domain/user"
)

var userColumns = []string{
	"id", "uuid", "email", "password_hash", "name",
	"total_storage", "used_storage", "created_at", "updated_at",
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, &Repository{db: mock}
}

func TestRepository_FetchUserByEmail(t *testing.T) {
	id := uuid.New()
	hash := "bcrypt-digest"
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByEmail)).
			WithArgs("alice@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(
				uint64(3), id, "alice@example.com", &hash, "Alice",
				uint64(1<<30), uint64(100), now, now,
			))

		u, err := repo.FetchUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, id, u.UUID)
		assert.Equal(t, uint64(100), u.UsedStorage)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows maps to nil, nil", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByEmail)).
			WithArgs("ghost@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns))

		u, err := repo.FetchUserByEmail(context.Background(), "ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, u)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_CreateUser_DuplicateEmail(t *testing.T) {
	mock, repo := newMock(t)
	hash := "bcrypt-digest"
	mock.ExpectQuery(regexp.QuoteMeta(InsertUser)).
		WithArgs("alice@example.com", &hash, "Alice", uint64(1<<30)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), domain.User{
		Email:        "alice@example.com",
		PasswordHash: &hash,
		Name:         "Alice",
		TotalStorage: 1 << 30,
	})
	require.ErrorIs(t, err, ErrEmailAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchStorageUsage(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectStorageUsage)).
			WithArgs(domain.ID(3)).
			WillReturnRows(pgxmock.NewRows([]string{"used_storage", "total_storage"}).
				AddRow(uint64(600), uint64(1000)))

		used, total, found, err := repo.FetchStorageUsage(context.Background(), domain.ID(3))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, uint64(600), used)
		assert.Equal(t, uint64(1000), total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing profile", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectStorageUsage)).
			WithArgs(domain.ID(404)).
			WillReturnRows(pgxmock.NewRows([]string{"used_storage", "total_storage"}))

		_, _, found, err := repo.FetchStorageUsage(context.Background(), domain.ID(404))
		require.NoError(t, err)
		assert.False(t, found)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ReduceStorageUsage_ClampsAtZero(t *testing.T) {
	mock, repo := newMock(t)
	// the GREATEST() in the statement floors the result; the repository just
	// reports what the row holds afterwards
	mock.ExpectQuery(regexp.QuoteMeta(ReduceStorageUsage)).
		WithArgs(domain.ID(3), uint64(5000)).
		WillReturnRows(pgxmock.NewRows([]string{"used_storage"}).AddRow(uint64(0)))

	used, err := repo.ReduceStorageUsage(context.Background(), domain.ID(3), 5000)
	require.NoError(t, err)
	assert.Zero(t, used)
	require.NoError(t, mock.ExpectationsWereMet())
}
