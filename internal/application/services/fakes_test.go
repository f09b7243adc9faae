package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"

	"file-share-api/internal/application/ports"
	domainFile "file-share-api/internal/domain/file"
	domainUser "file-share-api/internal/domain/user"
	"file-share-api/internal/infrastructure/mq"
)

// testCounter stays off the default registry so parallel test binaries never
// collide on duplicate registration.
func testCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fileshare",
			Name:      "general_counters",
		},
		[]string{"result"})
}

type FakeUserRepository struct {
	FetchUserByIDFunc      func(ctx context.Context, uuid domainUser.UUID) (*domainUser.User, error)
	FetchUserByEmailFunc   func(ctx context.Context, email string) (*domainUser.User, error)
	CreateUserFunc         func(ctx context.Context, req domainUser.User) (*domainUser.User, error)
	FetchInternalIDFunc    func(ctx context.Context, uuid domainUser.UUID) (domainUser.ID, error)
	FetchStorageUsageFunc  func(ctx context.Context, id domainUser.ID) (uint64, uint64, bool, error)
	AddStorageUsageFunc    func(ctx context.Context, id domainUser.ID, bytes uint64) error
	ReduceStorageUsageFunc func(ctx context.Context, id domainUser.ID, bytes uint64) (uint64, error)
}

func (f *FakeUserRepository) FetchUserByID(ctx context.Context, uuid domainUser.UUID) (*domainUser.User, error) {
	if f.FetchUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserByIDFunc(ctx, uuid)
}
func (f *FakeUserRepository) FetchUserByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	if f.FetchUserByEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserByEmailFunc(ctx, email)
}
func (f *FakeUserRepository) CreateUser(ctx context.Context, req domainUser.User) (*domainUser.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateUserFunc(ctx, req)
}
func (f *FakeUserRepository) FetchInternalID(ctx context.Context, uuid domainUser.UUID) (domainUser.ID, error) {
	if f.FetchInternalIDFunc == nil {
		return 0, errors.New("not used")
	}
	return f.FetchInternalIDFunc(ctx, uuid)
}
func (f *FakeUserRepository) FetchStorageUsage(ctx context.Context, id domainUser.ID) (uint64, uint64, bool, error) {
	if f.FetchStorageUsageFunc == nil {
		return 0, 0, false, errors.New("not used")
	}
	return f.FetchStorageUsageFunc(ctx, id)
}
func (f *FakeUserRepository) AddStorageUsage(ctx context.Context, id domainUser.ID, bytes uint64) error {
	if f.AddStorageUsageFunc == nil {
		return errors.New("not used")
	}
	return f.AddStorageUsageFunc(ctx, id, bytes)
}
func (f *FakeUserRepository) ReduceStorageUsage(ctx context.Context, id domainUser.ID, bytes uint64) (uint64, error) {
	if f.ReduceStorageUsageFunc == nil {
		return 0, errors.New("not used")
	}
	return f.ReduceStorageUsageFunc(ctx, id, bytes)
}

type FakeFileRepository struct {
	FetchFileByIDFunc       func(ctx context.Context, uuid uuid.UUID) (*domainFile.File, error)
	FetchOwnerFilesFunc     func(ctx context.Context, ownerID domainUser.ID, now time.Time, page int) (domainFile.Files, error)
	CreateFileFunc          func(ctx context.Context, ownerID domainUser.ID, req *domainFile.File) (*domainFile.File, error)
	DeleteFileFunc          func(ctx context.Context, uuid uuid.UUID) (bool, error)
	AppendSharedEmailFunc   func(ctx context.Context, uuid uuid.UUID, email string) (*domainFile.File, error)
	UpdateShareSettingsFunc func(ctx context.Context, uuid uuid.UUID, patch domainFile.SharePatch) (*domainFile.File, error)
	FetchExpiredPublicFunc  func(ctx context.Context, now time.Time, limit int) (domainFile.Files, error)
}

func (f *FakeFileRepository) FetchFileByID(ctx context.Context, id uuid.UUID) (*domainFile.File, error) {
	if f.FetchFileByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchFileByIDFunc(ctx, id)
}
func (f *FakeFileRepository) FetchOwnerFiles(ctx context.Context, ownerID domainUser.ID, now time.Time, page int) (domainFile.Files, error) {
	if f.FetchOwnerFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchOwnerFilesFunc(ctx, ownerID, now, page)
}
func (f *FakeFileRepository) CreateFile(ctx context.Context, ownerID domainUser.ID, req *domainFile.File) (*domainFile.File, error) {
	if f.CreateFileFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFileFunc(ctx, ownerID, req)
}
func (f *FakeFileRepository) DeleteFile(ctx context.Context, id uuid.UUID) (bool, error) {
	if f.DeleteFileFunc == nil {
		return false, errors.New("not used")
	}
	return f.DeleteFileFunc(ctx, id)
}
func (f *FakeFileRepository) AppendSharedEmail(ctx context.Context, id uuid.UUID, email string) (*domainFile.File, error) {
	if f.AppendSharedEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.AppendSharedEmailFunc(ctx, id, email)
}
func (f *FakeFileRepository) UpdateShareSettings(ctx context.Context, id uuid.UUID, patch domainFile.SharePatch) (*domainFile.File, error) {
	if f.UpdateShareSettingsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateShareSettingsFunc(ctx, id, patch)
}
func (f *FakeFileRepository) FetchExpiredPublic(ctx context.Context, now time.Time, limit int) (domainFile.Files, error) {
	if f.FetchExpiredPublicFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchExpiredPublicFunc(ctx, now, limit)
}

type FakeBlobStore struct {
	UploadFunc func(ctx context.Context, body io.Reader, key, contentType string, size int64) (*ports.BlobUpload, error)
	DeleteFunc func(ctx context.Context, providerID string) error
}

func (f *FakeBlobStore) Upload(ctx context.Context, body io.Reader, key, contentType string, size int64) (*ports.BlobUpload, error) {
	if f.UploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFunc(ctx, body, key, contentType, size)
}
func (f *FakeBlobStore) Delete(ctx context.Context, providerID string) error {
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, providerID)
}
func (f *FakeBlobStore) GetPublicURL(key string) string { return "http://blob.test/" + key }
func (f *FakeBlobStore) GetBucket() string              { return "test-bucket" }

type FakeQuota struct {
	ReserveFunc func(ctx context.Context, userID domainUser.ID, bytes uint64) error
	ReleaseFunc func(ctx context.Context, userID domainUser.ID, bytes uint64) error
}

func (f *FakeQuota) Reserve(ctx context.Context, userID domainUser.ID, bytes uint64) error {
	if f.ReserveFunc == nil {
		return errors.New("not used")
	}
	return f.ReserveFunc(ctx, userID, bytes)
}
func (f *FakeQuota) Release(ctx context.Context, userID domainUser.ID, bytes uint64) error {
	if f.ReleaseFunc == nil {
		return errors.New("not used")
	}
	return f.ReleaseFunc(ctx, userID, bytes)
}

// FakeRabbitMQ buffers published events so tests can assert on them without
// a broker.
type FakeRabbitMQ struct {
	events chan mq.Event
}

func NewFakeRabbitMQ() *FakeRabbitMQ {
	return &FakeRabbitMQ{events: make(chan mq.Event, 64)}
}

func (f *FakeRabbitMQ) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeRabbitMQ) Init() error                                   { return nil }
func (f *FakeRabbitMQ) PublisherWorker(ctx context.Context)           {}
func (f *FakeRabbitMQ) GetInputChan() chan mq.Event                   { return f.events }
func (f *FakeRabbitMQ) GetConn() *amqp091.Connection                  { return nil }
