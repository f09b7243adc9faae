package services

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"file-share-api/internal/application/ports"
	domain "file-share-api/internal/domain/file"
	"file-share-api/internal/domain/user"
	"file-share-api/internal/infrastructure/mq"
	filedto "file-share-api/internal/interface/api/rest/dto/file"
)

const maxBaseNameLen = 100

var (
	windowsReserved = map[string]struct{}{
		"con": {}, "prn": {}, "aux": {}, "nul": {},
		"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
		"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
	}
	fileSafeRe    = regexp.MustCompile(`[^A-Za-z0-9\.\_\- ]+`)
	leadingDotsRe = regexp.MustCompile(`^\.+`)
)

type FileService struct {
	blobs          ports.BlobStore
	quota          ports.Quota
	fileRepository domain.Repository
	userRepository user.Repository
	mq             ports.RabbitMQ
	logger         *zap.Logger
	mCounter       *prometheus.CounterVec
}

func NewFileService(
	blobs ports.BlobStore,
	quota ports.Quota,
	fileRepository domain.Repository,
	userRepository user.Repository,
	mq ports.RabbitMQ,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *FileService {
	return &FileService{
		blobs:          blobs,
		quota:          quota,
		fileRepository: fileRepository,
		userRepository: userRepository,
		mq:             mq,
		logger:         logger,
		mCounter:       mCounter,
	}
}

func (fs *FileService) FindUserFiles(ctx context.Context, ownerUUID user.UUID, page int) (domain.Files, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	fls, err := fs.fileRepository.FetchOwnerFiles(ctx, id, time.Now().UTC(), page)
	if err != nil {
		return nil, err
	}

	return fls, nil
}

// CreateUserFiles fans out one goroutine per file; a failing sibling never
// aborts the rest, each slot of the result carries its own outcome.
func (fs *FileService) CreateUserFiles(
	ctx context.Context,
	ownerUUID user.UUID,
	in []*multipart.FileHeader,
) ([]ports.UploadResult, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	results := make([]ports.UploadResult, len(in))
	var wg sync.WaitGroup
	for idx, fh := range in {
		wg.Add(1)
		go func(idx int, fh *multipart.FileHeader) {
			defer wg.Done()
			f, err := fs.createUserFile(ctx, id, ownerUUID, fh)
			results[idx] = ports.UploadResult{FileName: fh.Filename, File: f, Err: err}
		}(idx, fh)
	}
	wg.Wait()

	return results, nil
}

// createUserFile runs the upload sequence: quota reservation, blob transfer,
// metadata insert. The reservation is compensated on every failure after it;
// the blob itself is not rolled back when only the insert fails (two
// independently failing stores, no two-phase commit) — such blobs stay
// orphaned and are surfaced to operators via the warn log.
func (fs *FileService) createUserFile(
	ctx context.Context,
	ownerID user.ID,
	ownerUUID user.UUID,
	in *multipart.FileHeader,
) (*domain.File, error) {
	rec := fs.fillMetaData(in, new(domain.File), ownerUUID)
	size := uint64(in.Size)

	if err := fs.quota.Reserve(ctx, ownerID, size); err != nil {
		return nil, err
	}

	f, err := in.Open()
	if err != nil {
		fs.releaseQuota(ctx, ownerID, size)
		return nil, err
	}
	defer f.Close()

	up, err := fs.blobs.Upload(ctx, f, rec.StorageKey, rec.MimeType, in.Size)
	if err != nil {
		fs.releaseQuota(ctx, ownerID, size)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamTransfer, err)
	}
	rec.URL = up.URL
	rec.SecureURL = up.SecureURL
	rec.StorageKey = up.ProviderID

	out, err := fs.fileRepository.CreateFile(ctx, ownerID, rec)
	if err != nil {
		fs.releaseQuota(ctx, ownerID, size)
		fs.logger.Warn("orphaned blob: metadata insert failed after upload",
			zap.String("storage_key", rec.StorageKey),
			zap.Error(err),
		)
		return nil, err
	}

	fs.publishEvent(mq.ActionUploaded, out)
	fs.mCounter.WithLabelValues("files_uploaded_total").Inc()

	return out, nil
}

func (fs *FileService) DeleteFile(ctx context.Context, callerUUID user.UUID, fileID uuid.UUID) error {
	rec, err := fs.fileRepository.FetchFileByID(ctx, fileID)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	if rec.OwnerUUID != callerUUID {
		return ErrUnauthorized
	}

	return fs.removeRecord(ctx, rec, mq.ActionDeleted)
}

func (fs *FileService) DeleteFiles(ctx context.Context, callerUUID user.UUID, fileIDs []uuid.UUID) []ports.DeleteResult {
	results := make([]ports.DeleteResult, len(fileIDs))
	var wg sync.WaitGroup
	for idx, id := range fileIDs {
		wg.Add(1)
		go func(idx int, id uuid.UUID) {
			defer wg.Done()
			results[idx] = ports.DeleteResult{FileID: id, Err: fs.DeleteFile(ctx, callerUUID, id)}
		}(idx, id)
	}
	wg.Wait()

	return results
}

// removeRecord deletes the blob best-effort, then the metadata, then releases
// the quota. A failed blob delete is logged and the metadata delete proceeds:
// an orphaned blob is a lesser harm than orphaned metadata blocking the
// quota release.
func (fs *FileService) removeRecord(ctx context.Context, rec *domain.File, action string) error {
	if err := fs.blobs.Delete(ctx, rec.StorageKey); err != nil {
		fs.logger.Warn("blob delete failed, metadata delete proceeds",
			zap.String("storage_key", rec.StorageKey),
			zap.Error(err),
		)
	}

	deleted, err := fs.fileRepository.DeleteFile(ctx, rec.UUID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	fs.releaseQuota(ctx, rec.OwnerID, rec.SizeBytes)
	fs.publishEvent(action, rec)
	fs.mCounter.WithLabelValues("files_deleted_total").Inc()

	return nil
}

func (fs *FileService) releaseQuota(ctx context.Context, id user.ID, bytes uint64) {
	if err := fs.quota.Release(ctx, id, bytes); err != nil {
		fs.logger.Warn("quota release failed",
			zap.Uint64("user_id", uint64(id)),
			zap.Uint64("bytes", bytes),
			zap.Error(err),
		)
	}
}

func (fs *FileService) publishEvent(action string, f *domain.File) {
	fs.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  action,
		OwnerID: f.OwnerUUID.String(),
		Payload: filedto.ToResponseFile(*f),
	}
}

func (fs *FileService) fillMetaData(
	in *multipart.FileHeader,
	f *domain.File,
	ownerUUID user.UUID,
) *domain.File {
	f.FileName = filepath.Base(sanitizeFileName(in.Filename))
	f.MimeType = in.Header.Get("Content-Type")
	if f.MimeType == "" {
		f.MimeType = "application/octet-stream"
	}
	f.SizeBytes = uint64(in.Size)
	f.Bucket = fs.blobs.GetBucket()
	f.StorageKey = fs.genSafeStorageKey(f, ownerUUID)
	f.URL = fs.blobs.GetPublicURL(f.StorageKey)

	return f
}

// genSafeStorageKey: "uploads/YYYY/MM/DD/<shortuuid>/<owneruuid>/<filename>.ext"
func (fs *FileService) genSafeStorageKey(
	f *domain.File,
	ownerUUID user.UUID,
) string {
	clean := strings.TrimSpace(f.FileName)
	clean = strings.Map(func(r rune) rune {
		if r == '\x00' || r < 0x20 {
			return -1
		}
		return r
	}, clean)
	clean = leadingDotsRe.ReplaceAllString(clean, "")

	ext := strings.ToLower(filepath.Ext(clean))
	base := strings.TrimSuffix(clean, ext)

	if ext == "" {
		if exts, _ := mime.ExtensionsByType(f.MimeType); len(exts) > 0 {
			ext = exts[0]
		}
	}

	base = fileSafeRe.ReplaceAllString(base, "-")
	base = strings.Trim(base, "- .")

	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}

	if base == "" {
		base = "file"
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ext == "" {
		ext = ".bin"
	}

	safeFileName := base + ext

	now := time.Now().UTC()
	return fmt.Sprintf(
		"uploads/%04d/%02d/%02d/%s/%s/%s",
		now.Year(), int(now.Month()), now.Day(),
		shortuuid.New(),
		strings.ToLower(strings.ReplaceAll(ownerUUID.String(), "-", "")),
		safeFileName,
	)
}

// sanitizeFileName make file name ASCII standard
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, ext)

	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_':
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		case r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	if _, bad := windowsReserved[base]; bad {
		base = "_" + base
	}

	for utf8.RuneCountInString(base)+len(ext) > maxBaseNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
