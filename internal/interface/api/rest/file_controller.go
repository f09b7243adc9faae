package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	guuid "github.com/google/uuid"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/application/services"
	"file-share-api/internal/infrastructure/jwt"
	filedto "file-share-api/internal/interface/api/rest/dto/file"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/internal/interface/api/rest/validator"
)

// 100MB per file
const maxSize = int64(100 << 20)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	r.GET(RouteUserFiles, middleware.AuthMiddleware(jwtService), fc.GetUserFilesHandler)
	r.POST(RouteUserFiles, middleware.AuthMiddleware(jwtService), fc.CreateUserFilesHandler)
	r.DELETE(RouteUserFile, middleware.AuthMiddleware(jwtService), fc.DeleteUserFileHandler)
	r.POST(RouteUserFilesBatchDelete, middleware.AuthMiddleware(jwtService), fc.DeleteUserFilesHandler)

	return fc
}

// callerUUID validates the :user_id param and checks it against the token
// subject; every owner-scoped route goes through it.
func (fc *FileController) callerUUID(c *gin.Context) (guuid.UUID, bool) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return guuid.Nil, false
	}
	if c.GetString(middleware.CtxUserID) != uuid.String() {
		c.JSON(
			http.StatusForbidden,
			gin.H{"error": "token does not match requested user"},
		)
		return guuid.Nil, false
	}

	return uuid, true
}

func (fc *FileController) GetUserFilesHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}
	uuid, ok := fc.callerUUID(c)
	if !ok {
		return
	}

	files, err := fc.fileService.FindUserFiles(c.Request.Context(), uuid, page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		fc.logger.Error("FindUserFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, filedto.ResponseData{
		Data: filedto.ToResponseFiles(files),
	})
}

func (fc *FileController) CreateUserFilesHandler(c *gin.Context) {
	uuid, ok := fc.callerUUID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
		return
	}
	for _, fh := range headers {
		if fh.Size <= 0 || fh.Size > maxSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large or empty: " + fh.Filename})
			return
		}
	}

	results, err := fc.fileService.CreateUserFiles(c.Request.Context(), uuid, headers)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		fc.logger.Error("CreateUserFiles() error", zap.Error(err))
		return
	}

	c.JSON(uploadStatus(results), gin.H{"data": toUploadResponses(results)})
}

func (fc *FileController) DeleteUserFileHandler(c *gin.Context) {
	uuid, ok := fc.callerUUID(c)
	if !ok {
		return
	}
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	if err := fc.fileService.DeleteFile(c.Request.Context(), uuid, fileID); err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			fc.logger.Error("DeleteFile() error", zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to delete a file"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (fc *FileController) DeleteUserFilesHandler(c *gin.Context) {
	uuid, ok := fc.callerUUID(c)
	if !ok {
		return
	}

	var req struct {
		FileIDs []string `json:"file_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(req.FileIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_ids is required"})
		return
	}

	ids := make([]guuid.UUID, 0, len(req.FileIDs))
	for _, raw := range req.FileIDs {
		ok, id := validator.IsUUID(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file_ids must be valid UUIDs"})
			return
		}
		ids = append(ids, id)
	}

	results := fc.fileService.DeleteFiles(c.Request.Context(), uuid, ids)

	type deleteResponse struct {
		FileID string `json:"file_id"`
		Error  string `json:"error,omitempty"`
	}
	out := make([]deleteResponse, len(results))
	failed := 0
	for idx, res := range results {
		out[idx] = deleteResponse{FileID: res.FileID.String()}
		if res.Err != nil {
			out[idx].Error = res.Err.Error()
			failed++
		}
	}

	status := http.StatusOK
	if failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"data": out})
}

type uploadResponse struct {
	FileName string        `json:"file_name"`
	File     *filedto.File `json:"file,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func toUploadResponses(results []ports.UploadResult) []uploadResponse {
	out := make([]uploadResponse, len(results))
	for idx, res := range results {
		out[idx] = uploadResponse{FileName: res.FileName}
		if res.Err != nil {
			out[idx].Error = res.Err.Error()
			continue
		}
		f := filedto.ToResponseFile(*res.File)
		out[idx].File = &f
	}

	return out
}

func uploadStatus(results []ports.UploadResult) int {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	switch {
	case failed == 0:
		return http.StatusCreated
	case failed == len(results):
		return statusForError(results[0].Err)
	default:
		return http.StatusMultiStatus
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrFileExpired):
		return http.StatusGone
	case errors.Is(err, services.ErrFileNotPublic):
		return http.StatusForbidden
	case errors.Is(err, services.ErrQuotaExceeded):
		return http.StatusInsufficientStorage
	case errors.Is(err, services.ErrUpstreamTransfer):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
