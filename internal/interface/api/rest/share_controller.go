package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	guuid "github.com/google/uuid"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/infrastructure/jwt"
	filedto "file-share-api/internal/interface/api/rest/dto/file"
	"file-share-api/internal/interface/api/rest/dto/share"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/internal/interface/api/rest/validator"
)

type ShareController struct {
	shareService ports.ShareService
	logger       *zap.Logger
}

func NewShareController(
	r *gin.Engine,
	shareService ports.ShareService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *ShareController {
	sc := &ShareController{
		shareService: shareService,
		logger:       logger,
	}

	r.POST(RouteFileShare, middleware.AuthMiddleware(jwtService), sc.ShareFileHandler)
	r.POST(RouteFileLink, middleware.AuthMiddleware(jwtService), sc.GenerateLinkHandler)
	r.GET(RouteFile, sc.GetPublicFileHandler)

	return sc
}

func (sc *ShareController) fileID(c *gin.Context) (guuid.UUID, bool) {
	ok, id := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return guuid.Nil, false
	}

	return id, true
}

func (sc *ShareController) caller(c *gin.Context) (guuid.UUID, bool) {
	id, err := guuid.Parse(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return guuid.Nil, false
	}

	return id, true
}

func (sc *ShareController) ShareFileHandler(c *gin.Context) {
	fileID, ok := sc.fileID(c)
	if !ok {
		return
	}
	callerID, ok := sc.caller(c)
	if !ok {
		return
	}

	var req share.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if errs := validator.ValidateShare(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	rec, err := sc.shareService.ShareWithUser(c.Request.Context(), callerID, fileID, req.Email)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			sc.logger.Error("ShareWithUser() error", zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to share a file"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, filedto.ToResponseFile(*rec))
}

func (sc *ShareController) GenerateLinkHandler(c *gin.Context) {
	fileID, ok := sc.fileID(c)
	if !ok {
		return
	}
	callerID, ok := sc.caller(c)
	if !ok {
		return
	}

	var req share.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if errs := validator.ValidateLink(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	url, err := sc.shareService.GenerateLink(c.Request.Context(), callerID, fileID, share.ToLinkOptions(req))
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			sc.logger.Error("GenerateLink() error", zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to generate a link"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, share.LinkResponse{URL: url})
}

// GetPublicFileHandler is the unauthenticated public-link endpoint. Password
// checks run after the public and expiry gates, so a closed or expired file
// reports its own status rather than demanding credentials.
func (sc *ShareController) GetPublicFileHandler(c *gin.Context) {
	fileID, ok := sc.fileID(c)
	if !ok {
		return
	}

	rec, err := sc.shareService.ResolvePublicAccess(c.Request.Context(), fileID, time.Now())
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			sc.logger.Error("ResolvePublicAccess() error", zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to resolve a file"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if rec.IsPasswordProtected {
		ok, err := sc.shareService.VerifyPassword(c.Request.Context(), fileID, c.GetHeader(HeaderFilePassword))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": "failed to verify password"})
			sc.logger.Error("VerifyPassword() error", zap.Error(err))
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid file password"})
			return
		}
	}

	c.JSON(http.StatusOK, filedto.ToResponseFile(*rec))
}
