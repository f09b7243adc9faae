package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/infrastructure/jwt"
	"file-share-api/internal/interface/api/rest/dto/user"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/internal/interface/api/rest/validator"
)

type UserController struct {
	logger      *zap.Logger
	userService ports.UserService
}

func NewUserController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		logger:      logger,
		userService: userService,
	}

	r.GET(RouteUser, middleware.AuthMiddleware(jwtService), uc.GetUserHandler)

	return uc
}

// GetUserHandler returns the caller's own profile, quota usage included.
func (uc *UserController) GetUserHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}
	if c.GetString(middleware.CtxUserID) != uuid.String() {
		c.JSON(
			http.StatusForbidden,
			gin.H{"error": "token does not match requested user"},
		)
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}
