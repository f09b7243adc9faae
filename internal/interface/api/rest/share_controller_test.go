package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/application/services"
	domainFile "file-share-api/internal/domain/file"
	domainUser "file-share-api/internal/domain/user"
	jwtSvc "file-share-api/internal/infrastructure/jwt"
	"file-share-api/internal/interface/api/rest/middleware"
)

func SignJWT(secret, userID string, exp time.Duration) (string, error) {
	type Claims struct {
		UserID string `json:"user_id"`
		jwtv5.RegisteredClaims
	}
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(exp)),
		},
	}
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

type FakeShareService struct {
	ShareWithUserFunc       func(ctx context.Context, callerUUID domainUser.UUID, fileID uuid.UUID, email string) (*domainFile.File, error)
	GenerateLinkFunc        func(ctx context.Context, callerUUID domainUser.UUID, fileID uuid.UUID, opts domainFile.LinkOptions) (string, error)
	VerifyPasswordFunc      func(ctx context.Context, fileID uuid.UUID, password string) (bool, error)
	ResolvePublicAccessFunc func(ctx context.Context, fileID uuid.UUID, now time.Time) (*domainFile.File, error)
}

func (f *FakeShareService) ShareWithUser(ctx context.Context, callerUUID domainUser.UUID, fileID uuid.UUID, email string) (*domainFile.File, error) {
	if f.ShareWithUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ShareWithUserFunc(ctx, callerUUID, fileID, email)
}
func (f *FakeShareService) GenerateLink(ctx context.Context, callerUUID domainUser.UUID, fileID uuid.UUID, opts domainFile.LinkOptions) (string, error) {
	if f.GenerateLinkFunc == nil {
		return "", errors.New("not used")
	}
	return f.GenerateLinkFunc(ctx, callerUUID, fileID, opts)
}
func (f *FakeShareService) VerifyPassword(ctx context.Context, fileID uuid.UUID, password string) (bool, error) {
	if f.VerifyPasswordFunc == nil {
		return false, errors.New("not used")
	}
	return f.VerifyPasswordFunc(ctx, fileID, password)
}
func (f *FakeShareService) ResolvePublicAccess(ctx context.Context, fileID uuid.UUID, now time.Time) (*domainFile.File, error) {
	if f.ResolvePublicAccessFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ResolvePublicAccessFunc(ctx, fileID, now)
}

func setupRouterSC(t *testing.T, ss ports.ShareService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	logger := zap.NewNop()
	secret := "test-secret"
	j := jwtSvc.New(secret)

	sc := &ShareController{
		shareService: ss,
		logger:       logger,
	}

	r.POST("/files/:file_id/share", middleware.AuthMiddleware(j), sc.ShareFileHandler)
	r.POST("/files/:file_id/link", middleware.AuthMiddleware(j), sc.GenerateLinkHandler)
	r.GET("/files/:file_id", sc.GetPublicFileHandler)

	return r, secret
}

func doShareReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestShareController_ShareFileHandler(t *testing.T) {
	caller := uuid.New()
	fileID := uuid.New()

	withAuth := func(secret, userID string) map[string]string {
		tok, _ := SignJWT(secret, userID, time.Hour)
		return map[string]string{"Authorization": "Bearer " + tok}
	}

	tests := []struct {
		name       string
		fileID     string
		headers    map[string]string
		body       any
		mockSS     func() ports.ShareService
		wantStatus int
		wantErr    string
	}{
		{
			name:       "401 missing Authorization",
			fileID:     fileID.String(),
			body:       map[string]string{"email": "bob@example.com"},
			mockSS:     func() ports.ShareService { return &FakeShareService{} },
			wantStatus: http.StatusUnauthorized,
			wantErr:    "missing Authorization header",
		},
		{
			name:       "400 invalid uuid",
			fileID:     "not-uuid",
			headers:    withAuth("test-secret", caller.String()),
			body:       map[string]string{"email": "bob@example.com"},
			mockSS:     func() ports.ShareService { return &FakeShareService{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "file_id must be a valid UUID",
		},
		{
			name:       "400 invalid email",
			fileID:     fileID.String(),
			headers:    withAuth("test-secret", caller.String()),
			body:       map[string]string{"email": "not-an-email"},
			mockSS:     func() ports.ShareService { return &FakeShareService{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name:    "403 non-owner",
			fileID:  fileID.String(),
			headers: withAuth("test-secret", caller.String()),
			body:    map[string]string{"email": "bob@example.com"},
			mockSS: func() ports.ShareService {
				return &FakeShareService{
					ShareWithUserFunc: func(ctx context.Context, callerUUID domainUser.UUID, id uuid.UUID, email string) (*domainFile.File, error) {
						return nil, services.ErrUnauthorized
					},
				}
			},
			wantStatus: http.StatusForbidden,
			wantErr:    services.ErrUnauthorized.Error(),
		},
		{
			name:    "404 missing file",
			fileID:  fileID.String(),
			headers: withAuth("test-secret", caller.String()),
			body:    map[string]string{"email": "bob@example.com"},
			mockSS: func() ports.ShareService {
				return &FakeShareService{
					ShareWithUserFunc: func(ctx context.Context, callerUUID domainUser.UUID, id uuid.UUID, email string) (*domainFile.File, error) {
						return nil, services.ErrNotFound
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantErr:    services.ErrNotFound.Error(),
		},
		{
			name:    "200 success",
			fileID:  fileID.String(),
			headers: withAuth("test-secret", caller.String()),
			body:    map[string]string{"email": "bob@example.com"},
			mockSS: func() ports.ShareService {
				return &FakeShareService{
					ShareWithUserFunc: func(ctx context.Context, callerUUID domainUser.UUID, id uuid.UUID, email string) (*domainFile.File, error) {
						assert.Equal(t, caller, callerUUID)
						assert.Equal(t, fileID, id)
						return &domainFile.File{UUID: id, SharedWith: []string{email}}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouterSC(t, tt.mockSS())
			rr := doShareReq(t, r, http.MethodPost, "/files/"+tt.fileID+"/share", tt.body, tt.headers)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErr != "" {
				var resp map[string]any
				_ = json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.Equal(t, tt.wantErr, resp["error"])
			}
		})
	}
}

func TestShareController_GenerateLinkHandler(t *testing.T) {
	caller := uuid.New()
	fileID := uuid.New()

	withAuth := func() map[string]string {
		tok, _ := SignJWT("test-secret", caller.String(), time.Hour)
		return map[string]string{"Authorization": "Bearer " + tok}
	}

	t.Run("200 returns the link", func(t *testing.T) {
		ss := &FakeShareService{
			GenerateLinkFunc: func(ctx context.Context, callerUUID domainUser.UUID, id uuid.UUID, opts domainFile.LinkOptions) (string, error) {
				require.NotNil(t, opts.ExpiresIn)
				assert.Equal(t, 24*time.Hour, *opts.ExpiresIn)
				assert.Equal(t, "pw", opts.Password)
				return "/files/" + id.String(), nil
			},
		}
		r, _ := setupRouterSC(t, ss)

		body := map[string]any{"expires_in_hours": 24, "password": "pw"}
		rr := doShareReq(t, r, http.MethodPost, "/files/"+fileID.String()+"/link", body, withAuth())
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "/files/"+fileID.String(), resp["url"])
	})

	t.Run("explicit null clears expiry", func(t *testing.T) {
		ss := &FakeShareService{
			GenerateLinkFunc: func(ctx context.Context, callerUUID domainUser.UUID, id uuid.UUID, opts domainFile.LinkOptions) (string, error) {
				assert.True(t, opts.ClearExpiry)
				assert.Nil(t, opts.ExpiresIn)
				return "/files/" + id.String(), nil
			},
		}
		r, _ := setupRouterSC(t, ss)

		rr := doShareReq(t, r, http.MethodPost, "/files/"+fileID.String()+"/link", `{"expires_in_hours": null}`, withAuth())
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("absent field touches nothing", func(t *testing.T) {
		ss := &FakeShareService{
			GenerateLinkFunc: func(ctx context.Context, callerUUID domainUser.UUID, id uuid.UUID, opts domainFile.LinkOptions) (string, error) {
				assert.False(t, opts.ClearExpiry)
				assert.Nil(t, opts.ExpiresIn)
				return "/files/" + id.String(), nil
			},
		}
		r, _ := setupRouterSC(t, ss)

		rr := doShareReq(t, r, http.MethodPost, "/files/"+fileID.String()+"/link", `{}`, withAuth())
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("400 non-positive hours", func(t *testing.T) {
		r, _ := setupRouterSC(t, &FakeShareService{})

		rr := doShareReq(t, r, http.MethodPost, "/files/"+fileID.String()+"/link", `{"expires_in_hours": 0}`, withAuth())
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestShareController_GetPublicFileHandler(t *testing.T) {
	fileID := uuid.New()

	tests := []struct {
		name       string
		fileID     string
		headers    map[string]string
		mockSS     func() ports.ShareService
		wantStatus int
		wantErr    string
	}{
		{
			name:   "404 unknown id",
			fileID: fileID.String(),
			mockSS: func() ports.ShareService {
				return &FakeShareService{
					ResolvePublicAccessFunc: func(ctx context.Context, id uuid.UUID, now time.Time) (*domainFile.File, error) {
						return nil, services.ErrNotFound
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantErr:    services.ErrNotFound.Error(),
		},
		{
			name:   "403 private file",
			fileID: fileID.String(),
			mockSS: func() ports.ShareService {
				return &FakeShareService{
					ResolvePublicAccessFunc: func(ctx context.Context, id uuid.UUID, now time.Time) (*domainFile.File, error) {
						return nil, services.ErrFileNotPublic
					},
				}
			},
			wantStatus: http.StatusForbidden,
			wantErr:    services.ErrFileNotPublic.Error(),
		},
		{
			name:   "410 expired link",
			fileID: fileID.String(),
			mockSS: func() ports.ShareService {
				return &FakeShareService{
					ResolvePublicAccessFunc: func(ctx context.Context, id uuid.UUID, now time.Time) (*domainFile.File, error) {
						return nil, services.ErrFileExpired
					},
				}
			},
			wantStatus: http.StatusGone,
			wantErr:    services.ErrFileExpired.Error(),
		},
		{
			name:   "401 wrong file password",
			fileID: fileID.String(),
			headers: map[string]string{
				HeaderFilePassword: "wrong",
			},
			mockSS: func() ports.ShareService {
				return &FakeShareService{
					ResolvePublicAccessFunc: func(ctx context.Context, id uuid.UUID, now time.Time) (*domainFile.File, error) {
						return &domainFile.File{UUID: id, IsPublic: true, IsPasswordProtected: true}, nil
					},
					VerifyPasswordFunc: func(ctx context.Context, id uuid.UUID, password string) (bool, error) {
						assert.Equal(t, "wrong", password)
						return false, nil
					},
				}
			},
			wantStatus: http.StatusUnauthorized,
			wantErr:    "invalid file password",
		},
		{
			name:   "200 protected file with the right password",
			fileID: fileID.String(),
			headers: map[string]string{
				HeaderFilePassword: "letmein",
			},
			mockSS: func() ports.ShareService {
				return &FakeShareService{
					ResolvePublicAccessFunc: func(ctx context.Context, id uuid.UUID, now time.Time) (*domainFile.File, error) {
						return &domainFile.File{UUID: id, IsPublic: true, IsPasswordProtected: true}, nil
					},
					VerifyPasswordFunc: func(ctx context.Context, id uuid.UUID, password string) (bool, error) {
						return password == "letmein", nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "200 open public file needs no password",
			fileID: fileID.String(),
			mockSS: func() ports.ShareService {
				return &FakeShareService{
					ResolvePublicAccessFunc: func(ctx context.Context, id uuid.UUID, now time.Time) (*domainFile.File, error) {
						return &domainFile.File{UUID: id, IsPublic: true}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouterSC(t, tt.mockSS())
			rr := doShareReq(t, r, http.MethodGet, "/files/"+tt.fileID, nil, tt.headers)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErr != "" {
				var resp map[string]any
				_ = json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.Equal(t, tt.wantErr, resp["error"])
			}
		})
	}
}
