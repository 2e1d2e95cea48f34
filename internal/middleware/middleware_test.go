package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/resourcehub/internal/app/models/dto"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/middleware"
	"github.com/yigit/resourcehub/internal/pkg/apperrors"
	"github.com/yigit/resourcehub/internal/pkg/auth"
)

type errorBody struct {
	Success bool            `json:"success"`
	Error   dto.ErrorDetail `json:"error"`
}

func respondWith(t *testing.T, err error) (int, errorBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	middleware.HandleAPIError(c, err)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return rec.Code, body
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"not found", apperrors.NewResourceNotFoundError("Resource not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperrors.ErrResourceNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"bad request", apperrors.NewBadRequestError("bad"), http.StatusBadRequest, dto.ErrorCodeInvalidRequest},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict},
		{"too large", apperrors.ErrUploadTooLarge, http.StatusRequestEntityTooLarge, dto.ErrorCodeUploadTooLarge},
		{"storage", apperrors.NewCustomError(apperrors.ErrStorageFailed, "Failed to store uploaded file"), http.StatusInternalServerError, dto.ErrorCodeStorageError},
		{"expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"unknown", errors.New("pool closed"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := respondWith(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleAPIError_UnknownErrorHidesDetails(t *testing.T) {
	_, body := respondWith(t, errors.New("password=hunter2"))
	assert.Equal(t, "Internal server error", body.Error.Message)
}

func TestHandleAPIError_ValidationErrors(t *testing.T) {
	err := domain.Validate(&domain.Draft{University: "RGPV", Branch: "CS", Semester: "3rd Semester", Subject: "Algorithms"}, nil)
	status, body := respondWith(t, err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, domain.FieldResourceType, body.Error.Field)
	assert.Equal(t, "Please select at least one resource type!", body.Error.Message)

	details, ok := body.Error.Details.([]interface{})
	require.True(t, ok)
	assert.Len(t, details, 1)
}

func TestHandleAPIError_MediaError(t *testing.T) {
	status, body := respondWith(t, &domain.MediaError{Field: domain.FieldVideoImage, Detected: "application/pdf", Notice: "Please upload a valid image file for the thumbnail."})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.FieldVideoImage, body.Error.Field)
	assert.Equal(t, map[string]interface{}{"detected": "application/pdf"}, body.Error.Details)
}

func TestHandleAPIError_CustomFieldIsKept(t *testing.T) {
	_, body := respondWith(t, apperrors.NewCustomError(apperrors.ErrBadRequest, "unknown resource type").WithField("kind"))
	assert.Equal(t, "kind", body.Error.Field)
	assert.Equal(t, "unknown resource type", body.Error.Message)
}

func protectedRouter(m *middleware.AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/write", m.JWTAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.ContextSubjectKey))
	})
	return r
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour, TokenIssuer: "resourcehub"})
}

func TestJWTAuth_DisabledPassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	protectedRouter(middleware.NewAuthMiddleware(nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/write", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, middleware.NewAuthMiddleware(nil).Enabled())
}

func TestJWTAuth(t *testing.T) {
	jwtService := newJWT()
	valid, _, err := jwtService.GenerateToken("uploader", 0)
	require.NoError(t, err)
	expired, _, err := jwtService.GenerateToken("uploader", time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(time.Second)
	foreign, _, err := auth.NewJWTService(auth.JWTConfig{SecretKey: "other", TokenExp: time.Hour, TokenIssuer: "resourcehub"}).
		GenerateToken("uploader", 0)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		query  string
		status int
		code   dto.ErrorCode
	}{
		{name: "valid header", header: "Bearer " + valid, status: http.StatusOK},
		{name: "valid query", query: valid, status: http.StatusOK},
		{name: "missing", status: http.StatusUnauthorized, code: dto.ErrorCodeUnauthorized},
		{name: "malformed", header: "Bearer nope", status: http.StatusUnauthorized, code: dto.ErrorCodeUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized, code: dto.ErrorCodeExpiredToken},
		{name: "wrong key", header: "Bearer " + foreign, status: http.StatusUnauthorized, code: dto.ErrorCodeInvalidToken},
	}

	r := protectedRouter(middleware.NewAuthMiddleware(jwtService))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/write"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodPost, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "uploader", rec.Body.String())
				return
			}
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestLimitBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload", middleware.LimitBody(8), func(c *gin.Context) {
		buf := make([]byte, 64)
		n, _ := c.Request.Body.Read(buf)
		c.String(http.StatusOK, "%d", n)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("0123")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "4", rec.Body.String())
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
