package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"task_manager_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOwnerGuard(t *testing.T) {
	r := gin.New()
	r.GET("/u/:user_id", OwnerGuard(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"owner": c.MustGet(OwnerIDKey)})
	})

	cases := []struct {
		path string
		want int
	}{
		{"/u/1", http.StatusOK},
		{"/u/99", http.StatusOK},
		{"/u/0", http.StatusForbidden},
		{"/u/-1", http.StatusForbidden},
		{"/u/x", http.StatusNotFound},
		{"/u/1.5", http.StatusNotFound},
		{"/u/99999999999999999999", http.StatusNotFound},
	}

	for _, tc := range cases {
		w := serve(r, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.want {
			t.Fatalf("GET %s = %d; want %d", tc.path, w.Code, tc.want)
		}
	}
}

func TestJWT(t *testing.T) {
	const secret = "mw-secret"
	r := gin.New()
	r.GET("/me", JWT(service.NewVerifier(secret), zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet(UserIDKey)})
	})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 9,
		"exp":     time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":9}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSameUser(t *testing.T) {
	handler := func(owner, user int64) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			c.Set(OwnerIDKey, owner)
			c.Set(UserIDKey, user)
		}, RequireSameUser(), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	}

	assert.Equal(t, http.StatusNoContent, handler(4, 4).Code)
	assert.Equal(t, http.StatusForbidden, handler(4, 5).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}
