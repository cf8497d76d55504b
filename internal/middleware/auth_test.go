package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, role, tokenType string, ttl time.Duration) string {
	t.Helper()
	claims := JWTClaims{
		Username:  "tester",
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "2b39cfc8-6a44-4e0f-9d2e-6a7a1c1e1a10",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{JWTAuth(testSecret)}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": GetClaims(c).Role})
	})
	r.GET("/secure", chain...)
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	r := protectedRouter()
	w := doGet(r, signTestToken(t, "commander", "access", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "commander")
}

func TestJWTAuthRejectsMissingAndMalformed(t *testing.T) {
	r := protectedRouter()

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "garbage").Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	r := protectedRouter()
	w := doGet(r, signTestToken(t, "admin", "access", -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsRefreshTokenOnAPIRoutes(t *testing.T) {
	r := protectedRouter()
	w := doGet(r, signTestToken(t, "admin", "refresh", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	claims := JWTClaims{
		Role:      "admin",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	r := protectedRouter()
	assert.Equal(t, http.StatusUnauthorized, doGet(r, token).Code)
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter("admin")

	w := doGet(r, signTestToken(t, "admin", "access", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, signTestToken(t, "logistics", "access", time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
