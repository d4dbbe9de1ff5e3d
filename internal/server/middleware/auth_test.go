package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxofest/live-chat/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims SessionClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuth(t *testing.T) {
	e := echo.New()

	handler := func(c echo.Context) error {
		sess, ok := GetSession(c)
		require.True(t, ok)
		return c.String(http.StatusOK, sess.UserID)
	}

	signed := signToken(t, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:      "Ana",
		RoleBadge: models.RoleVIP,
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTAuth(testSecret)(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, "u42", rec.Body.String())
}

func TestJWTAuthQueryToken(t *testing.T) {
	e := echo.New()

	signed := signToken(t, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u7"},
	})

	req := httptest.NewRequest(http.MethodGet, "/?token="+signed, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTAuth(testSecret)(func(c echo.Context) error {
		sess, _ := GetSession(c)
		return c.String(http.StatusOK, sess.UserID)
	})(c)
	assert.NoError(t, err)
	assert.Equal(t, "u7", rec.Body.String())
}

func TestJWTAuthRejections(t *testing.T) {
	e := echo.New()
	mw := JWTAuth(testSecret)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	tests := []struct {
		name  string
		setup func(req *http.Request)
	}{
		{"missing header", func(req *http.Request) {}},
		{"malformed header", func(req *http.Request) {
			req.Header.Set("Authorization", "Token abc")
		}},
		{"garbage token", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer not.a.jwt")
		}},
		{"expired token", func(req *http.Request) {
			signed := signToken(t, SessionClaims{
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "u1",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			})
			req.Header.Set("Authorization", "Bearer "+signed)
		}},
		{"no subject", func(req *http.Request) {
			signed := signToken(t, SessionClaims{Name: "anon"})
			req.Header.Set("Authorization", "Bearer "+signed)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			c := e.NewContext(req, httptest.NewRecorder())

			err := mw(next)(c)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusUnauthorized, he.Code)
		})
	}
}
