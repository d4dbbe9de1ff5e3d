package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func corsCall(t *testing.T, pattern, origin, method string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()

	req := httptest.NewRequest(method, "/api/v1/rooms", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := CORS(regexp.MustCompile(pattern))(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	assert.NoError(t, err)
	return rec
}

func TestCORSPreflight(t *testing.T) {
	rec := corsCall(t, `^https://overlay\.fluxofest\.com$`, "https://overlay.fluxofest.com", http.MethodOptions)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://overlay.fluxofest.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, corsMaxAge, rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	rec := corsCall(t, `^https://overlay\.fluxofest\.com$`, "https://evil.example", http.MethodGet)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSAllowsMatchingOrigin(t *testing.T) {
	rec := corsCall(t, `^https://.*\.fluxofest\.com$`, "https://painel.fluxofest.com", http.MethodGet)

	assert.Equal(t, "https://painel.fluxofest.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
