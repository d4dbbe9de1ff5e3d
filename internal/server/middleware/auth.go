package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/fluxofest/live-chat/internal/models"
)

const sessionKey = "session"

// SessionClaims is the token payload issued at festival check-in.
type SessionClaims struct {
	jwt.RegisteredClaims
	Name      string           `json:"name"`
	AvatarURL string           `json:"avatar_url,omitempty"`
	RoleBadge models.RoleBadge `json:"role_badge,omitempty"`
}

// GetSession returns the authenticated session, or false for anonymous
// requests.
func GetSession(c echo.Context) (models.Session, bool) {
	sess, ok := c.Get(sessionKey).(models.Session)
	return sess, ok
}

func parseToken(secret, tokenString string) (models.Session, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{
		UserID:    claims.Subject,
		Name:      claims.Name,
		AvatarURL: claims.AvatarURL,
		RoleBadge: claims.RoleBadge,
	}, nil
}

// JWTAuth requires a valid bearer token and stores the session on the echo
// context. Spectating endpoints stay open; anything that writes goes
// through this.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c)
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			sess, err := parseToken(secret, tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if sess.UserID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != authHeader {
			return token
		}
		return ""
	}
	// Websocket upgrades cannot set headers from the browser.
	return c.QueryParam("token")
}
