// Package auth extracts the current session from the access-token cookie.
// Credential verification and token issuance live in a separate service; the
// storefront only needs the user id and role carried in the claims.
package auth

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const RoleAdmin = "admin"

type Session struct {
	UserID uint
	Role   string
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

type Verifier struct {
	JWTSecret []byte
}

// SessionFromCookie parses the accessToken cookie into a Session. A missing
// or invalid cookie yields an unauthorized HTTP error.
func (v *Verifier) SessionFromCookie(c echo.Context) (*Session, error) {
	cookie, err := c.Cookie("accessToken")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}
	if cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "empty token")
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}
	role, _ := claims["role"].(string)

	return &Session{UserID: uint(sub), Role: role}, nil
}

// RequireLogin resolves the session and stashes it in the echo context for
// handlers to pick up via CurrentSession.
func (v *Verifier) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := v.SessionFromCookie(c)
		if err != nil {
			return err
		}
		c.Set("session", session)
		return next(c)
	}
}

// AdminOnly additionally gates on the admin role.
func (v *Verifier) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := v.SessionFromCookie(c)
		if err != nil {
			return err
		}
		if !session.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		c.Set("session", session)
		return next(c)
	}
}

func CurrentSession(c echo.Context) *Session {
	if s, ok := c.Get("session").(*Session); ok {
		return s
	}
	return nil
}
