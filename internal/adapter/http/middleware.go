package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errAuthNotConfigured = errors.New("admin tools are not configured")

// requestID echoes an incoming X-Request-ID or generates one, on both the
// request (for downstream logging) and the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// authorizeAdmin validates the HS256 bearer token required for
// admin-permission tools. An unset secret rejects all admin invocations.
func (s *Server) authorizeAdmin(r *http.Request) error {
	if s.authSecret == "" {
		return errAuthNotConfigured
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return errors.New("missing bearer token")
	}

	token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.authSecret), nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
