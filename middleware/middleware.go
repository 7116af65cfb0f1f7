package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"brewbliss/globals"
	"brewbliss/models"
	"brewbliss/utils"
)

const CookieName = "cafe_session"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoToken      = errors.New("missing token")
)

// JWT claims
type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionSource exposes the authoritative session. A token is honoured only
// while it matches it, so Logout revokes every outstanding token.
type SessionSource interface {
	Session() (models.User, bool)
}

type Sessions struct {
	secret []byte
	ttl    time.Duration
	source SessionSource
	secure bool
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration, source SessionSource) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl, source: source, now: time.Now}
}

// WithSecureCookie marks the cookie Secure; used when serving over TLS.
func (s *Sessions) WithSecureCookie(secure bool) *Sessions {
	s.secure = secure
	return s
}

func (s *Sessions) Issue(user models.User) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (s *Sessions) ValidateJWT(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return claims, nil
}

// TokenFromRequest reads the session cookie, then the Bearer header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Current returns the signed-in admin behind r, if the store still agrees.
func (s *Sessions) Current(r *http.Request) (models.User, bool) {
	claims, err := s.ValidateJWT(TokenFromRequest(r))
	if err != nil {
		return models.User{}, false
	}
	user, ok := s.source.Session()
	if !ok || !user.IsAdmin() || user.Email != claims.Email {
		return models.User{}, false
	}
	return user, true
}

func (s *Sessions) SetCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAdmin rejects API requests that do not carry the current admin session.
func (s *Sessions) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		user, ok := s.Current(r)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Access Denied. Please Login.")
			return
		}
		ctx := context.WithValue(r.Context(), globals.UserKey, user)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth attaches the admin to the context when there is one.
func (s *Sessions) OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if user, ok := s.Current(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), globals.UserKey, user))
		}
		next(w, r, ps)
	}
}

func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(globals.UserKey).(models.User)
	return user, ok
}
