package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/mrlokans/hirehub/internal/config"
)

// SessionCookie carries the session token between browser and server.
type SessionCookie struct {
	name     string
	maxAge   int
	secure   bool
	sameSite http.SameSite
}

// NewSessionCookie builds the cookie transport. The cookie lives as long as the token.
func NewSessionCookie(cfg config.Auth, ttl time.Duration) *SessionCookie {
	name := cfg.CookieName
	if name == "" {
		name = config.DefaultCookieName
	}
	return &SessionCookie{
		name:     name,
		maxAge:   int(ttl / time.Second),
		secure:   cfg.SecureCookies,
		sameSite: ParseSameSite(cfg.CookieSameSite),
	}
}

// ParseSameSite maps a config value onto http.SameSite. Empty or unknown values mean None.
func ParseSameSite(value string) http.SameSite {
	switch strings.ToLower(value) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteNoneMode
	}
}

// Name returns the cookie name.
func (s *SessionCookie) Name() string {
	return s.name
}

// Attach sets the session cookie on the response.
func (s *SessionCookie) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(token, s.maxAge))
}

// Extract returns the token from the request, or "" when no cookie is present.
func (s *SessionCookie) Extract(r *http.Request) string {
	c, err := r.Cookie(s.name)
	if err != nil {
		return ""
	}
	return c.Value
}

// Clear expires the cookie immediately. Safe to call without an existing session.
func (s *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s *SessionCookie) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: s.sameSite,
	}
	if maxAge < 0 {
		c.Expires = time.Unix(0, 0)
	}
	return c
}
