package httphandler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/session"
)

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type ctxKey int

const sessionKey ctxKey = iota

// SessionConfig describes the cookie that carries the session
// identity between requests.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// WithSession resolves the session identity before the wrapped
// handler runs. The cookie jar is the durable client-side store:
// a client without the cookie gets a fresh identity and the
// Set-Cookie persisting it.
func WithSession(
	next http.Handler, provider session.Provider, cfg SessionConfig,
) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		storage := cookieStorage{w: w, r: r, cfg: cfg}
		sid := provider.GetOrCreate(storage)
		ctx := context.WithValue(r.Context(), sessionKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hf)
}

func sessionFromContext(ctx context.Context) domain.SessionID {
	sid, _ := ctx.Value(sessionKey).(domain.SessionID)
	return sid
}

var _ session.Storage = (*cookieStorage)(nil)

// cookieStorage adapts one request/response pair to the single-key
// session store.
type cookieStorage struct {
	w   http.ResponseWriter
	r   *http.Request
	cfg SessionConfig
}

func (s cookieStorage) Load() (string, error) {
	c, err := s.r.Cookie(s.cfg.CookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", session.ErrNoSession
		}
		return "", err
	}
	return c.Value, nil
}

func (s cookieStorage) Save(v string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    v,
		Path:     "/",
		MaxAge:   int(s.cfg.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
