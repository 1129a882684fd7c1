// Package session produces the stable opaque identifier that scopes
// cart ownership.
package session

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
)

// ErrNoSession is the storage miss: no identity has been stored yet.
var ErrNoSession = errors.New("no stored session identity")

// Storage is the single-key durable client-side store. The HTTP
// adapter implements it over the request/response cookie pair.
type Storage interface {
	Load() (string, error)
	Save(string) error
}

type Provider struct{}

func NewProvider() Provider {
	return Provider{}
}

// GetOrCreate returns the previously stored identity unchanged, or
// generates and stores a new one on first call. When storage is
// unavailable it degrades to a fresh ephemeral identifier per call
// instead of failing.
func (Provider) GetOrCreate(s Storage) domain.SessionID {
	const op = "Provider.GetOrCreate"
	log := slog.With("op", op)

	v, err := s.Load()
	if err == nil && v != "" {
		return domain.SessionID(v)
	}
	if err != nil && !errors.Is(err, ErrNoSession) {
		log.Warn("session storage read failed", "err", err)
	}

	id := uuid.NewString()
	if err := s.Save(id); err != nil {
		log.Warn("session storage write failed, identity is ephemeral",
			"err", err)
	}
	return domain.SessionID(id)
}
