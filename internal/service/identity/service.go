package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type sessionStore interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, customerKey string) error
}

// Service resolves the stable customer key for a request: the authenticated
// principal when there is one, otherwise an anonymous token pinned to the
// caller's session.
type Service struct {
	sessions sessionStore
	logger   zerolog.Logger
}

// Request carries the identity inputs extracted from an incoming request.
// Principal is the authenticated identity (a verified email) or empty.
type Request struct {
	Principal string
	SessionID string
}

func New(sessions sessionStore, logger zerolog.Logger) *Service {
	return &Service{sessions: sessions, logger: logger}
}

// Resolve returns the customer key for the request. For anonymous callers the
// generated token is written to the session exactly once and stays stable for
// the session's lifetime.
func (s *Service) Resolve(ctx context.Context, req Request) (string, error) {
	if principal := strings.TrimSpace(req.Principal); principal != "" {
		return principal, nil
	}

	key, err := s.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(key) != "" {
		return key, nil
	}

	key = uuid.NewString()
	if err := s.sessions.Set(ctx, req.SessionID, key); err != nil {
		return "", err
	}
	s.logger.Debug().Str("session_id", req.SessionID).Msg("identity: issued anonymous customer key")
	return key, nil
}
