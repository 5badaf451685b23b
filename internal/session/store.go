// Package session holds per-sender conversation state for in-progress flows.
package session

import (
	"context"

	"github.com/spec-kit/incident-report-service/internal/domain"
)

// Store maps sender ids to their current conversation session. Get returns
// (nil, nil) when the sender has no session. Implementations must be safe
// for concurrent use; exactly one session exists per sender and Set
// overwrites any prior one.
type Store interface {
	Get(ctx context.Context, senderID string) (*domain.Session, error)
	Set(ctx context.Context, senderID string, sess *domain.Session) error
	Delete(ctx context.Context, senderID string) error
}
