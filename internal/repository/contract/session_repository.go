package contract

import (
	"context"
	"errors"

	"eviden-bot/internal/entity"
)

// ErrVersionConflict is returned by Save when the stored row moved past the caller's version.
var ErrVersionConflict = errors.New("session version conflict")

type SessionRepository interface {
	// FindByUserId returns nil, nil when the user has no session row.
	FindByUserId(ctx context.Context, userId int64) (*entity.Session, error)
	// Save inserts when session.Version is 0, otherwise updates only if the stored version matches.
	// On success session.Version is advanced.
	Save(ctx context.Context, session *entity.Session) error
}
