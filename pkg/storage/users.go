package storage

import (
	"context"

	"github.com/rhandyus/senjagames-sub001/pkg/models"
)

// UserStore defines the interface for reading buyer records.
type UserStore interface {
	// GetUser retrieves a buyer by their user id. Returns ErrUserNotFound
	// when no record exists.
	GetUser(ctx context.Context, userID string) (*models.User, error)
}
