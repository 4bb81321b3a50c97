// Package interfaces defines service contracts for Council
package interfaces

import (
	"context"

	"github.com/bobmcallan/council/internal/models"
)

// VerdictStore persists completed cases for later inspection. The debate
// pipeline itself is stateless; cases are written only after the verdict
// is final.
type VerdictStore interface {
	// SaveCase stores a completed case keyed by its ID.
	SaveCase(ctx context.Context, c *models.Case) error

	// GetCase retrieves a case by ID.
	GetCase(ctx context.Context, id string) (*models.Case, error)

	// ListCases returns completed cases, newest first, optionally
	// filtered by ticker.
	ListCases(ctx context.Context, ticker string, limit int) ([]*models.Case, error)
}

// StorageManager owns the storage areas and their lifecycle.
type StorageManager interface {
	VerdictStore() VerdictStore
	Close() error
}
