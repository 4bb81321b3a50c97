// Package interfaces defines service contracts for Council
package interfaces

import (
	"context"

	"github.com/bobmcallan/council/internal/models"
)

// CouncilService runs the debate pipeline for one ticker.
type CouncilService interface {
	// Analyze runs the full five-stage debate and returns the completed
	// case, including all intermediate per-stage fields.
	Analyze(ctx context.Context, ticker string, profile models.Profile) (*models.Case, error)
}

// MarketService assembles the external data the analyst rounds consume.
type MarketService interface {
	// GetTechnicalSnapshot computes deterministic indicators from price history.
	GetTechnicalSnapshot(ctx context.Context, ticker string) (*models.TechnicalSnapshot, error)

	// GetFundamentalsSnapshot retrieves valuation data.
	GetFundamentalsSnapshot(ctx context.Context, ticker string) (*models.FundamentalsSnapshot, error)

	// GatherNews aggregates recent articles across the discovery,
	// regulatory, and outlook query passes, capped at the configured size.
	GatherNews(ctx context.Context, ticker string) (string, error)
}
