// Package interfaces defines service contracts for Council
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/council/internal/models"
)

// GenAIClient is the text-generation collaborator. Its output is
// untrusted; callers always attempt structured extraction and fall back
// to component defaults on failure.
type GenAIClient interface {
	// Generate produces a completion for the given system instruction and
	// user message. Implementations run at temperature 0.
	Generate(ctx context.Context, systemInstruction, userMessage string) (string, error)
}

// MarketDataClient provides price history, fundamentals, and news search.
type MarketDataClient interface {
	// GetEOD retrieves end-of-day price bars, newest first.
	GetEOD(ctx context.Context, ticker string, opts ...EODOption) ([]models.EODBar, error)

	// GetFundamentals retrieves valuation and margin data.
	GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalsSnapshot, error)

	// SearchNews retrieves recent articles for a query.
	SearchNews(ctx context.Context, query string, limit int) ([]*models.NewsItem, error)
}

// EODOption configures EOD data requests
type EODOption func(*EODParams)

// EODParams holds EOD query parameters
type EODParams struct {
	From  time.Time
	To    time.Time
	Limit int
}

// WithDateRange sets the date range for EOD query
func WithDateRange(from, to time.Time) EODOption {
	return func(p *EODParams) {
		p.From = from
		p.To = to
	}
}

// WithLimit sets the limit for EOD query
func WithLimit(limit int) EODOption {
	return func(p *EODParams) {
		p.Limit = limit
	}
}
