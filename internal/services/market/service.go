// Package market assembles the external data the analyst rounds consume
package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/council/internal/common"
	"github.com/bobmcallan/council/internal/interfaces"
	"github.com/bobmcallan/council/internal/models"
	"github.com/bobmcallan/council/internal/signals"
)

const (
	DefaultNewsMaxBytes = 24 * 1024
	DefaultNewsPerQuery = 10

	eodLookbackBars = 120
)

// newsPasses are the query templates run against the news search, in
// order. Accumulation stops once the corpus exceeds the configured cap.
var newsPasses = []string{
	"%s",
	"%s regulatory investigation lawsuit",
	"%s outlook guidance",
}

// Service implements MarketService
type Service struct {
	client       interfaces.MarketDataClient
	logger       *common.Logger
	newsMaxBytes int
	newsPerQuery int
}

// Option configures the service
type Option func(*Service)

// WithNewsCap sets the byte cap on the aggregated news corpus.
func WithNewsCap(maxBytes int) Option {
	return func(s *Service) {
		if maxBytes > 0 {
			s.newsMaxBytes = maxBytes
		}
	}
}

// WithNewsPerQuery sets the number of articles fetched per query pass.
func WithNewsPerQuery(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.newsPerQuery = n
		}
	}
}

// NewService creates a new market service
func NewService(client interfaces.MarketDataClient, logger *common.Logger, opts ...Option) *Service {
	s := &Service{
		client:       client,
		logger:       logger,
		newsMaxBytes: DefaultNewsMaxBytes,
		newsPerQuery: DefaultNewsPerQuery,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTechnicalSnapshot computes deterministic indicators from price history.
func (s *Service) GetTechnicalSnapshot(ctx context.Context, ticker string) (*models.TechnicalSnapshot, error) {
	if s.client == nil {
		return nil, fmt.Errorf("market data client not configured")
	}

	bars, err := s.client.GetEOD(ctx, ticker, interfaces.WithLimit(eodLookbackBars))
	if err != nil {
		return nil, fmt.Errorf("get EOD for %s: %w", ticker, err)
	}

	snapshot := signals.Snapshot(ticker, bars)
	if snapshot == nil {
		return nil, fmt.Errorf("insufficient price history for %s (%d bars)", ticker, len(bars))
	}
	return snapshot, nil
}

// GetFundamentalsSnapshot retrieves valuation data.
func (s *Service) GetFundamentalsSnapshot(ctx context.Context, ticker string) (*models.FundamentalsSnapshot, error) {
	if s.client == nil {
		return nil, fmt.Errorf("market data client not configured")
	}

	fundamentals, err := s.client.GetFundamentals(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("get fundamentals for %s: %w", ticker, err)
	}
	return fundamentals, nil
}

// GatherNews aggregates recent articles across the discovery, regulatory,
// and outlook query passes, concatenated and capped at the configured size.
// A failed pass is logged and skipped; the corpus from successful passes
// is still returned.
func (s *Service) GatherNews(ctx context.Context, ticker string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("market data client not configured")
	}

	var sb strings.Builder
	seen := make(map[string]bool)

	for _, pass := range newsPasses {
		if sb.Len() >= s.newsMaxBytes {
			break
		}

		query := fmt.Sprintf(pass, ticker)
		items, err := s.client.SearchNews(ctx, query, s.newsPerQuery)
		if err != nil {
			s.logger.Warn().Str("ticker", ticker).Str("query", query).Err(err).Msg("News pass failed")
			continue
		}

		for _, item := range items {
			if sb.Len() >= s.newsMaxBytes {
				break
			}
			key := item.Title
			if key == "" {
				key = item.URL
			}
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true

			if !item.PublishedAt.IsZero() {
				sb.WriteString(item.PublishedAt.Format("2006-01-02"))
				sb.WriteString(": ")
			}
			sb.WriteString(item.Title)
			sb.WriteString(". ")
			if item.Content != "" {
				sb.WriteString(item.Content)
			}
			sb.WriteString("\n")
		}
	}

	corpus := sb.String()
	if len(corpus) > s.newsMaxBytes {
		corpus = corpus[:s.newsMaxBytes]
	}

	s.logger.Debug().Str("ticker", ticker).Int("bytes", len(corpus)).Msg("News corpus assembled")
	return corpus, nil
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
