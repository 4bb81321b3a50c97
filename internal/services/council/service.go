// Package council runs the debate-and-verdict pipeline: two independent
// analyst rounds, an evidence-gated risk audit, guardrailed rebuttals,
// and a profile-weighted verdict.
package council

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/council/internal/common"
	"github.com/bobmcallan/council/internal/interfaces"
	"github.com/bobmcallan/council/internal/models"
)

// CatalystRule maps a high-materiality news phrase to the confidence
// floor it guarantees in the fundamental rebuttal.
type CatalystRule struct {
	Phrase        string
	MinConfidence float64
}

// DefaultCatalystRules cover the common hard catalysts that justify
// holding a fundamental thesis against a weak risk audit.
var DefaultCatalystRules = []CatalystRule{
	{Phrase: "record deliveries", MinConfidence: 85},
	{Phrase: "earnings beat", MinConfidence: 85},
	{Phrase: "raised guidance", MinConfidence: 85},
	{Phrase: "buyback", MinConfidence: 85},
}

// Service implements CouncilService
type Service struct {
	genai     interfaces.GenAIClient
	market    interfaces.MarketService
	validator *Validator
	catalysts []CatalystRule
	logger    *common.Logger
}

// Option configures the service
type Option func(*Service)

// WithCatalystRules replaces the catalyst rule set.
func WithCatalystRules(rules []CatalystRule) Option {
	return func(s *Service) {
		s.catalysts = rules
	}
}

// WithValidator replaces the evidence validator (tests pin the year).
func WithValidator(v *Validator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// NewService creates a new council service. genai may be nil, in which
// case every round falls back to its deterministic default.
func NewService(genai interfaces.GenAIClient, market interfaces.MarketService, logger *common.Logger, opts ...Option) *Service {
	s := &Service{
		genai:     genai,
		market:    market,
		validator: NewValidator(),
		catalysts: DefaultCatalystRules,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the full debate for one ticker. Stage order is fixed: the
// two analyst rounds (concurrent — their write sets are disjoint), the
// risk audit, the technical rebuttal, the fundamental rebuttal, then the
// verdict. No stage error escapes; each stage falls back to its defined
// neutral values. Only a missing ticker or profile fails the run.
func (s *Service) Analyze(ctx context.Context, ticker string, profile models.Profile) (*models.Case, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if profile.Style == "" && profile.RiskTolerance == "" {
		return nil, fmt.Errorf("profile is required")
	}

	c := &models.Case{
		ID:        uuid.NewString(),
		Ticker:    ticker,
		Profile:   profile,
		CreatedAt: time.Now(),
	}

	s.logger.Info().Str("ticker", ticker).Str("style", string(profile.Style)).Msg("Starting analysis")

	// Round 1: blind divergence. Technical and fundamental are
	// independent of each other and may run concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.Technical.Initial = s.technicalRound(gctx, ticker)
		return nil
	})
	g.Go(func() error {
		c.Fundamental.Initial = s.fundamentalRound(gctx, ticker)
		return nil
	})
	_ = g.Wait() // stage errors are absorbed into fallbacks

	// Round 2: the risk audit, gated by the evidence validator.
	news, err := s.market.GatherNews(ctx, ticker)
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("News gathering failed; auditing without corpus")
		news = ""
	}
	c.NewsCorpus = news
	c.Risk = s.riskRound(ctx, ticker, c.Technical.Initial.Thesis, c.Fundamental.Initial.Thesis, news)

	// Round 3: rebuttals, strictly after the audit.
	c.Technical.Final = s.rebutTechnical(ctx, c.Technical.Initial, c.Risk)
	c.Fundamental.Final = s.rebutFundamental(ctx, c.Fundamental.Initial, c.Risk, news)

	// Final: the weighted verdict, written exactly once.
	verdict := CalculateVerdict(profile, c.Technical.Final.Confidence, c.Fundamental.Final.Confidence, c.Risk.Danger())
	c.Verdict = &verdict

	s.logger.Info().
		Str("ticker", ticker).
		Str("signal", string(verdict.Signal)).
		Float64("confidence", verdict.Confidence).
		Msg("Analysis complete")

	return c, nil
}

// Ensure Service implements CouncilService
var _ interfaces.CouncilService = (*Service)(nil)
