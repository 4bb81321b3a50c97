package council

import (
	"context"

	"github.com/bobmcallan/council/internal/models"
)

// analystResponse is the structured shape both analyst rounds expect.
type analystResponse struct {
	Thesis     string      `json:"thesis"`
	Confidence interface{} `json:"confidence"`
	Signal     string      `json:"signal"`
}

// technicalRound produces the technical analyst's initial opinion from
// deterministic indicator data. Never fails: a dead collaborator or an
// unparsable reply yields the neutral fallback.
func (s *Service) technicalRound(ctx context.Context, ticker string) models.Opinion {
	snap, err := s.market.GetTechnicalSnapshot(ctx, ticker)
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Technical snapshot unavailable")
		snap = nil
	}

	return s.runAnalyst(ctx, ticker, technicalSystemPrompt(ticker, snap), "Technical data unavailable")
}

// fundamentalRound produces the fundamental analyst's initial opinion
// from valuation data.
func (s *Service) fundamentalRound(ctx context.Context, ticker string) models.Opinion {
	snap, err := s.market.GetFundamentalsSnapshot(ctx, ticker)
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Fundamentals snapshot unavailable")
		snap = nil
	}

	return s.runAnalyst(ctx, ticker, fundamentalSystemPrompt(ticker, snap), "Fundamental data unavailable")
}

// runAnalyst invokes the collaborator under the given rubric and parses
// its structured reply, falling back to {50, HOLD, placeholder}.
func (s *Service) runAnalyst(ctx context.Context, ticker, systemPrompt, placeholder string) models.Opinion {
	fallback := models.Opinion{
		Thesis:     placeholder,
		Confidence: neutralConfidence,
		Signal:     models.SignalHold,
	}

	if s.genai == nil {
		return fallback
	}

	reply, err := s.genai.Generate(ctx, systemPrompt, "Analyze "+ticker+" now.")
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Analyst generation failed")
		return fallback
	}

	var parsed analystResponse
	if !ExtractJSON(reply, &parsed) {
		// The reply still carries the analyst's reasoning; keep it as
		// freeform thesis text at neutral confidence.
		fallback.Thesis = reply
		return fallback
	}

	thesis := parsed.Thesis
	if thesis == "" {
		thesis = placeholder
	}

	return models.Opinion{
		Thesis:     thesis,
		Confidence: Normalize(parsed.Confidence),
		Signal:     models.ParseSignal(parsed.Signal),
	}
}
