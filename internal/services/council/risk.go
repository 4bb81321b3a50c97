package council

import (
	"context"
	"strings"

	"github.com/bobmcallan/council/internal/models"
)

// baselineDanger is the non-zero caution score used when no ticker
// evidence exists or when the auditor's claims fail cross-validation.
// It is deliberately not full confidence in safety.
const baselineDanger = 25.0

// noEvidenceMarker is how critiques state that nothing ticker-specific
// was found. The rebuttal round's no-evidence override keys off it.
const noEvidenceMarker = "No ticker-specific evidence"

// riskResponse is the structured shape the risk audit expects.
type riskResponse struct {
	RiskScore     interface{} `json:"risk_score"`
	EvidenceFound string      `json:"evidence_found"`
	CritiqueTech  string      `json:"risk_critique_tech"`
	CritiqueFund  string      `json:"risk_critique_fund"`
}

// riskRound audits both theses against the news corpus. The evidence
// validator is the ground-truth oracle: with no validated evidence the
// collaborator is never invoked, and a claimed quote that does not
// overlap the validated set discards the collaborator's output wholesale.
func (s *Service) riskRound(ctx context.Context, ticker, techThesis, fundThesis, news string) models.RiskAssessment {
	evidence := s.validator.Extract(news, ticker)

	if !evidence.HasSubjectEvidence {
		s.logger.Debug().Str("ticker", ticker).Msg("No validated evidence; short-circuiting risk audit")
		return noEvidenceAssessment(ticker)
	}

	if s.genai == nil {
		return noEvidenceAssessment(ticker)
	}

	prompt := riskSystemPrompt(ticker, techThesis, fundThesis, evidence.Summary, news)
	reply, err := s.genai.Generate(ctx, prompt, "Assess risks for "+ticker+".")
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Risk generation failed")
		return noEvidenceAssessment(ticker)
	}

	var parsed riskResponse
	if !ExtractJSON(reply, &parsed) {
		s.logger.Warn().Str("ticker", ticker).Msg("Risk response unparsable")
		return noEvidenceAssessment(ticker)
	}

	// Cross-validate the claimed quote against the validated sentences.
	// A non-empty claim with no overlap is a hallucinated citation; the
	// whole reply is rejected, bounding the blast radius of invented risk.
	if !quoteOverlaps(parsed.EvidenceFound, evidence.Sentences) {
		s.logger.Warn().Str("ticker", ticker).Str("claimed", truncate(parsed.EvidenceFound, 80)).
			Msg("Evidence claim failed cross-validation; discarding audit")
		return noEvidenceAssessment(ticker)
	}

	danger := Normalize(parsed.RiskScore)
	return models.RiskAssessment{
		CritiqueTechnical:   parsed.CritiqueTech,
		CritiqueFundamental: parsed.CritiqueFund,
		DangerScore:         &danger,
		EvidenceSummary:     evidence.Summary,
	}
}

// noEvidenceAssessment is the short-circuit result: baseline caution and
// critiques stating that nothing ticker-specific was found.
func noEvidenceAssessment(ticker string) models.RiskAssessment {
	danger := baselineDanger
	critique := noEvidenceMarker + " found in recent news for " + ticker + "."
	return models.RiskAssessment{
		CritiqueTechnical:   critique,
		CritiqueFundamental: critique,
		DangerScore:         &danger,
	}
}

// quoteOverlaps reports whether a claimed evidence quote overlaps any
// validated sentence by substring or prefix in either direction. An empty
// claim passes — there is nothing to validate.
func quoteOverlaps(quote string, sentences []string) bool {
	quote = normalizeQuote(quote)
	if quote == "" {
		return true
	}

	for _, sentence := range sentences {
		sentence = normalizeQuote(sentence)
		if sentence == "" {
			continue
		}
		if strings.Contains(sentence, quote) || strings.Contains(quote, sentence) {
			return true
		}
	}
	return false
}

func normalizeQuote(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Trim(s, `"'.`)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
