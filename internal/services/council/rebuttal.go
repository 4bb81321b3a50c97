package council

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/council/internal/models"
)

// Guardrail thresholds. These are non-overridable post-processing rules
// applied to the collaborator's candidate revision, in precedence order:
// persistence floor, then collapse override, then no-evidence override.
// The last applicable rule wins.
const (
	persistenceDangerMax  = 35.0 // below this, confidence keeps >= 90% of initial
	persistenceRatio      = 0.90
	collapseDangerMax     = 30.0 // below this, a sub-70 candidate is discarded
	collapseConfidenceMin = 70.0
	catalystDangerMax     = 20.0 // below this, a found catalyst floors confidence
)

// rebuttalResponse is the structured shape both rebuttal rounds expect.
type rebuttalResponse struct {
	FinalThesis     string      `json:"final_thesis"`
	FinalConfidence interface{} `json:"final_confidence"`
	FinalSignal     string      `json:"final_signal"`
}

// rebutTechnical revises the technical opinion against the risk critique,
// then applies the persistence guardrails.
func (s *Service) rebutTechnical(ctx context.Context, initial models.Opinion, risk models.RiskAssessment) models.Opinion {
	candidate, ok := s.runRebuttal(ctx, "technical", initial, risk.Danger(), risk.CritiqueTechnical)
	if !ok {
		return initial
	}
	return applyGuardrails(initial, candidate, risk.Danger(), risk.CritiqueTechnical)
}

// rebutFundamental revises the fundamental opinion. Before invoking the
// collaborator it scans the news corpus for configured catalyst phrases;
// a hit under low danger short-circuits with a deterministic confidence
// floor and a synthesized thesis.
func (s *Service) rebutFundamental(ctx context.Context, initial models.Opinion, risk models.RiskAssessment, news string) models.Opinion {
	if risk.Danger() < catalystDangerMax {
		if matched, floor := s.scanCatalysts(news); len(matched) > 0 {
			confidence := initial.Confidence
			if floor > confidence {
				confidence = floor
			}
			return models.Opinion{
				Thesis: fmt.Sprintf("%s Hard catalysts in recent news (%s) support the valuation against a low-risk audit.",
					initial.Thesis, strings.Join(matched, ", ")),
				Confidence: confidence,
				Signal:     initial.Signal,
			}
		}
	}

	candidate, ok := s.runRebuttal(ctx, "fundamental", initial, risk.Danger(), risk.CritiqueFundamental)
	if !ok {
		return initial
	}
	return applyGuardrails(initial, candidate, risk.Danger(), risk.CritiqueFundamental)
}

// runRebuttal invokes the collaborator for a candidate revision. The
// second return is false when no revision was produced, in which case the
// caller keeps the initial values and the guardrails are irrelevant.
func (s *Service) runRebuttal(ctx context.Context, role string, initial models.Opinion, danger float64, critique string) (models.Opinion, bool) {
	if s.genai == nil {
		return models.Opinion{}, false
	}

	prompt := rebuttalSystemPrompt(role, initial, danger, critique)
	reply, err := s.genai.Generate(ctx, prompt, "Deliver your rebuttal.")
	if err != nil {
		s.logger.Warn().Str("role", role).Err(err).Msg("Rebuttal generation failed")
		return models.Opinion{}, false
	}

	var parsed rebuttalResponse
	if !ExtractJSON(reply, &parsed) {
		s.logger.Warn().Str("role", role).Msg("Rebuttal response unparsable")
		return models.Opinion{}, false
	}

	thesis := parsed.FinalThesis
	if thesis == "" {
		thesis = initial.Thesis
	}

	return models.Opinion{
		Thesis:     thesis,
		Confidence: Normalize(parsed.FinalConfidence),
		Signal:     models.ParseSignal(parsed.FinalSignal),
	}, true
}

// applyGuardrails enforces the persistence rules on a candidate revision.
// All three rules are evaluated in order; a later applicable rule
// overrides the outcome of an earlier one. The collapse override tests
// the raw candidate confidence, not the floor-clamped value.
func applyGuardrails(initial, candidate models.Opinion, danger float64, critique string) models.Opinion {
	final := candidate
	final.Confidence = NormalizeFloat(final.Confidence)

	// 1. Persistence floor: weak danger cannot justify losing more than
	// 10% of initial confidence.
	if danger < persistenceDangerMax {
		floor := persistenceRatio * initial.Confidence
		if final.Confidence < floor {
			final = models.Opinion{
				Thesis:     initial.Thesis + " (Confidence held at the persistence floor: the risk audit scored too low to justify the drop.)",
				Confidence: floor,
				Signal:     initial.Signal,
			}
		}
	}

	// 2. Collapse override: a candidate that caves below 70 under
	// demonstrably low danger is discarded entirely.
	if danger < collapseDangerMax && candidate.Confidence < collapseConfidenceMin {
		final = models.Opinion{
			Thesis:     initial.Thesis + " (Initial position restored: the revision collapsed despite a low-risk audit.)",
			Confidence: initial.Confidence,
			Signal:     initial.Signal,
		}
	}

	// 3. No-evidence override: a critique that found nothing
	// ticker-specific is confirmation, not grounds for revision.
	if strings.Contains(critique, noEvidenceMarker) {
		final = initial
	}

	return final
}

// scanCatalysts returns the catalyst phrases found in the news corpus and
// the highest confidence floor among them.
func (s *Service) scanCatalysts(news string) ([]string, float64) {
	if news == "" {
		return nil, 0
	}

	lower := strings.ToLower(news)
	var matched []string
	floor := 0.0
	for _, rule := range s.catalysts {
		if rule.Phrase == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(rule.Phrase)) {
			matched = append(matched, rule.Phrase)
			if rule.MinConfidence > floor {
				floor = rule.MinConfidence
			}
		}
	}
	return matched, floor
}
