package council

import (
	"fmt"

	"github.com/bobmcallan/council/internal/models"
)

// Verdict score thresholds on the weighted composite.
const (
	buyThreshold  = 25.0
	sellThreshold = 10.0
)

// weights is the per-profile contribution of each council member to the
// composite score. The risk weight subtracts.
type weights struct {
	technical   float64
	fundamental float64
	risk        float64
}

// weightsFor resolves the profile to a weight row. An unrecognized style
// falls back to an even split so a malformed profile still yields a
// deterministic verdict.
func weightsFor(profile models.Profile) weights {
	switch profile.Style {
	case models.StyleTrader:
		switch profile.RiskTolerance {
		case models.RiskAggressive:
			return weights{technical: 0.60, fundamental: 0.10, risk: 0.30}
		case models.RiskConservative:
			return weights{technical: 0.40, fundamental: 0.20, risk: 0.40}
		default:
			return weights{technical: 0.50, fundamental: 0.20, risk: 0.30}
		}
	case models.StyleInvestor:
		switch profile.RiskTolerance {
		case models.RiskAggressive:
			return weights{technical: 0.10, fundamental: 0.60, risk: 0.30}
		case models.RiskConservative:
			return weights{technical: 0.10, fundamental: 0.40, risk: 0.50}
		default:
			return weights{technical: 0.20, fundamental: 0.50, risk: 0.30}
		}
	default:
		return weights{technical: 0.33, fundamental: 0.33, risk: 0.34}
	}
}

// CalculateVerdict folds the final confidences and the danger score into
// a single weighted composite and maps it onto a signal. Inputs are
// re-normalized so an out-of-band value cannot skew the score.
func CalculateVerdict(profile models.Profile, technical, fundamental, danger float64) models.Verdict {
	technical = NormalizeFloat(technical)
	fundamental = NormalizeFloat(fundamental)
	danger = NormalizeFloat(danger)

	w := weightsFor(profile)
	score := technical*w.technical + fundamental*w.fundamental - danger*w.risk

	var signal models.Signal
	switch {
	case score >= buyThreshold:
		signal = models.SignalBuy
	case score <= sellThreshold:
		signal = models.SignalSell
	default:
		signal = models.SignalHold
	}

	return models.Verdict{
		Signal:     signal,
		Confidence: score,
		Explanation: fmt.Sprintf(
			"Composite score %.1f for a %s/%s profile: technical %.1f x %.2f + fundamental %.1f x %.2f - danger %.1f x %.2f.",
			score, profile.Style, profile.RiskTolerance,
			technical, w.technical, fundamental, w.fundamental, danger, w.risk),
	}
}
