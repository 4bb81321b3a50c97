package council

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/council/internal/models"
)

// Prompts keep the evaluation rubrics; none of the guardrail logic lives
// here. Guardrails are deterministic post-processing in rebuttal.go so
// they stay testable without a generative model.

func technicalSystemPrompt(ticker string, snap *models.TechnicalSnapshot) string {
	var sb strings.Builder
	sb.WriteString("You are a veteran technical analyst at a quantitative fund. Respond with JSON only, no preamble.\n\n")
	sb.WriteString(fmt.Sprintf("Ticker: %s\n", ticker))

	if snap != nil {
		sb.WriteString(fmt.Sprintf(`
Indicator data:
- Price: %.2f
- SMA20: %.2f (distance %.2f%%)
- SMA50: %.2f
- RSI14: %.2f
- Volume: %d (avg %d)
`, snap.Price, snap.SMA20, snap.DistanceToSMA20, snap.SMA50, snap.RSI14, snap.Volume, snap.AvgVolume))
	} else {
		sb.WriteString("\nIndicator data: unavailable. Set confidence to 50, signal to HOLD, thesis to \"Technical data unavailable\".\n")
	}

	sb.WriteString(`
Scoring rubric:
- 85-100: price above SMA20 with healthy volume, strong momentum
- 70-84: price above SMA20, secondary indicators mixed or missing
- 50-69: price hugging the SMA or very low volume
- 0-49: price below SMA20 or clear technical breakdown

Return ONLY this JSON object:
{"thesis": "one concise sentence", "confidence": 0, "signal": "BUY|HOLD|SELL"}`)

	return sb.String()
}

func fundamentalSystemPrompt(ticker string, snap *models.FundamentalsSnapshot) string {
	var sb strings.Builder
	sb.WriteString("You are a senior fundamental analyst specializing in equity valuation. Respond with JSON only, no preamble.\n\n")
	sb.WriteString(fmt.Sprintf("Ticker: %s\n", ticker))

	if snap != nil {
		sb.WriteString(fmt.Sprintf(`
Valuation data:
- Name: %s (%s / %s)
- Market cap: %.0f
- P/E: %.2f  P/B: %.2f  EPS: %.2f
- Net margin: %.2f  Revenue growth: %.2f
- Debt/equity: %.2f  Dividend yield: %.4f
`, snap.Name, snap.Sector, snap.Industry, snap.MarketCap, snap.PE, snap.PB, snap.EPS, snap.NetMargin, snap.RevenueGrowth, snap.DebtToEquity, snap.DividendYield))
	} else {
		sb.WriteString("\nValuation data: unavailable. Set confidence to 50, signal to HOLD, thesis to \"Fundamental data unavailable\".\n")
	}

	sb.WriteString(`
Valuation rules:
- Growth/technology sectors: P/E up to 60 is fair; weight revenue growth and margins over P/E
- Net margin above 20% is excellent in any sector
- Debt/equity above 2.0 or negative margins are red flags
- Do not fabricate data that is not provided

Return ONLY this JSON object:
{"thesis": "concise valuation summary", "confidence": 0, "signal": "BUY|HOLD|SELL"}`)

	return sb.String()
}

func riskSystemPrompt(ticker, techThesis, fundThesis, evidenceSummary, news string) string {
	return fmt.Sprintf(`You are an adversarial risk auditor at a hedge fund. Find the hidden trap in the bullish theses. Respond with JSON only.

Ticker: %s

Technical thesis: %s
Fundamental thesis: %s

Pre-validated evidence (recent, ticker-specific sentences):
%s

Full news context:
%s

Audit rules:
- Cite ONLY the pre-validated evidence. The evidence_found field must quote from it directly.
- Lawsuits, federal probes, recalls, and product bans score 50 or higher.
- Price predictions, speculative tweets, and macro rumors are noise; keep the score under 15.
- If the evidence does not threaten the theses, say so and score low.

Return ONLY this JSON object:
{"risk_score": 0, "evidence_found": "direct quote from pre-validated evidence", "risk_critique_tech": "how the evidence invalidates the chart", "risk_critique_fund": "how the evidence impairs the valuation"}`,
		ticker, techThesis, fundThesis, evidenceSummary, news)
}

func rebuttalSystemPrompt(role string, initial models.Opinion, dangerScore float64, critique string) string {
	return fmt.Sprintf(`You are the senior %s analyst reviewing your initial thesis against a risk audit. Respond with JSON only.

Initial thesis: %s
Initial confidence: %.0f
Initial signal: %s
Risk score: %.0f
Risk critique: %s

Rebuttal rules:
- A low-risk audit confirms your thesis; do not invent threats to justify lowering confidence.
- Concede only when the critique cites specific evidence that invalidates your analysis.
- If the critique found no ticker-specific evidence, stand by your initial position unchanged.

Return ONLY this JSON object:
{"final_thesis": "one professional sentence", "final_confidence": %.0f, "final_signal": "%s"}`,
		role, initial.Thesis, initial.Confidence, initial.Signal, dangerScore, critique, initial.Confidence, initial.Signal)
}
