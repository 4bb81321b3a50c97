// Package models defines the data structures shared across Council services
package models

import (
	"strings"
	"time"
)

// Signal is a buy/sell/hold stance.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalHold Signal = "HOLD"
	SignalSell Signal = "SELL"
)

// ParseSignal maps free-form text to a Signal, defaulting to HOLD.
func ParseSignal(s string) Signal {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return SignalBuy
	case "SELL":
		return SignalSell
	default:
		return SignalHold
	}
}

// Style is the user's investing style.
type Style string

const (
	StyleTrader   Style = "trader"
	StyleInvestor Style = "investor"
)

// RiskTolerance is the user's appetite for risk.
type RiskTolerance string

const (
	RiskAggressive   RiskTolerance = "aggressive"
	RiskModerate     RiskTolerance = "moderate"
	RiskConservative RiskTolerance = "conservative"
)

// Profile selects the verdict weight table.
type Profile struct {
	Style         Style         `json:"style"`
	RiskTolerance RiskTolerance `json:"risk_tolerance"`
}

// Opinion is one analyst's stance on a ticker: a short thesis, a
// confidence in [0,100], and a signal.
type Opinion struct {
	Thesis     string  `json:"thesis"`
	Confidence float64 `json:"confidence"`
	Signal     Signal  `json:"signal"`
}

// AnalystRecord holds an analyst's initial opinion and the revision it
// settled on after the risk rebuttal round.
type AnalystRecord struct {
	Initial Opinion `json:"initial"`
	Final   Opinion `json:"final"`
}

// RiskAssessment is the risk auditor's output. DangerScore uses a pointer
// so a deliberate zero is distinguishable from "not yet assessed".
type RiskAssessment struct {
	CritiqueTechnical   string   `json:"critique_technical"`
	CritiqueFundamental string   `json:"critique_fundamental"`
	DangerScore         *float64 `json:"danger_score"`
	EvidenceSummary     string   `json:"evidence_summary"`
}

// Danger returns the danger score, defaulting to neutral when unset.
func (r *RiskAssessment) Danger() float64 {
	if r == nil || r.DangerScore == nil {
		return 50.0
	}
	return *r.DangerScore
}

// Verdict is the terminal output of one analysis run.
type Verdict struct {
	Signal      Signal  `json:"signal"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// Case is the single mutable record threaded through the debate pipeline
// for one ticker. Each stage reads prior fields and writes only its own;
// the pipeline owns the Case exclusively for its duration.
type Case struct {
	ID          string         `json:"id" badgerhold:"key"`
	Ticker      string         `json:"ticker"`
	Profile     Profile        `json:"profile"`
	Technical   AnalystRecord  `json:"technical"`
	Fundamental AnalystRecord  `json:"fundamental"`
	Risk        RiskAssessment `json:"risk"`
	NewsCorpus  string         `json:"-"`
	Verdict     *Verdict       `json:"verdict,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
