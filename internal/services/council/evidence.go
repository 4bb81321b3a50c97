package council

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// minSentenceLen discards fragments too short to carry a claim.
	minSentenceLen = 20

	// staleFloorYear is the oldest year the temporal gate considers at
	// all; anything from here through currentYear-2 is stale.
	staleFloorYear = 2020

	// summarySentences is how many retained sentences the summary joins.
	summarySentences = 3
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Evidence is the validated, subject-relevant extract of a news corpus.
type Evidence struct {
	HasSubjectEvidence bool     `json:"has_subject_evidence"`
	Sentences          []string `json:"sentences"`
	Summary            string   `json:"summary"`
}

// Validator extracts subject-relevant, temporally-current sentences from
// unstructured text. It is the ground-truth oracle the risk stage uses to
// bound the text-generation collaborator's claims.
type Validator struct {
	currentYear int
}

// NewValidator creates a validator gated on the current calendar year.
func NewValidator() *Validator {
	return NewValidatorAt(time.Now().Year())
}

// NewValidatorAt creates a validator gated on a fixed year.
func NewValidatorAt(year int) *Validator {
	return &Validator{currentYear: year}
}

// Extract splits text into sentences and retains those that reference the
// subject as a whole word and pass the temporal gate. Stale-year mentions
// are rejected unless the sentence also names the current year, and any
// sentence naming a year must name this year or last year.
func (v *Validator) Extract(text, subject string) Evidence {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(subject) == "" {
		return Evidence{}
	}

	subjectPattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(subject) + `(?:'s)?\b`)
	if err != nil {
		return Evidence{}
	}

	var retained []string
	for _, sentence := range splitSentences(text) {
		if len(sentence) < minSentenceLen {
			continue
		}
		if !subjectPattern.MatchString(sentence) {
			continue
		}
		if !v.passesTemporalGate(sentence) {
			continue
		}
		retained = append(retained, sentence)
	}

	summary := retained
	if len(summary) > summarySentences {
		summary = summary[:summarySentences]
	}

	return Evidence{
		HasSubjectEvidence: len(retained) > 0,
		Sentences:          retained,
		Summary:            strings.Join(summary, " "),
	}
}

// passesTemporalGate rejects sentences anchored on stale years. A sentence
// with no year tokens passes; one mentioning a stale year (staleFloorYear
// through currentYear-2) fails unless the current year appears literally,
// and any year mention requires at least one of {currentYear, currentYear-1}.
func (v *Validator) passesTemporalGate(sentence string) bool {
	matches := yearPattern.FindAllString(sentence, -1)
	if len(matches) == 0 {
		return true
	}

	hasCurrent := false
	hasRecent := false
	hasStale := false
	for _, m := range matches {
		year, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if year == v.currentYear {
			hasCurrent = true
		}
		if year == v.currentYear || year == v.currentYear-1 {
			hasRecent = true
		}
		if year >= staleFloorYear && year <= v.currentYear-2 {
			hasStale = true
		}
	}

	if hasStale && !hasCurrent {
		return false
	}
	return hasRecent
}

// splitSentences breaks text on sentence terminators and line breaks.
func splitSentences(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n' || r == '\r'
	})

	sentences := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			sentences = append(sentences, f)
		}
	}
	return sentences
}
