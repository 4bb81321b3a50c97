package storage

import (
	"context"
	"testing"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/council/internal/common"
	"github.com/bobmcallan/council/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	opts := badgerhold.DefaultOptions
	opts.Dir = t.TempDir()
	opts.ValueDir = opts.Dir
	opts.Logger = nil

	store, err := badgerhold.Open(opts)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := common.NewLogger("error")
	db := &BadgerDB{store: store, logger: logger}

	return &Manager{
		db:       db,
		verdicts: newVerdictStorage(db, logger),
		logger:   logger,
	}
}

func testCase(id, ticker string, createdAt time.Time) *models.Case {
	danger := 25.0
	return &models.Case{
		ID:        id,
		Ticker:    ticker,
		Profile:   models.Profile{Style: models.StyleTrader, RiskTolerance: models.RiskAggressive},
		Risk:      models.RiskAssessment{DangerScore: &danger},
		Verdict:   &models.Verdict{Signal: models.SignalHold, Confidence: 15},
		CreatedAt: createdAt,
	}
}

func TestSaveAndGetCase(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	store := m.VerdictStore()

	c := testCase("case-1", "TSLA", time.Now())
	c.Technical.Final = models.Opinion{Thesis: "Momentum intact", Confidence: 72, Signal: models.SignalBuy}

	if err := store.SaveCase(ctx, c); err != nil {
		t.Fatalf("failed to save case: %v", err)
	}

	got, err := store.GetCase(ctx, "case-1")
	if err != nil {
		t.Fatalf("failed to get case: %v", err)
	}
	if got.Ticker != "TSLA" {
		t.Errorf("ticker = %q, want TSLA", got.Ticker)
	}
	if got.Technical.Final.Confidence != 72 {
		t.Errorf("technical final = %v, want 72", got.Technical.Final.Confidence)
	}
	if got.Risk.Danger() != 25 {
		t.Errorf("danger = %v, want 25", got.Risk.Danger())
	}
	if got.Verdict == nil || got.Verdict.Signal != models.SignalHold {
		t.Errorf("verdict not round-tripped: %+v", got.Verdict)
	}
}

func TestSaveCaseRequiresID(t *testing.T) {
	m := newTestManager(t)

	c := testCase("", "TSLA", time.Now())
	if err := m.VerdictStore().SaveCase(context.Background(), c); err == nil {
		t.Errorf("saving a case without an ID did not fail")
	}
}

func TestGetCaseNotFound(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.VerdictStore().GetCase(context.Background(), "missing"); err == nil {
		t.Errorf("missing case did not return an error")
	}
}

func TestListCasesNewestFirst(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	store := m.VerdictStore()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"old", "mid", "new"} {
		c := testCase(id, "KO", base.Add(time.Duration(i)*time.Minute))
		if err := store.SaveCase(ctx, c); err != nil {
			t.Fatalf("failed to seed case %s: %v", id, err)
		}
	}

	cases, err := store.ListCases(ctx, "", 0)
	if err != nil {
		t.Fatalf("failed to list cases: %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("listed %d cases, want 3", len(cases))
	}
	if cases[0].ID != "new" || cases[2].ID != "old" {
		t.Errorf("order = [%s %s %s], want newest first", cases[0].ID, cases[1].ID, cases[2].ID)
	}
}

func TestListCasesFilterAndLimit(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	store := m.VerdictStore()

	now := time.Now()
	seeds := []*models.Case{
		testCase("t1", "TSLA", now.Add(-3*time.Minute)),
		testCase("t2", "TSLA", now.Add(-2*time.Minute)),
		testCase("k1", "KO", now.Add(-1*time.Minute)),
	}
	for _, c := range seeds {
		if err := store.SaveCase(ctx, c); err != nil {
			t.Fatalf("failed to seed case %s: %v", c.ID, err)
		}
	}

	tsla, err := store.ListCases(ctx, "TSLA", 0)
	if err != nil {
		t.Fatalf("failed to list TSLA cases: %v", err)
	}
	if len(tsla) != 2 {
		t.Fatalf("listed %d TSLA cases, want 2", len(tsla))
	}
	if tsla[0].ID != "t2" {
		t.Errorf("first TSLA case = %s, want t2", tsla[0].ID)
	}

	limited, err := store.ListCases(ctx, "", 1)
	if err != nil {
		t.Fatalf("failed to list limited cases: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "k1" {
		t.Errorf("limited list = %+v, want just k1", limited)
	}
}
