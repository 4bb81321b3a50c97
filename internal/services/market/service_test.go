package market

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/council/internal/common"
	"github.com/bobmcallan/council/internal/interfaces"
	"github.com/bobmcallan/council/internal/models"
)

type mockClient struct {
	bars         []models.EODBar
	barsErr      error
	fundamentals *models.FundamentalsSnapshot
	news         map[string][]*models.NewsItem
	newsErr      error
	queries      []string
}

func (m *mockClient) GetEOD(ctx context.Context, ticker string, opts ...interfaces.EODOption) ([]models.EODBar, error) {
	return m.bars, m.barsErr
}

func (m *mockClient) GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalsSnapshot, error) {
	if m.fundamentals == nil {
		return nil, errors.New("not found")
	}
	return m.fundamentals, nil
}

func (m *mockClient) SearchNews(ctx context.Context, query string, limit int) ([]*models.NewsItem, error) {
	m.queries = append(m.queries, query)
	if m.newsErr != nil {
		return nil, m.newsErr
	}
	return m.news[query], nil
}

func uptrendBars(n int) []models.EODBar {
	bars := make([]models.EODBar, n)
	for i := range bars {
		bars[i] = models.EODBar{Close: 100 + float64(n-i), Volume: 1000}
	}
	return bars
}

func TestGetTechnicalSnapshot(t *testing.T) {
	client := &mockClient{bars: uptrendBars(60)}
	svc := NewService(client, common.NewSilentLogger())

	snap, err := svc.GetTechnicalSnapshot(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("GetTechnicalSnapshot failed: %v", err)
	}
	if snap.Ticker != "TSLA" {
		t.Errorf("ticker = %q", snap.Ticker)
	}
	if snap.Price != 160 {
		t.Errorf("price = %v, want 160", snap.Price)
	}
	if snap.SMA20 == 0 || snap.RSI14 == 0 {
		t.Errorf("indicators not computed: %+v", snap)
	}
}

func TestGetTechnicalSnapshotInsufficientHistory(t *testing.T) {
	client := &mockClient{bars: uptrendBars(5)}
	svc := NewService(client, common.NewSilentLogger())

	if _, err := svc.GetTechnicalSnapshot(context.Background(), "TSLA"); err == nil {
		t.Errorf("expected an error with 5 bars")
	}
}

func TestGetTechnicalSnapshotNoClient(t *testing.T) {
	svc := NewService(nil, common.NewSilentLogger())

	if _, err := svc.GetTechnicalSnapshot(context.Background(), "TSLA"); err == nil {
		t.Errorf("expected an error without a client")
	}
	if _, err := svc.GetFundamentalsSnapshot(context.Background(), "TSLA"); err == nil {
		t.Errorf("expected an error without a client")
	}
	if _, err := svc.GatherNews(context.Background(), "TSLA"); err == nil {
		t.Errorf("expected an error without a client")
	}
}

func TestGatherNewsRunsAllPasses(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	client := &mockClient{news: map[string][]*models.NewsItem{
		"TSLA": {
			{Title: "TSLA hits record deliveries", Content: "Quarterly deliveries beat.", PublishedAt: now},
		},
		"TSLA regulatory investigation lawsuit": {
			{Title: "Regulators probe TSLA software", Content: "An inquiry opened.", PublishedAt: now},
			{Title: "TSLA hits record deliveries", Content: "Duplicate article."},
		},
		"TSLA outlook guidance": {
			{Title: "TSLA raises guidance", Content: "Outlook lifted."},
		},
	}}
	svc := NewService(client, common.NewSilentLogger())

	corpus, err := svc.GatherNews(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("GatherNews failed: %v", err)
	}

	if len(client.queries) != 3 {
		t.Errorf("ran %d passes, want 3: %v", len(client.queries), client.queries)
	}
	if !strings.Contains(corpus, "record deliveries") || !strings.Contains(corpus, "Regulators probe") {
		t.Errorf("corpus missing pass results: %q", corpus)
	}
	if !strings.Contains(corpus, "raises guidance") {
		t.Errorf("corpus missing outlook pass: %q", corpus)
	}
	// The duplicate title from the second pass appears once.
	if strings.Count(corpus, "TSLA hits record deliveries") != 1 {
		t.Errorf("duplicate article not collapsed: %q", corpus)
	}
	if !strings.Contains(corpus, "2026-08-28: ") {
		t.Errorf("dated line missing prefix: %q", corpus)
	}
}

func TestGatherNewsCap(t *testing.T) {
	long := strings.Repeat("TSLA coverage sentence. ", 50)
	client := &mockClient{news: map[string][]*models.NewsItem{
		"TSLA": {
			{Title: "Deep dive one", Content: long},
			{Title: "Deep dive two", Content: long},
		},
	}}
	svc := NewService(client, common.NewSilentLogger(), WithNewsCap(600))

	corpus, err := svc.GatherNews(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("GatherNews failed: %v", err)
	}
	if len(corpus) > 600 {
		t.Errorf("corpus length = %d, want <= 600", len(corpus))
	}
}

func TestGatherNewsFailedPassIsSkipped(t *testing.T) {
	client := &mockClient{newsErr: errors.New("rate limited")}
	svc := NewService(client, common.NewSilentLogger())

	corpus, err := svc.GatherNews(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("GatherNews failed: %v", err)
	}
	if corpus != "" {
		t.Errorf("corpus = %q, want empty", corpus)
	}
	if len(client.queries) != 3 {
		t.Errorf("ran %d passes, want all 3 attempted", len(client.queries))
	}
}
