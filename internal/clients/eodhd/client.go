// Package eodhd provides a client for the EODHD API
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/council/internal/common"
	"github.com/bobmcallan/council/internal/interfaces"
	"github.com/bobmcallan/council/internal/models"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client implements the MarketDataClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new EODHD client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("eodhd api error (%d) on %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// get performs a rate-limited GET and decodes the JSON response into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}

	return nil
}

// eodBar is the wire format for one EOD bar.
type eodBar struct {
	Date   string      `json:"date"`
	Open   flexFloat64 `json:"open"`
	High   flexFloat64 `json:"high"`
	Low    flexFloat64 `json:"low"`
	Close  flexFloat64 `json:"close"`
	Volume int64       `json:"volume"`
}

// GetEOD retrieves end-of-day price bars, newest first.
func (c *Client) GetEOD(ctx context.Context, ticker string, opts ...interfaces.EODOption) ([]models.EODBar, error) {
	params := &interfaces.EODParams{}
	for _, opt := range opts {
		opt(params)
	}

	values := url.Values{}
	values.Set("order", "d")
	if !params.From.IsZero() {
		values.Set("from", params.From.Format("2006-01-02"))
	}
	if !params.To.IsZero() {
		values.Set("to", params.To.Format("2006-01-02"))
	}

	var raw []eodBar
	if err := c.get(ctx, "/eod/"+ticker, values, &raw); err != nil {
		return nil, err
	}

	if params.Limit > 0 && len(raw) > params.Limit {
		raw = raw[:params.Limit]
	}

	bars := make([]models.EODBar, 0, len(raw))
	for _, b := range raw {
		date, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			continue
		}
		bars = append(bars, models.EODBar{
			Date:   date,
			Open:   float64(b.Open),
			High:   float64(b.High),
			Low:    float64(b.Low),
			Close:  float64(b.Close),
			Volume: b.Volume,
		})
	}

	c.logger.Debug().Str("ticker", ticker).Int("bars", len(bars)).Msg("EOD data retrieved")
	return bars, nil
}

// fundamentalsResponse mirrors the subset of the EODHD fundamentals
// payload the pipeline consumes.
type fundamentalsResponse struct {
	General struct {
		Name     string `json:"Name"`
		Sector   string `json:"Sector"`
		Industry string `json:"Industry"`
	} `json:"General"`
	Highlights struct {
		MarketCapitalization       flexFloat64 `json:"MarketCapitalization"`
		PERatio                    flexFloat64 `json:"PERatio"`
		EarningsShare              flexFloat64 `json:"EarningsShare"`
		ProfitMargin               flexFloat64 `json:"ProfitMargin"`
		QuarterlyRevenueGrowthYOY  flexFloat64 `json:"QuarterlyRevenueGrowthYOY"`
		DividendYield              flexFloat64 `json:"DividendYield"`
	} `json:"Highlights"`
	Valuation struct {
		PriceBookMRQ flexFloat64 `json:"PriceBookMRQ"`
	} `json:"Valuation"`
	Financials struct {
		BalanceSheet struct {
			DebtToEquity flexFloat64 `json:"DebtToEquity"`
		} `json:"Balance_Sheet"`
	} `json:"Financials"`
}

// GetFundamentals retrieves valuation and margin data.
func (c *Client) GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalsSnapshot, error) {
	var raw fundamentalsResponse
	if err := c.get(ctx, "/fundamentals/"+ticker, nil, &raw); err != nil {
		return nil, err
	}

	return &models.FundamentalsSnapshot{
		Ticker:        ticker,
		Name:          raw.General.Name,
		Sector:        raw.General.Sector,
		Industry:      raw.General.Industry,
		MarketCap:     float64(raw.Highlights.MarketCapitalization),
		PE:            float64(raw.Highlights.PERatio),
		PB:            float64(raw.Valuation.PriceBookMRQ),
		EPS:           float64(raw.Highlights.EarningsShare),
		NetMargin:     float64(raw.Highlights.ProfitMargin),
		RevenueGrowth: float64(raw.Highlights.QuarterlyRevenueGrowthYOY),
		DebtToEquity:  float64(raw.Financials.BalanceSheet.DebtToEquity),
		DividendYield: float64(raw.Highlights.DividendYield),
	}, nil
}

// newsItem is the wire format for one news article.
type newsItem struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Link    string `json:"link"`
	Source  string `json:"source"`
}

// SearchNews retrieves recent articles for a query (ticker or phrase).
func (c *Client) SearchNews(ctx context.Context, query string, limit int) ([]*models.NewsItem, error) {
	values := url.Values{}
	values.Set("s", query)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var raw []newsItem
	if err := c.get(ctx, "/news", values, &raw); err != nil {
		return nil, err
	}

	items := make([]*models.NewsItem, 0, len(raw))
	for _, n := range raw {
		published, _ := time.Parse(time.RFC3339, n.Date)
		items = append(items, &models.NewsItem{
			Title:       n.Title,
			Content:     n.Content,
			Source:      n.Source,
			URL:         n.Link,
			PublishedAt: published,
		})
	}

	c.logger.Debug().Str("query", query).Int("articles", len(items)).Msg("News retrieved")
	return items, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
