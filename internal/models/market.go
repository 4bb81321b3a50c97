package models

import "time"

// EODBar is one end-of-day price bar, newest first in slices.
type EODBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// TechnicalSnapshot is the deterministic indicator set handed to the
// technical analyst round.
type TechnicalSnapshot struct {
	Ticker          string  `json:"ticker"`
	Price           float64 `json:"price"`
	SMA20           float64 `json:"sma20"`
	SMA50           float64 `json:"sma50"`
	RSI14           float64 `json:"rsi14"`
	Volume          int64   `json:"volume"`
	AvgVolume       int64   `json:"avg_volume"`
	DistanceToSMA20 float64 `json:"distance_to_sma20"` // percent
}

// FundamentalsSnapshot is the valuation data handed to the fundamental
// analyst round.
type FundamentalsSnapshot struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Industry      string  `json:"industry"`
	MarketCap     float64 `json:"market_cap"`
	PE            float64 `json:"pe"`
	PB            float64 `json:"pb"`
	EPS           float64 `json:"eps"`
	NetMargin     float64 `json:"net_margin"`
	RevenueGrowth float64 `json:"revenue_growth"`
	DebtToEquity  float64 `json:"debt_to_equity"`
	DividendYield float64 `json:"dividend_yield"`
}

// NewsItem is one article returned by the news search.
type NewsItem struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}
