package signals

import (
	"math"
	"testing"

	"github.com/bobmcallan/council/internal/models"
)

// barsFromCloses builds newest-first bars from newest-first closes.
func barsFromCloses(closes ...float64) []models.EODBar {
	bars := make([]models.EODBar, len(closes))
	for i, c := range closes {
		bars[i] = models.EODBar{Close: c, Volume: 1000}
	}
	return bars
}

func TestSMA(t *testing.T) {
	bars := barsFromCloses(10, 20, 30, 40)

	if got := SMA(bars, 2); got != 15 {
		t.Errorf("SMA(2) = %v, want 15", got)
	}
	if got := SMA(bars, 4); got != 25 {
		t.Errorf("SMA(4) = %v, want 25", got)
	}
	if got := SMA(bars, 5); got != 0 {
		t.Errorf("SMA over history length = %v, want 0", got)
	}
	if got := SMA(bars, 0); got != 0 {
		t.Errorf("SMA(0) = %v, want 0", got)
	}
}

func TestEMA(t *testing.T) {
	// Constant closes: EMA equals the close regardless of period.
	flat := barsFromCloses(50, 50, 50, 50, 50, 50)
	if got := EMA(flat, 3); got != 50 {
		t.Errorf("EMA flat = %v, want 50", got)
	}

	// In an uptrend the EMA leans toward recent (higher) closes, so it
	// sits above the SMA of the same period.
	rising := barsFromCloses(30, 25, 20, 15, 10)
	if ema, sma := EMA(rising, 5), SMA(rising, 5); ema <= sma {
		t.Errorf("EMA %v not above SMA %v in an uptrend", ema, sma)
	}

	if got := EMA(rising, 6); got != 0 {
		t.Errorf("EMA over history length = %v, want 0", got)
	}
}

func TestRSI(t *testing.T) {
	// Monotonic rise: no losses, RSI pegs at 100.
	rising := barsFromCloses(15, 14, 13, 12, 11, 10)
	if got := RSI(rising, 5); got != 100 {
		t.Errorf("RSI all-gains = %v, want 100", got)
	}

	// Alternating equal gains and losses settle at 50.
	choppy := barsFromCloses(10, 11, 10, 11, 10, 11, 10)
	got := RSI(choppy, 6)
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("RSI balanced = %v, want 50", got)
	}

	// Insufficient history returns the neutral default.
	if got := RSI(barsFromCloses(10, 11), 14); got != 50 {
		t.Errorf("RSI short history = %v, want 50", got)
	}
}

func TestAvgVolume(t *testing.T) {
	bars := []models.EODBar{
		{Close: 10, Volume: 100},
		{Close: 10, Volume: 200},
		{Close: 10, Volume: 300},
	}
	if got := AvgVolume(bars, 3); got != 200 {
		t.Errorf("AvgVolume = %v, want 200", got)
	}
	if got := AvgVolume(bars, 4); got != 0 {
		t.Errorf("AvgVolume short history = %v, want 0", got)
	}
}

func TestSnapshot(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(60-i) // newest highest, steady uptrend
	}
	bars := barsFromCloses(closes...)

	snap := Snapshot("TSLA", bars)
	if snap == nil {
		t.Fatalf("Snapshot returned nil with 60 bars")
	}
	if snap.Ticker != "TSLA" {
		t.Errorf("ticker = %q", snap.Ticker)
	}
	if snap.Price != 160 {
		t.Errorf("price = %v, want 160", snap.Price)
	}
	// SMA20 over 160..141 is 150.5; the price sits above it.
	if math.Abs(snap.SMA20-150.5) > 1e-9 {
		t.Errorf("SMA20 = %v, want 150.5", snap.SMA20)
	}
	if snap.DistanceToSMA20 <= 0 {
		t.Errorf("distance = %v, want positive in an uptrend", snap.DistanceToSMA20)
	}
	if snap.RSI14 != 100 {
		t.Errorf("RSI14 = %v, want 100 in a monotonic rise", snap.RSI14)
	}
}

func TestSnapshotInsufficientHistory(t *testing.T) {
	if snap := Snapshot("TSLA", barsFromCloses(10, 11, 12)); snap != nil {
		t.Errorf("Snapshot = %+v, want nil under 20 bars", snap)
	}
}
