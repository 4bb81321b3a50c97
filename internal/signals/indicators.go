// Package signals provides technical indicator calculations
package signals

import (
	"github.com/bobmcallan/council/internal/models"
)

// SMA calculates Simple Moving Average for the given period.
// Bars are newest first.
func SMA(bars []models.EODBar, period int) float64 {
	if period <= 0 || len(bars) < period {
		return 0
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += bars[i].Close
	}
	return sum / float64(period)
}

// EMA calculates Exponential Moving Average for the given period
func EMA(bars []models.EODBar, period int) float64 {
	if period <= 0 || len(bars) < period {
		return 0
	}

	multiplier := 2.0 / float64(period+1)
	ema := SMA(bars[len(bars)-period:], period) // Start with SMA

	// Calculate EMA from oldest to newest within the period
	for i := period - 1; i >= 0; i-- {
		ema = (bars[i].Close-ema)*multiplier + ema
	}

	return ema
}

// RSI calculates Relative Strength Index
func RSI(bars []models.EODBar, period int) float64 {
	if period <= 0 || len(bars) < period+1 {
		return 50 // Neutral default
	}

	var gains, losses float64
	for i := 0; i < period; i++ {
		change := bars[i].Close - bars[i+1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// AvgVolume calculates average volume over the given period
func AvgVolume(bars []models.EODBar, period int) int64 {
	if period <= 0 || len(bars) < period {
		return 0
	}

	var sum int64
	for i := 0; i < period; i++ {
		sum += bars[i].Volume
	}
	return sum / int64(period)
}

// Snapshot computes the deterministic indicator set for a ticker from its
// price history. Returns nil when there is not enough history for SMA20.
func Snapshot(ticker string, bars []models.EODBar) *models.TechnicalSnapshot {
	if len(bars) < 20 {
		return nil
	}

	price := bars[0].Close
	sma20 := SMA(bars, 20)
	sma50 := SMA(bars, 50)

	distance := 0.0
	if sma20 != 0 {
		distance = (price - sma20) / sma20 * 100
	}

	return &models.TechnicalSnapshot{
		Ticker:          ticker,
		Price:           price,
		SMA20:           sma20,
		SMA50:           sma50,
		RSI14:           RSI(bars, 14),
		Volume:          bars[0].Volume,
		AvgVolume:       AvgVolume(bars, 20),
		DistanceToSMA20: distance,
	}
}
