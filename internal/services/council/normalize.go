package council

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// neutralConfidence is the fallback for values that cannot be parsed.
// Parsing failure is not treated as zero risk.
const neutralConfidence = 50.0

// Normalize maps an arbitrary value to a canonical confidence in [0,100].
// Unparsable input returns the neutral default; fractions in (0,1] are
// scaled to percentages; everything else is clamped.
func Normalize(v interface{}) float64 {
	f, ok := toFloat(v)
	if !ok {
		return neutralConfidence
	}
	return NormalizeFloat(f)
}

// NormalizeFloat clamps a numeric confidence into [0,100], scaling
// fractional values. A deliberate zero stays zero.
func NormalizeFloat(f float64) float64 {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return neutralConfidence
	case f < 0:
		return 0.0
	case f > 0 && f <= 1.0:
		return f * 100.0
	case f > 100:
		return 100.0
	default:
		return f
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case bool:
		return 0, false
	}
	return 0, false
}
