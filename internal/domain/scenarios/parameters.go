package scenarios

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parameters holds the free-form, type specific settings of a scenario
// such as start_month or shock_amount.
type Parameters map[string]any

// Float returns the numeric parameter key, or def when it is absent or null.
// Numbers and numeric strings are accepted.
func (p Parameters) Float(key string, def float64) (float64, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return def, nil
	}

	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("parameter %s: %w", key, err)
		}
		return f, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("parameter %s: %q is not a number", key, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("parameter %s: unsupported value type %T", key, raw)
	}
}

// Int returns the parameter key truncated toward zero, or def when it is absent or null.
func (p Parameters) Int(key string, def int) (int, error) {
	if s, ok := p[key].(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("parameter %s: %q is not an integer", key, s)
		}
		return n, nil
	}

	f, err := p.Float(key, float64(def))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("parameter %s: %v is out of range", key, f)
	}
	return int(f), nil
}
