package plot

import (
	"fmt"
	"strconv"
	"time"
)

// Row is an opaque field→value record. The core reads rows and never
// mutates them.
type Row map[string]any

// UnknownCategory is the synthetic category substituted when a discrete
// aesthetic references a field a row does not carry.
const UnknownCategory = "unknown"

// Num returns the value of field coerced to float64.
// Numeric types, numeric strings, and time.Time (epoch seconds) coerce;
// everything else reports ok=false.
func (r Row) Num(field string) (float64, bool) {
	v, present := r[field]
	if !present {
		return 0, false
	}
	return CoerceNum(v)
}

// NumOr returns the numeric value of field, or fallback when the field is
// missing or non-numeric. Missing data is a degradation, not an error.
func (r Row) NumOr(field string, fallback float64) float64 {
	if v, ok := r.Num(field); ok {
		return v
	}
	return fallback
}

// Str returns the value of field rendered as a category string.
// Missing fields report ok=false.
func (r Row) Str(field string) (string, bool) {
	v, present := r[field]
	if !present {
		return "", false
	}
	return CoerceStr(v), true
}

// StrOr returns the category value of field, or fallback when missing.
func (r Row) StrOr(field, fallback string) string {
	if s, ok := r.Str(field); ok {
		return s
	}
	return fallback
}

// CoerceNum converts an arbitrary row value to float64.
func CoerceNum(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case time.Time:
		return float64(n.Unix()), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// CoerceStr converts an arbitrary row value to a category string.
func CoerceStr(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case nil:
		return UnknownCategory
	default:
		return fmt.Sprintf("%v", s)
	}
}
