// pkg/dataset/convert.go
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order when coercing strings to time values
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"2006/01/02",
}

// ToFloat attempts to convert a cell to float64
func ToFloat(v any) (float64, error) {
	if v == nil {
		return 0, errors.New("nil value")
	}

	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return 0, errors.New("empty string")
		}
		// Tolerate thousands separators in text-typed numeric data
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		return strconv.ParseFloat(cleaned, 64)
	case []byte:
		return ToFloat(string(val))
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}

// ToTime attempts to convert a cell to time.Time
func ToTime(v any) (time.Time, error) {
	if v == nil {
		return time.Time{}, errors.New("nil value")
	}

	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return time.Time{}, errors.New("empty string")
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, cleaned); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse time from %q", cleaned)
	default:
		return time.Time{}, fmt.Errorf("cannot convert %T to time", v)
	}
}

// ToString converts a cell to its display string. Nulls render empty.
func ToString(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// IsNullToken reports whether a raw string cell should be treated as null
func IsNullToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "na", "n/a", "nan":
		return true
	}
	return false
}
