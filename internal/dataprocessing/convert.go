package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ToFloat converts an arbitrary cell value to a float64. Surrounding
// whitespace, non-breaking spaces and grouping separators (spaces, thousands
// commas) are stripped from the textual form first. Empty or unparsable
// input yields def. ToFloat never fails.
func ToFloat(v any, def float64) float64 {
	if v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}

	s := stringify(v)
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "", ",", "", "\u00a0", "").Replace(s)
	if s == "" {
		return def
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		slog.Debug("unparsable numeric value, using default",
			slog.String("value", s),
			slog.Float64("default", def))
		return def
	}
	return f
}

// ToInt converts an arbitrary cell value to an int. The value is parsed as
// a float first so decimal text like "12.0" is tolerated, then truncated.
// Empty or unparsable input yields def. ToInt never fails.
func ToInt(v any, def int) int {
	if v == nil {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	}

	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return def
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		slog.Debug("unparsable integer value, using default",
			slog.String("value", s),
			slog.Int("default", def))
		return def
	}
	return int(f)
}

// stringify renders a raw cell value as text. Byte slices come straight
// from the binary table reader; anything else falls back to fmt.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}
