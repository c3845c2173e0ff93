package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	lineBreaks = strings.NewReplacer("\n", " ", "\r", " ")
	currency   = strings.NewReplacer("$", "", ",", "")
)

// Truncate flattens line breaks to spaces and caps s at n characters,
// appending "..." when anything was cut.
func Truncate(s string, n int) string {
	s = lineBreaks.Replace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Number coerces an arbitrary JSON value to a float64. Numeric types pass
// through; strings are parsed after stripping "$" and ",". Anything else
// reports false.
func Number(v any) (float64, bool) {
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
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(currency.Replace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Lookup returns the first present value among the given keys. A value is
// present when it is not nil, not an empty string, not numeric zero, and
// not false. An unusable present value is still the chosen one: later keys
// are never consulted for it.
func Lookup(rec map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && present(v) {
			return v, true
		}
	}
	return nil, false
}

// LookupNumber chooses a value via Lookup and coerces it with Number.
func LookupNumber(rec map[string]any, keys ...string) (float64, bool) {
	v, ok := Lookup(rec, keys...)
	if !ok {
		return 0, false
	}
	return Number(v)
}

// LookupString chooses a value via Lookup and renders it as a string.
func LookupString(rec map[string]any, keys ...string) (string, bool) {
	v, ok := Lookup(rec, keys...)
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	}
	return true
}

// CivilDate formats t as a calendar date in the given location.
func CivilDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
