package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Date layouts exchanged with the store API and shown to users
const (
	InputDateLayout   = "2006-01-02"          // what users type, YYYY-MM-DD
	BackendDateLayout = "02-01-2006"          // what the stock API expects, DD-MM-YYYY
	DisplayDateLayout = "02/01/2006"          // en-GB style
	DisplayTimeLayout = "02/01/2006 15:04:05" // en-GB style with seconds
)

var appLocation = time.UTC

// InitTimezone sets the location used for display; UTC when empty or unknown
func InitTimezone(timezone string) error {
	if timezone == "" {
		appLocation = time.UTC
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		appLocation = time.UTC
		return fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	appLocation = loc
	return nil
}

// Now returns current time in application timezone
func Now() time.Time {
	return time.Now().In(appLocation)
}

// NowFormatted returns current time formatted in RFC3339 with app timezone
func NowFormatted() string {
	return Now().Format(time.RFC3339)
}

// GetLocation returns the current application location
func GetLocation() *time.Location {
	return appLocation
}

// ToBackendDate converts YYYY-MM-DD into DD-MM-YYYY, "" when any part is missing
func ToBackendDate(date string) string {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ""
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// FormatDisplayDate renders an API timestamp as DD/MM/YYYY; unparseable input is returned as-is
func FormatDisplayDate(value string) string {
	return formatDisplay(value, DisplayDateLayout)
}

// FormatDisplayDateTime renders an API timestamp as DD/MM/YYYY HH:MM:SS
func FormatDisplayDateTime(value string) string {
	return formatDisplay(value, DisplayTimeLayout)
}

func formatDisplay(value, layout string) string {
	if value == "" {
		return ""
	}
	for _, in := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", InputDateLayout} {
		if t, err := time.Parse(in, value); err == nil {
			return t.In(appLocation).Format(layout)
		}
	}
	return value
}

// ToFloat coerces a loosely typed JSON value into a number, 0 when it is not one.
// Strings are read from their numeric prefix, so "12.5 KG" gives 12.5.
func ToFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return leadingFloat(n)
	default:
		return 0
	}
}

// ToNumber is the strict counterpart of ToFloat: a string must be numeric as a
// whole after trimming, otherwise 0. Empty strings give 0.
func ToNumber(v any) float64 {
	s, ok := v.(string)
	if !ok {
		return ToFloat(v)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatNumber renders a quantity without trailing zeros
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToString renders a loosely typed JSON value, "" for nil
func ToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return FormatNumber(s)
	default:
		return fmt.Sprint(s)
	}
}

// FirstPresent returns the first key present in m with a non-nil value
func FirstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// UcFirst returns a copy of the input string with the first character uppercased.
func UcFirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot, seenDigit := false, false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			goto done
		}
		end = i + 1
	}
done:
	if !seenDigit {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimRight(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}
