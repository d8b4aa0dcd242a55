package normalize

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// FlightNumber normalizes a free-form flight number to the 4-digit padded
// form used by the departure-control views (e.g. "GF277" -> "0277").
func FlightNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "0000"
	}
	if len(digits) >= 4 {
		return digits[len(digits)-4:]
	}
	return strings.Repeat("0", 4-len(digits)) + digits
}

// UnpadFlightNumber strips non-digits and leading zeros, the inverse
// convention expected by the status provider ("0277" -> "277").
func UnpadFlightNumber(raw string) string {
	trimmed := strings.TrimLeft(FlightNumber(raw), "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// SplitNameSurnameFirst splits a "SURNAME GIVEN [MIDDLE]" name as stored in
// the reservation source. The first token is the surname.
func SplitNameSurnameFirst(full string) (given, surname string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return strings.Join(parts[1:], " "), parts[0]
	}
}

// SplitNameSurnameLast splits a "GIVEN [MIDDLE] SURNAME" name as stored in
// the departure-control source. The last token is the surname.
func SplitNameSurnameLast(full string) (given, surname string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}

// Time reduces a raw time string to "HH:mm". Inputs already shaped like
// "HH:mm..." are truncated; everything else goes through a best-effort
// parse. Unparseable input yields the empty string.
func Time(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 5 && looksLikeClock(s[:5]) {
		return s[:5]
	}
	for _, layout := range []string{"15:04:05", "15:04", "3:04 PM", "15.04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return ""
}

func looksLikeClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	return hh < 24 && mm < 60
}

// TerminalNumber extracts the numeric part of a terminal label such as
// "T1" or "Terminal 2". The second return value is false when the label
// carries no digits.
func TerminalNumber(raw string) (int, bool) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// timestampLayouts covers the loosely formatted local timestamps returned
// by the status provider.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ExtractTime returns the "HH:mm" portion of an ISO-like timestamp, or the
// empty string when the input cannot be parsed.
func ExtractTime(raw string) string {
	t, ok := parseTimestamp(raw)
	if !ok {
		return ""
	}
	return t.Format("15:04")
}

// ExtractDate returns the "dd/MM/yyyy" portion of an ISO-like timestamp, or
// the empty string when the input cannot be parsed.
func ExtractDate(raw string) string {
	t, ok := parseTimestamp(raw)
	if !ok {
		return ""
	}
	return t.Format("02/01/2006")
}

func parseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// maskPlaceholder is returned for phone numbers too short to mask safely.
const maskPlaceholder = "****"

// MaskPhone hides the middle of a phone number for log output, keeping the
// first four and last two characters.
func MaskPhone(phone string) string {
	if len(strings.TrimSpace(phone)) == 0 || len(phone) < 6 {
		return maskPlaceholder
	}
	return phone[:4] + strings.Repeat("*", len(phone)-6) + phone[len(phone)-2:]
}
