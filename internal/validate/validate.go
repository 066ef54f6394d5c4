package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBookID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)
	reQ      = regexp.MustCompile(`^[\p{L}\p{N} _'\-]{1,50}$`)
	reNote   = regexp.MustCompile(`^[^<>]{0,200}$`)
)

// BookID validates a book identifier (ISBN-ish short code).
func BookID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reBookID.MatchString(s)
}

// Qty parses a positive quantity; invalid input reports false rather than
// silently clamping, since a bad quantity must abort before any network call.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	if n > 999 {
		return 0, false
	}
	return n, true
}

// ID parses a positive numeric resource id (order, address, shipment).
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Q validates a catalogue search query.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r := []rune(s); len(r) > 50 {
		// Truncate whole runes; cutting at a byte offset could split a
		// multi-byte character and fail the character-class check below.
		s = string(r[:50])
	}
	return s, reQ.MatchString(s)
}

// Note validates the optional free-text note on a shortage decision.
func Note(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reNote.MatchString(s)
}

// Amount parses a positive money amount string (recharge form).
func Amount(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return "", false
	}
	return s, true
}
