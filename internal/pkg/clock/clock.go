// Package clock converts between HH:MM wall-clock strings and
// minutes-since-midnight, and knows the venue's two fixed daily sessions.
// Parsing is fail-safe: malformed input is coerced to a safe default with a
// diagnostic instead of surfacing an error, because planner inputs come from
// user-facing forms and a bad string must never abort generation.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// MaxMinute is the last representable minute of a day (23:59).
const MaxMinute = 24*60 - 1

var log = zap.NewNop()

// SetLogger installs the logger used for parse/clamp diagnostics.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Session is one of the venue's fixed daily operating windows. The zero
// value is not a valid session; use Session1, Session2 or SessionByID.
type Session struct {
	ID       int `json:"id"`
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

var (
	Session1 = Session{ID: 1, StartMin: 9*60 + 30, EndMin: 13*60 + 30}
	Session2 = Session{ID: 2, StartMin: 14*60 + 30, EndMin: 18*60 + 30}
)

// Sessions returns both daily sessions in order.
func Sessions() []Session {
	return []Session{Session1, Session2}
}

// SessionByID resolves a session selector (1 or 2).
func SessionByID(id int) (Session, bool) {
	switch id {
	case 1:
		return Session1, true
	case 2:
		return Session2, true
	default:
		return Session{}, false
	}
}

// Start returns the session's opening time as HH:MM.
func (s Session) Start() string { return FromMinutes(s.StartMin) }

// End returns the session's closing time as HH:MM.
func (s Session) End() string { return FromMinutes(s.EndMin) }

// Contains reports whether min falls inside the session's [start, end)
// window.
func (s Session) Contains(min int) bool {
	return min >= s.StartMin && min < s.EndMin
}

var timePattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ToMinutes parses a strict HH:MM string into minutes since midnight.
// Malformed input returns 0 with a diagnostic so downstream arithmetic
// never sees an invalid value.
func ToMinutes(s string) int {
	if !timePattern.MatchString(s) {
		log.Warn("invalid time string, defaulting to 0", zap.String("time", s))
		return 0
	}
	parts := strings.SplitN(s, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// FromMinutes formats minutes since midnight as HH:MM, clamping out-of-range
// values into [0, MaxMinute] with a diagnostic.
func FromMinutes(min int) string {
	if min < 0 || min > MaxMinute {
		log.Warn("minutes out of range, clamping", zap.Int("minutes", min))
		if min < 0 {
			min = 0
		} else {
			min = MaxMinute
		}
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// FormatDisplay renders an HH:MM string in 12-hour form with an AM/PM
// label. Midnight hours (00:xx) render as 12:xx AM.
func FormatDisplay(s string) string {
	min := ToMinutes(s)
	h := min / 60
	m := min % 60

	switch {
	case h == 0:
		return fmt.Sprintf("12:%02d AM", m)
	case h < 12:
		return fmt.Sprintf("%02d:%02d AM", h, m)
	case h == 12:
		return fmt.Sprintf("12:%02d PM", m)
	default:
		return fmt.Sprintf("%02d:%02d PM", h-12, m)
	}
}

// SessionFor returns the session whose window contains the given time, or
// false when the time falls between or outside sessions.
func SessionFor(s string) (Session, bool) {
	min := ToMinutes(s)
	for _, sess := range Sessions() {
		if sess.Contains(min) {
			return sess, true
		}
	}
	return Session{}, false
}

// RemainingLabel formats the time left before the session closes as
// "Xh YYm", or "Ym" when under an hour. A time at or past closing yields
// "0m".
func RemainingLabel(s string, sess Session) string {
	remaining := sess.EndMin - ToMinutes(s)
	if remaining <= 0 {
		return "0m"
	}
	h := remaining / 60
	m := remaining % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
