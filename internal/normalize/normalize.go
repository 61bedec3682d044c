// Package normalize rewrites loosely formatted input into canonical codes
// before validation. Every function here is idempotent, and values it does
// not recognise are returned unchanged so validation can report them.
package normalize

import (
	"regexp"
	"strings"
	"time"
)

// PhonePattern is the canonical phone form: optional "+" then 9 to 15 digits.
var PhonePattern = regexp.MustCompile(`^\+?\d{9,15}$`)

var nonDigits = regexp.MustCompile(`\D`)

// Phone returns s unchanged when it already matches PhonePattern, otherwise
// "+" followed by its digits. Input without digits is returned as is.
func Phone(s string) string {
	if PhonePattern.MatchString(s) {
		return s
	}
	digits := nonDigits.ReplaceAllString(s, "")
	if digits == "" {
		return s
	}
	return "+" + digits
}

// OptionalPhone normalizes a nullable phone number.
func OptionalPhone(s *string) *string {
	if s == nil {
		return nil
	}
	v := Phone(*s)
	return &v
}

// Email trims and lower-cases an address; blank addresses become nil.
func Email(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	if v == "" {
		return nil
	}
	return &v
}

// Text trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// OptionalText trims a nullable string; blank values become nil.
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Timestamp converts t to UTC at whole-second precision so equal slots
// compare equal regardless of the client's offset.
func Timestamp(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Second)
}

// OptionalTimestamp normalizes a nullable timestamp.
func OptionalTimestamp(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := Timestamp(*t)
	return &v
}

// code looks up a trimmed, case-folded label; unknown input is returned as is.
func code[T ~string](table map[string]T, in T) T {
	if c, ok := table[strings.ToLower(strings.TrimSpace(string(in)))]; ok {
		return c
	}
	return in
}
