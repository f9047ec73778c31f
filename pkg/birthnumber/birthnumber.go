package birthnumber

import (
	"strings"
	"time"
)

// DefaultSeparator splits the date part from the serial part in Formatted.
const DefaultSeparator = "/"

// MaxSeparatorLen bounds caller-chosen separators, in bytes.
const MaxSeparatorLen = 3

// datePartLen is the number of leading digits that encode the date of birth.
const datePartLen = 6

// Sex is the holder's sex as encoded in the month field.
type Sex uint8

const (
	SexMale Sex = iota + 1
	SexFemale
)

// String returns "male" or "female", or "" for the zero value.
func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return ""
	}
}

// BirthNumber is a validated birth number.
//
// Invariants:
//   - normalized is exactly 9 or 10 ASCII digits
//   - year/month/day form a real Gregorian date
//   - the checksum digit is valid whenever one was required
//
// The zero value is not a valid birth number; values are only produced by
// the parse functions. Identity is the normalized form: use Equal, or key
// maps by Normalized. == agrees with Equal for values parsed under the same
// CenturyPolicy.
type BirthNumber struct {
	normalized string
	year       int
	month      time.Month
	day        int
	sex        Sex
}

// Normalized returns the digits-only form, e.g. "7360280719".
func (b BirthNumber) Normalized() string {
	return b.normalized
}

// Formatted returns the normalized form split by DefaultSeparator,
// e.g. "736028/0719".
func (b BirthNumber) Formatted() string {
	return b.Format(DefaultSeparator)
}

// Format returns the normalized form with sep between the date part and the
// serial part.
func (b BirthNumber) Format(sep string) string {
	if b.IsZero() {
		return ""
	}
	return b.normalized[:datePartLen] + sep + b.normalized[datePartLen:]
}

// FormatWithSeparator renders v with sep between the date part and the serial
// part.
func FormatWithSeparator(v BirthNumber, sep string) string {
	return v.Format(sep)
}

// ValidateSeparator rejects separators that would make a formatted number
// ambiguous: longer than MaxSeparatorLen, or containing digits.
func ValidateSeparator(sep string) error {
	if len(sep) > MaxSeparatorLen {
		return ErrSeparatorTooLong
	}
	if strings.ContainsAny(sep, "0123456789") {
		return ErrSeparatorDigits
	}
	return nil
}

// DateOfBirth returns the decoded date of birth at midnight UTC.
func (b BirthNumber) DateOfBirth() time.Time {
	if b.IsZero() {
		return time.Time{}
	}
	return time.Date(b.year, b.month, b.day, 0, 0, 0, 0, time.UTC)
}

// Year returns the resolved four-digit birth year.
func (b BirthNumber) Year() int {
	return b.year
}

// Month returns the true birth month with any offset removed.
func (b BirthNumber) Month() time.Month {
	return b.month
}

// Day returns the day of the month of birth.
func (b BirthNumber) Day() int {
	return b.day
}

// Sex returns the decoded sex.
func (b BirthNumber) Sex() Sex {
	return b.sex
}

// IsMale reports whether the number encodes a man.
func (b BirthNumber) IsMale() bool {
	return b.sex == SexMale
}

// IsFemale reports whether the number encodes a woman.
func (b BirthNumber) IsFemale() bool {
	return b.sex == SexFemale
}

// HasChecksum reports whether this is the ten-digit form.
func (b BirthNumber) HasChecksum() bool {
	return len(b.normalized) == longLen
}

// AgeAt returns the holder's age in completed years at now. The birthday
// itself counts as completed.
func (b BirthNumber) AgeAt(now time.Time) int {
	if b.IsZero() {
		return 0
	}
	y, m, d := now.UTC().Date()
	age := y - b.year
	if m < b.month || (m == b.month && d < b.day) {
		age--
	}
	return age
}

// IsAdultAt reports whether the holder is 18 or older at now.
func (b BirthNumber) IsAdultAt(now time.Time) bool {
	return b.AgeAt(now) >= 18
}

// Masked returns the formatted value with the serial digits replaced by '*',
// e.g. "736028/****". Use it wherever a birth number ends up in logs.
func (b BirthNumber) Masked() string {
	if b.IsZero() {
		return ""
	}
	return b.normalized[:datePartLen] + DefaultSeparator + strings.Repeat("*", len(b.normalized)-datePartLen)
}

// Equal reports whether b and other have the same normalized form.
func (b BirthNumber) Equal(other BirthNumber) bool {
	return b.normalized == other.normalized
}

// IsZero returns true if this is the zero value (not produced by a parse).
func (b BirthNumber) IsZero() bool {
	return b.normalized == ""
}

// String returns the formatted value.
func (b BirthNumber) String() string {
	return b.Formatted()
}

// MarshalText implements encoding.TextMarshaler using the formatted value.
func (b BirthNumber) MarshalText() ([]byte, error) {
	return []byte(b.Formatted()), nil
}
