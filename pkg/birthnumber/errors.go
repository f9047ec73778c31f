package birthnumber

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates the input is not a valid birth number. It covers
// every rejection: wrong digit count, bad checksum and impossible dates.
var ErrInvalidFormat = errors.New("invalid birth number")

// Separator rule violations returned by ValidateSeparator.
var (
	ErrSeparatorTooLong = errors.New("separator must be at most 3 characters")
	ErrSeparatorDigits  = errors.New("separator must not contain digits")
)

// FormatError is returned by Parse. It carries the input exactly as given,
// before normalization.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unable to parse birth number %q", e.Input)
}

// Unwrap lets errors.Is match ErrInvalidFormat.
func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

// Reason names the first validation step an input failed.
type Reason uint8

const (
	ReasonValid Reason = iota
	ReasonLength
	ReasonMissingChecksum
	ReasonChecksum
	ReasonMonth
	ReasonDate
)

// String returns a stable snake_case identifier, suitable for metric labels.
func (r Reason) String() string {
	switch r {
	case ReasonValid:
		return "valid"
	case ReasonLength:
		return "invalid_length"
	case ReasonMissingChecksum:
		return "missing_checksum"
	case ReasonChecksum:
		return "checksum_mismatch"
	case ReasonMonth:
		return "invalid_month"
	case ReasonDate:
		return "invalid_date"
	default:
		return "unknown"
	}
}

// Description returns a human readable explanation of the reason.
func (r Reason) Description() string {
	switch r {
	case ReasonValid:
		return "valid birth number"
	case ReasonLength:
		return "birth number must contain 9 or 10 digits"
	case ReasonMissingChecksum:
		return "birth numbers issued after 1953 must have 10 digits"
	case ReasonChecksum:
		return "checksum digit does not match"
	case ReasonMonth:
		return "month field does not encode a valid month"
	case ReasonDate:
		return "encoded date of birth does not exist"
	default:
		return "unknown reason"
	}
}
