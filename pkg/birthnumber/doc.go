// Package birthnumber parses and validates Czech and Slovak birth numbers
// ("rodné číslo").
//
// A birth number encodes the holder's date of birth and sex in nine digits
// (issued before 1954) or ten digits (from 1954, the last one a mod-11
// checksum):
//
//	YYMMDD/SSS    nine-digit form, no checksum
//	YYMMDD/SSSC   ten-digit form, C = (YYMMDDSSS mod 11) with 10 mapped to 0
//
// The month field carries offsets: +50 for women, and for births after 2003
// +20 (men) or +70 (women) once the serial space for a day is exhausted.
//
// # Domain Purity
//
// The package-level functions never read the system clock. The two-digit year
// of the short form is resolved against a caller-supplied "now", so results
// are reproducible regardless of when they run:
//
//	bn, err := birthnumber.Parse("736028/0719", now)
//	if err != nil {
//		// errors.Is(err, birthnumber.ErrInvalidFormat)
//	}
//	bn.DateOfBirth() // 1973-10-28
//	bn.IsFemale()    // true
//
// A Parser built without WithClock reads time.Now on each Parse, TryParse and
// Diagnose call. ParseAt and Inspect take "now" explicitly.
//
// A successful parse only guarantees structural and calendrical consistency.
// It says nothing about whether the number was ever issued.
package birthnumber
