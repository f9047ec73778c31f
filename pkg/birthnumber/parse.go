package birthnumber

import (
	"strings"
	"time"
)

const (
	shortLen = 9
	longLen  = 10

	// lastUnsummedYear is the last birth year issued without a checksum digit.
	lastUnsummedYear = 1953

	// extendedSerialsFrom is the year after which the +20/+70 month offsets
	// are in use.
	extendedSerialsFrom = 2003

	femaleOffset         = 50
	maleExtendedOffset   = 20
	femaleExtendedOffset = 70
)

// CenturyPolicy decides how the two-digit year of a ten-digit number is
// expanded. Nine-digit numbers are always resolved against the current year.
type CenturyPolicy uint8

const (
	// CenturyFixed reads every ten-digit number as 19yy.
	CenturyFixed CenturyPolicy = iota
	// CenturyRolling resolves ten-digit numbers the same way as nine-digit
	// ones: the current century, or the previous one if that would place the
	// birth in the future.
	CenturyRolling
)

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the source of "now" used for century resolution.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithRollingCentury switches ten-digit numbers to CenturyRolling.
func WithRollingCentury() Option {
	return func(p *Parser) {
		p.policy = CenturyRolling
	}
}

// WithCenturyPolicy sets the century policy explicitly.
func WithCenturyPolicy(policy CenturyPolicy) Option {
	return func(p *Parser) {
		p.policy = policy
	}
}

// Parser parses birth numbers with an injected clock and century policy.
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	now    func() time.Time
	policy CenturyPolicy
}

// NewParser builds a Parser. Without WithClock it reads time.Now.
func NewParser(opts ...Option) *Parser {
	p := &Parser{now: time.Now, policy: CenturyFixed}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Policy returns the parser's century policy.
func (p *Parser) Policy() CenturyPolicy {
	return p.policy
}

// Parse validates input and returns the decoded birth number, or a
// *FormatError wrapping ErrInvalidFormat.
func (p *Parser) Parse(input string) (BirthNumber, error) {
	return p.ParseAt(input, p.now())
}

// ParseAt is Parse with an explicit "now".
func (p *Parser) ParseAt(input string, now time.Time) (BirthNumber, error) {
	bn, reason := parse(input, now, p.policy)
	if reason != ReasonValid {
		return BirthNumber{}, &FormatError{Input: input}
	}
	return bn, nil
}

// TryParse is Parse without the error: ok is false for any rejected input.
func (p *Parser) TryParse(input string) (BirthNumber, bool) {
	bn, reason := parse(input, p.now(), p.policy)
	return bn, reason == ReasonValid
}

// Diagnose re-runs validation and reports the first step that failed, or
// ReasonValid.
func (p *Parser) Diagnose(input string) Reason {
	_, reason := parse(input, p.now(), p.policy)
	return reason
}

// Inspect parses input at now and returns the value together with the
// outcome. The value is the zero BirthNumber unless reason is ReasonValid.
func (p *Parser) Inspect(input string, now time.Time) (BirthNumber, Reason) {
	return parse(input, now, p.policy)
}

// Parse validates input under CenturyFixed, resolving short-form years
// against now.
func Parse(input string, now time.Time) (BirthNumber, error) {
	bn, reason := parse(input, now, CenturyFixed)
	if reason != ReasonValid {
		return BirthNumber{}, &FormatError{Input: input}
	}
	return bn, nil
}

// TryParse reports ok=false instead of returning an error. It never panics.
func TryParse(input string, now time.Time) (BirthNumber, bool) {
	bn, reason := parse(input, now, CenturyFixed)
	return bn, reason == ReasonValid
}

// ParseOrNil returns nil for a nil input or any rejected input.
func ParseOrNil(input *string, now time.Time) *BirthNumber {
	if input == nil {
		return nil
	}
	bn, ok := TryParse(*input, now)
	if !ok {
		return nil
	}
	return &bn
}

// MustParse is like Parse but panics on invalid input.
// Use only in tests or when the value is known to be valid.
func MustParse(input string, now time.Time) BirthNumber {
	bn, err := Parse(input, now)
	if err != nil {
		panic(err)
	}
	return bn
}

// Diagnose reports why input is rejected under CenturyFixed, or ReasonValid.
func Diagnose(input string, now time.Time) Reason {
	_, reason := parse(input, now, CenturyFixed)
	return reason
}

// Normalize drops every character that is not an ASCII digit.
func Normalize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		if c := input[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func parse(input string, now time.Time, policy CenturyPolicy) (BirthNumber, Reason) {
	digits := Normalize(input)
	if len(digits) != shortLen && len(digits) != longLen {
		return BirthNumber{}, ReasonLength
	}

	yy := atoi(digits[0:2])
	mm := atoi(digits[2:4])
	dd := atoi(digits[4:6])

	var year int
	if len(digits) == longLen && policy == CenturyFixed {
		year = 1900 + yy
	} else {
		year = resolveCentury(yy, now.Year())
	}

	if len(digits) == longLen || year > lastUnsummedYear {
		if len(digits) != longLen {
			return BirthNumber{}, ReasonMissingChecksum
		}
		if !checksumValid(digits) {
			return BirthNumber{}, ReasonChecksum
		}
	}

	month, sex := decodeMonth(mm, year)
	if month < 1 || month > 12 {
		return BirthNumber{}, ReasonMonth
	}
	if dd < 1 || dd > daysIn(time.Month(month), year) {
		return BirthNumber{}, ReasonDate
	}

	return BirthNumber{
		normalized: digits,
		year:       year,
		month:      time.Month(month),
		day:        dd,
		sex:        sex,
	}, ReasonValid
}

// resolveCentury places yy in the current century unless that is later than
// currentYear, in which case it moves to the previous one.
func resolveCentury(yy, currentYear int) int {
	year := currentYear/100*100 + yy
	if year > currentYear {
		year -= 100
	}
	return year
}

// checksumValid expects exactly ten digits. The first nine, read as an
// integer mod 11, must equal the tenth, with a remainder of 10 written as 0.
func checksumValid(digits string) bool {
	expected := atoi(digits[:shortLen]) % 11
	if expected == 10 {
		expected = 0
	}
	return expected == int(digits[shortLen]-'0')
}

// decodeMonth strips the month offset and returns the sex it encodes. The
// rules are ordered; the first match wins.
func decodeMonth(mm, year int) (int, Sex) {
	switch {
	case mm > femaleExtendedOffset && year > extendedSerialsFrom:
		return mm - femaleExtendedOffset, SexFemale
	case mm > femaleOffset:
		return mm - femaleOffset, SexFemale
	case mm > maleExtendedOffset && year > extendedSerialsFrom:
		return mm - maleExtendedOffset, SexMale
	default:
		return mm, SexMale
	}
}

// daysIn returns the length of month m in year, honouring Gregorian leap
// years. m must be in 1..12.
func daysIn(m time.Month, year int) int {
	switch m {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if isLeap(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// atoi converts a string of ASCII digits. Callers guarantee the input is
// digits only and at most nine long.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
