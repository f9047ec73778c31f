package birthnumber_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"rcgate/pkg/birthnumber"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type ParseSuite struct {
	suite.Suite
}

func TestParseSuite(t *testing.T) {
	suite.Run(t, new(ParseSuite))
}

func (s *ParseSuite) TestShortForm() {
	s.Run("accepts pre-1954 number without checksum", func() {
		bn, err := birthnumber.Parse("300101123", now)
		s.Require().NoError(err)
		s.Equal("300101123", bn.Normalized())
		s.Equal("300101/123", bn.Formatted())
		s.Equal(time.Date(1930, time.January, 1, 0, 0, 0, 0, time.UTC), bn.DateOfBirth())
		s.True(bn.IsMale())
		s.False(bn.HasChecksum())
	})

	s.Run("accepts 1953 as the last unsummed year", func() {
		bn, err := birthnumber.Parse("530101001", now)
		s.Require().NoError(err)
		s.Equal(1953, bn.Year())
	})

	s.Run("rejects nine digits resolving after 1953", func() {
		for _, input := range []string{"985601234", "540101001", "200101001"} {
			_, ok := birthnumber.TryParse(input, now)
			s.False(ok, input)
			s.Equal(birthnumber.ReasonMissingChecksum, birthnumber.Diagnose(input, now), input)
		}
	})

	s.Run("never resolves to a future year", func() {
		// 27 would be 2027 in 2026, so it falls back to 1927.
		bn, err := birthnumber.Parse("270101001", now)
		s.Require().NoError(err)
		s.Equal(1927, bn.Year())
	})

	s.Run("resolution depends on the supplied clock", func() {
		later := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
		_, ok := birthnumber.TryParse("300101123", later)
		s.False(ok, "1930 becomes 2030 once 2030 is reached")
	})

	s.Run("decodes female offset", func() {
		bn, err := birthnumber.Parse("305101001", now)
		s.Require().NoError(err)
		s.True(bn.IsFemale())
		s.Equal(time.January, bn.Month())
	})
}

func (s *ParseSuite) TestLongForm() {
	s.Run("accepts valid checksum", func() {
		bn, err := birthnumber.Parse("9856011231", now)
		s.Require().NoError(err)
		s.Len(bn.Normalized(), 10)
		s.True(bn.HasChecksum())
		s.True(bn.IsFemale())
		s.Equal(time.Date(1998, time.June, 1, 0, 0, 0, 0, time.UTC), bn.DateOfBirth())
	})

	s.Run("rejects wrong checksum", func() {
		_, ok := birthnumber.TryParse("9856011234", now)
		s.False(ok)
		s.Equal(birthnumber.ReasonChecksum, birthnumber.Diagnose("9856011234", now))
	})

	s.Run("remainder 10 is written as 0", func() {
		bn, err := birthnumber.Parse("8001010040", now)
		s.Require().NoError(err)
		s.Equal(1980, bn.Year())

		_, ok := birthnumber.TryParse("8001010041", now)
		s.False(ok)
	})

	s.Run("reads two-digit year as 19yy", func() {
		bn, err := birthnumber.Parse("0001010010", now)
		s.Require().NoError(err)
		s.Equal(1900, bn.Year())
	})

	s.Run("offsets after 2003 do not apply to 19yy", func() {
		_, ok := birthnumber.TryParse("0471010012", now)
		s.False(ok)
		s.Equal(birthnumber.ReasonMonth, birthnumber.Diagnose("0471010012", now))
	})
}

func (s *ParseSuite) TestMonthBoundaries() {
	s.Run("month 50 matches no offset and fails", func() {
		s.Equal(birthnumber.ReasonMonth, birthnumber.Diagnose("8050010012", now))
	})

	s.Run("month 51 is female January", func() {
		bn, err := birthnumber.Parse("8051010011", now)
		s.Require().NoError(err)
		s.True(bn.IsFemale())
		s.Equal(time.January, bn.Month())
	})

	s.Run("month 13 and month 0 are rejected", func() {
		s.Equal(birthnumber.ReasonMonth, birthnumber.Diagnose("301301001", now))
		s.Equal(birthnumber.ReasonMonth, birthnumber.Diagnose("300001001", now))
	})
}

func (s *ParseSuite) TestCalendarValidity() {
	s.Run("rejects 31 April despite valid checksum", func() {
		s.Equal(birthnumber.ReasonDate, birthnumber.Diagnose("8604310011", now))
	})

	s.Run("rejects day 0", func() {
		s.Equal(birthnumber.ReasonDate, birthnumber.Diagnose("300100001", now))
	})

	s.Run("accepts 29 February in a leap year", func() {
		bn, err := birthnumber.Parse("8002290010", now)
		s.Require().NoError(err)
		s.Equal(29, bn.Day())
		s.Equal(time.February, bn.Month())
	})

	s.Run("rejects 29 February in a common year", func() {
		s.Equal(birthnumber.ReasonDate, birthnumber.Diagnose("8102290010", now))
	})

	s.Run("1900 is not a leap year", func() {
		s.Equal(birthnumber.ReasonDate, birthnumber.Diagnose("0002290013", now))
	})
}

func (s *ParseSuite) TestNormalization() {
	s.Run("separators and letters are ignored", func() {
		messy, err := birthnumber.Parse("98-56/01-1231", now)
		s.Require().NoError(err)
		clean, err := birthnumber.Parse("9856011231", now)
		s.Require().NoError(err)
		s.Equal(clean, messy)
		s.True(clean.Equal(messy))
	})

	s.Run("messy input with wrong checksum is rejected like the clean one", func() {
		s.Equal(birthnumber.Diagnose("9856011234", now), birthnumber.Diagnose("98-56/01-1234", now))
	})

	s.Run("rejects wrong digit counts", func() {
		for _, input := range []string{"", "abc", "12345678", "12345678901", "RČ: 736028/07199"} {
			s.Equal(birthnumber.ReasonLength, birthnumber.Diagnose(input, now), input)
		}
	})

	s.Run("non-ASCII digits are stripped", func() {
		s.Equal(birthnumber.ReasonLength, birthnumber.Diagnose("٣٠٠١٠١١٢٣", now))
	})

	s.Run("Normalize keeps ASCII digits in order", func() {
		s.Equal("7360280719", birthnumber.Normalize(" 736 028 / 0719 "))
	})
}

func (s *ParseSuite) TestErrors() {
	s.Run("Parse returns FormatError with the raw input", func() {
		_, err := birthnumber.Parse("98-56/01-1234", now)
		s.Require().Error(err)
		s.ErrorIs(err, birthnumber.ErrInvalidFormat)

		var formatErr *birthnumber.FormatError
		s.Require().True(errors.As(err, &formatErr))
		s.Equal("98-56/01-1234", formatErr.Input)
	})

	s.Run("ParseOrNil handles nil and invalid input", func() {
		s.Nil(birthnumber.ParseOrNil(nil, now))
		bad := "nope"
		s.Nil(birthnumber.ParseOrNil(&bad, now))
		good := "736028/0719"
		bn := birthnumber.ParseOrNil(&good, now)
		s.Require().NotNil(bn)
		s.Equal("7360280719", bn.Normalized())
	})

	s.Run("MustParse panics on invalid input", func() {
		s.Panics(func() { birthnumber.MustParse("123", now) })
		s.NotPanics(func() { birthnumber.MustParse("7360280719", now) })
	})
}

func (s *ParseSuite) TestIdempotence() {
	for _, input := range []string{"300101123", "736028/0719", "98-56/01-1231", "8001010040"} {
		first, ok := birthnumber.TryParse(input, now)
		s.Require().True(ok, input)
		second, ok := birthnumber.TryParse(first.Normalized(), now)
		s.Require().True(ok, input)
		s.Equal(first, second, input)
	}
}

func (s *ParseSuite) TestRollingCentury() {
	p := birthnumber.NewParser(
		birthnumber.WithClock(func() time.Time { return now }),
		birthnumber.WithRollingCentury(),
	)

	s.Run("ten digits resolve into the current century", func() {
		bn, err := p.Parse("2510150016")
		s.Require().NoError(err)
		s.Equal(2025, bn.Year())
	})

	s.Run("plus 70 is female after 2003", func() {
		bn, err := p.Parse("0471010012")
		s.Require().NoError(err)
		s.Equal(2004, bn.Year())
		s.Equal(time.January, bn.Month())
		s.True(bn.IsFemale())
	})

	s.Run("plus 20 is male after 2003", func() {
		bn, err := p.Parse("0421010018")
		s.Require().NoError(err)
		s.Equal(time.January, bn.Month())
		s.True(bn.IsMale())
	})

	s.Run("plus 50 still applies after 2003", func() {
		bn, err := p.Parse("0451010010")
		s.Require().NoError(err)
		s.True(bn.IsFemale())
		s.Equal(time.January, bn.Month())
	})

	s.Run("2000 is a leap year", func() {
		bn, err := p.Parse("0002290013")
		s.Require().NoError(err)
		s.Equal(2000, bn.Year())
	})

	s.Run("future years fall back a century", func() {
		bn, err := p.Parse("9856011231")
		s.Require().NoError(err)
		s.Equal(1998, bn.Year())
	})

	s.Run("nine digits behave as under the fixed policy", func() {
		s.Equal(birthnumber.Diagnose("985601234", now), p.Diagnose("985601234"))
		_, ok := p.TryParse("300101123")
		s.True(ok)
	})

	s.Run("Inspect reports value and reason together", func() {
		bn, reason := p.Inspect("0471010012", now)
		s.Equal(birthnumber.ReasonValid, reason)
		s.Equal(2004, bn.Year())

		bn, reason = p.Inspect("0471010013", now)
		s.Equal(birthnumber.ReasonChecksum, reason)
		s.True(bn.IsZero())
	})

	s.Run("ParseAt overrides the clock", func() {
		_, err := p.ParseAt("2601010016", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
		s.Require().NoError(err, "26 resolves to 1926 in 2025 and still carries a valid checksum")
	})
}

func (s *ParseSuite) TestParserDefaults() {
	p := birthnumber.NewParser(birthnumber.WithClock(func() time.Time { return now }))
	s.Equal(birthnumber.CenturyFixed, p.Policy())

	bn, err := p.Parse("0471010012")
	s.Require().Error(err)
	s.True(bn.IsZero())
	s.Equal(birthnumber.ReasonMonth, p.Diagnose("0471010012"))

	p = birthnumber.NewParser(birthnumber.WithClock(nil))
	_, ok := p.TryParse("7360280719")
	s.True(ok, "nil clock keeps the default")
}
