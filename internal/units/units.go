// Package units converts integer base-unit amounts, as returned by contract
// calls, into human decimal values.
//
// Every token the reports touch uses 18 decimals. Conversion is an exponent
// shift on an arbitrary-precision decimal, so it never rounds.
package units

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals is the fixed-point scale of every amount the reports read.
const Decimals = 18

// ErrMalformed is wrapped by every ParseError.
var ErrMalformed = errors.New("malformed base-unit amount")

// ParseError reports raw call output that does not start with a number.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("parse %q: %v", e.Input, ErrMalformed)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}

// LeadingNumber parses the first whitespace-separated token of raw.
// CLI backends append annotations such as "1000000 [1e6]"; only the first
// token is significant.
func LeadingNumber(raw string) (decimal.Decimal, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return decimal.Zero, &ParseError{Input: raw}
	}
	d, err := decimal.NewFromString(fields[0])
	if err != nil {
		return decimal.Zero, &ParseError{Input: raw, Err: err}
	}
	return d, nil
}

// FromBaseUnits returns raw / 10^18.
func FromBaseUnits(raw string) (decimal.Decimal, error) {
	d, err := LeadingNumber(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(-Decimals), nil
}

// FromBaseUnitsTwice returns raw / 10^18 / 10^18.
//
// BGT reward vaults report rewardRate with an extra 1e18 precision factor,
// and the reports have always scaled it down twice.
func FromBaseUnitsTwice(raw string) (decimal.Decimal, error) {
	d, err := LeadingNumber(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(-2 * Decimals), nil
}
