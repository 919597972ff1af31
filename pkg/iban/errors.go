package iban

import "fmt"

// The parse taxonomy distinguishes three rejection classes so callers can react
// differently to user typos, unsupported countries, and transposition errors.
// Each error carries the offending input verbatim rather than only a formatted
// message, so diagnostics can show the caller's own text.

// MalformedError reports input that does not match the general IBAN shape:
// empty input, disallowed characters (including any whitespace, which is never
// trimmed), or a length that does not match the country's registered length.
type MalformedError struct {
	Input string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("iban: malformed input %q", e.Input)
}

// UnknownCountryError reports input with a valid general shape whose two-letter
// prefix is not a registered country code.
type UnknownCountryError struct {
	Input string
}

func (e *UnknownCountryError) Error() string {
	return fmt.Sprintf("iban: unknown country code in %q", e.Input)
}

// ChecksumError reports input that is structurally valid for its country but
// fails the ISO 7064 MOD-97-10 check. Input is the exact string as submitted.
type ChecksumError struct {
	Input string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("iban: checksum mismatch in %q", e.Input)
}

// IntegrityError reports a persisted or transmitted encoding that decodes to an
// invalid IBAN. Restoration re-runs the same validation as Parse; a stored form
// is never trusted to bypass it.
type IntegrityError struct {
	Encoded string
	Err     error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("iban: integrity check failed for stored value %q: %v", e.Encoded, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
