package iban

import "regexp"

// generalShape is the country-independent IBAN structure: two uppercase
// letters, two digits, then 1 to 30 uppercase alphanumerics (5-34 total).
//
// Parse accepts only this compact normalized form. Whitespace is never
// trimmed and pretty-print separators are never stripped; a leading space, a
// trailing space, or embedded grouping all reject as malformed. This keeps
// Parse(s).String() == s for every accepted s.
var generalShape = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)

// Parse validates raw and returns the IBAN value object. Validation runs in
// order: general shape, country registration, country-specific length, MOD-97
// checksum. Each step rejects with a typed error carrying raw verbatim:
// *MalformedError, *UnknownCountryError or *ChecksumError. An IBAN that fails
// any step is never constructed.
func Parse(raw string) (IBAN, error) {
	if !generalShape.MatchString(raw) {
		return IBAN{}, &MalformedError{Input: raw}
	}
	length, ok := countryLengths[raw[:2]]
	if !ok {
		return IBAN{}, &UnknownCountryError{Input: raw}
	}
	// Length is country-dependent, so a mismatch is a structural defect rather
	// than a checksum problem.
	if len(raw) != length {
		return IBAN{}, &MalformedError{Input: raw}
	}
	if !ChecksumValid(raw) {
		return IBAN{}, &ChecksumError{Input: raw}
	}
	return IBAN{value: raw}, nil
}

// TryParse is the non-failing variant of Parse for callers that only need an
// accept/reject signal. It returns the zero IBAN and false on any invalid
// input, including the empty string.
func TryParse(raw string) (IBAN, bool) {
	parsed, err := Parse(raw)
	return parsed, err == nil
}

// MustParse is like Parse but panics on invalid input. Use for IBANs known
// valid at compile time, such as test fixtures.
func MustParse(raw string) IBAN {
	parsed, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return parsed
}
