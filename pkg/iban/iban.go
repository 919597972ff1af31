// Package iban validates and represents International Bank Account Numbers.
//
// An IBAN value is constructed only through Parse (or its TryParse/MustParse
// variants), which enforce the general structure, the per-country length
// registry and the ISO 7064 MOD-97-10 checksum before the value object exists.
// The zero IBAN represents "no IBAN" and is reported by IsZero.
package iban

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// IBAN is an immutable, validated account number in normalized form: uppercase
// letters and digits, no whitespace. The wrapped field is unexported so an
// instance violating the parse invariants cannot be built outside this
// package. IBAN is comparable: == and map keys operate on the normalized
// value, which makes equality reflexive, symmetric, transitive and consistent
// with hashing.
type IBAN struct {
	value string
}

// CountryCode returns the two-letter country code prefix.
func (i IBAN) CountryCode() string {
	if i.value == "" {
		return ""
	}
	return i.value[:2]
}

// CheckDigits returns the two check digits following the country code.
func (i IBAN) CheckDigits() string {
	if i.value == "" {
		return ""
	}
	return i.value[2:4]
}

// String returns the normalized form. For any s accepted by Parse,
// Parse(s).String() == s.
func (i IBAN) String() string {
	return i.value
}

// Format returns the human-readable display form, grouped in blocks of four
// characters separated by single spaces. It is computed on demand and is never
// part of any persisted encoding.
func (i IBAN) Format() string {
	var b strings.Builder
	b.Grow(len(i.value) + len(i.value)/4)
	for start := 0; start < len(i.value); start += 4 {
		end := start + 4
		if end > len(i.value) {
			end = len(i.value)
		}
		if start > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(i.value[start:end])
	}
	return b.String()
}

// Equal reports whether two IBANs hold the same normalized value.
func (i IBAN) Equal(other IBAN) bool {
	return i == other
}

// IsZero reports whether i is the zero value, i.e. holds no IBAN.
func (i IBAN) IsZero() bool {
	return i.value == ""
}

// MarshalText encodes the IBAN as its normalized form. The display form is
// deliberately excluded; it is recomputed after restoration. Encoding the zero
// IBAN is an error so an absent value can never round-trip into storage.
func (i IBAN) MarshalText() ([]byte, error) {
	if i.value == "" {
		return nil, fmt.Errorf("iban: cannot encode zero IBAN")
	}
	return []byte(i.value), nil
}

// UnmarshalText restores an IBAN from its stable encoding. The stored form is
// treated as trusted-but-unverified input: the full Parse pipeline runs again
// and any failure surfaces as *IntegrityError, so a corrupted encoding can
// never produce an instance that violates the parse invariants.
func (i *IBAN) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return &IntegrityError{Encoded: string(text), Err: err}
	}
	*i = parsed
	return nil
}

// Value implements driver.Valuer using the same stable encoding as
// MarshalText.
func (i IBAN) Value() (driver.Value, error) {
	if i.value == "" {
		return nil, fmt.Errorf("iban: cannot encode zero IBAN")
	}
	return i.value, nil
}

// Scan implements sql.Scanner with the same integrity contract as
// UnmarshalText: restored column data is re-validated and a corrupted row
// yields *IntegrityError instead of a broken instance.
func (i *IBAN) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return i.UnmarshalText([]byte(v))
	case []byte:
		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("iban: cannot scan %T", src)
	}
}
