package iban

import (
	"errors"
	"testing"
)

// FuzzParse verifies the trust-boundary invariants on arbitrary input: Parse
// never panics, never constructs an invalid instance, and classifies every
// rejection into exactly one taxonomy error carrying the input verbatim.
func FuzzParse(f *testing.F) {
	f.Add("NL91ABNA0417164300")
	f.Add("NL12ABNA0417164300")
	f.Add("UU345678345543234")
	f.Add("Shenanigans!")
	f.Add(" NL91ABNA0417164300")
	f.Add("NL91 ABNA 0417 1643 00")
	f.Add("")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("DE89370400440532013000")

	f.Fuzz(func(t *testing.T, input string) {
		parsed, err := Parse(input)

		if err != nil {
			if !parsed.IsZero() {
				t.Errorf("rejected input %q still produced a value", input)
			}
			var malformed *MalformedError
			var unknown *UnknownCountryError
			var checksum *ChecksumError
			switch {
			case errors.As(err, &malformed):
				if malformed.Input != input {
					t.Errorf("malformed error altered input: %q != %q", malformed.Input, input)
				}
			case errors.As(err, &unknown):
				if unknown.Input != input {
					t.Errorf("unknown-country error altered input: %q != %q", unknown.Input, input)
				}
			case errors.As(err, &checksum):
				if checksum.Input != input {
					t.Errorf("checksum error altered input: %q != %q", checksum.Input, input)
				}
			default:
				t.Errorf("rejection outside the taxonomy: %v", err)
			}
			return
		}

		// Accepted input round-trips unchanged and satisfies every invariant.
		if parsed.String() != input {
			t.Errorf("accepted input was altered: %q != %q", parsed.String(), input)
		}
		if !ChecksumValid(parsed.String()) {
			t.Errorf("accepted input fails checksum: %q", input)
		}
		if LengthForCountryCode(parsed.CountryCode()) != len(parsed.String()) {
			t.Errorf("accepted input has wrong length for country: %q", input)
		}

		reparsed, err := Parse(parsed.String())
		if err != nil {
			t.Errorf("accepted input failed re-parse: %v", err)
		}
		if !reparsed.Equal(parsed) {
			t.Errorf("re-parse changed value: %q", input)
		}
	})
}

// FuzzTryParse keeps the non-failing entry point consistent with Parse.
func FuzzTryParse(f *testing.F) {
	f.Add("NL91ABNA0417164300")
	f.Add("not an iban")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		fromTry, ok := TryParse(input)
		fromParse, err := Parse(input)

		if ok != (err == nil) {
			t.Errorf("TryParse and Parse disagree on %q", input)
		}
		if fromTry != fromParse {
			t.Errorf("TryParse and Parse produced different values for %q", input)
		}
	})
}
