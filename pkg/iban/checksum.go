package iban

// Mod97 computes the ISO 7064 MOD-97-10 remainder of a candidate IBAN. The
// first four characters (country code and check digits) are moved to the end,
// letters substitute their numeric value (A=10 .. Z=35), and the resulting
// decimal digit sequence is reduced modulo 97.
//
// The reduction streams over the input one character at a time so a 34
// character IBAN never needs arbitrary-precision arithmetic: the accumulator
// stays below 97*100 before each reduction.
//
// Returns -1 when the input is shorter than five characters or contains a
// character outside [A-Z0-9].
func Mod97(s string) int {
	if len(s) < 5 {
		return -1
	}
	acc := 0
	for i := 0; i < len(s); i++ {
		c := s[(i+4)%len(s)] // index into the rearranged string without building it
		switch {
		case c >= '0' && c <= '9':
			acc = (acc*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			// a letter contributes two decimal digits
			acc = (acc*100 + int(c-'A') + 10) % 97
		default:
			return -1
		}
	}
	return acc
}

// ChecksumValid reports whether the candidate IBAN passes the MOD-97-10 check,
// i.e. its remainder is exactly 1. Pure and deterministic.
func ChecksumValid(s string) bool {
	return Mod97(s) == 1
}
