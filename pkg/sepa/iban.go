package sepa

import "regexp"

const (
	ibanMinLength = 15
	ibanMaxLength = 34
)

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]+$`)

// CheckIBAN validates the structure of an IBAN (15 to 34 characters, country
// code, check digits, alphanumeric BBAN) and its ISO 7064 MOD 97-10 checksum.
// The input must already be free of spaces and uppercase.
func CheckIBAN(iban string) bool {
	if len(iban) < ibanMinLength || len(iban) > ibanMaxLength {
		return false
	}
	if !ibanPattern.MatchString(iban) {
		return false
	}
	return mod97(iban[4:]+iban[:4]) == 1
}

// mod97 computes the remainder of the numeral obtained by replacing each
// letter with its two-digit value (A=10 ... Z=35), one digit at a time so the
// numeral never has to fit in an integer.
func mod97(s string) int {
	remainder := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			remainder = (remainder*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			v := int(c-'A') + 10
			remainder = (remainder*10 + v/10) % 97
			remainder = (remainder*10 + v%10) % 97
		}
	}
	return remainder
}
