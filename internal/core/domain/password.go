package domain

import "unicode"

// IsStrongPassword reports whether pw satisfies the password policy:
// at least 8 characters with at least one upper-case letter, one lower-case
// letter, one decimal digit, and one symbol. A symbol is any rune that is
// neither a letter nor a digit nor whitespace, so ASCII punctuation counts
// regardless of locale.
func IsStrongPassword(pw string) bool {
	var upper, lower, digit, symbol bool
	length := 0
	for _, r := range pw {
		length++
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			symbol = true
		}
	}
	return length >= 8 && upper && lower && digit && symbol
}
