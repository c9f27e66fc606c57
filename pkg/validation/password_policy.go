package validation

import (
	"regexp"
	"unicode/utf8"
)

// MinPasswordLength is the shortest acceptable password, in characters.
const MinPasswordLength = 8

// Violation messages, reported in this order.
const (
	MsgPasswordTooShort = "Password must be at least 8 characters."
	MsgPasswordNoLetter = "Password must include at least one letter."
	MsgPasswordNoDigit  = "Password must include at least one number."
)

var (
	letterRe = regexp.MustCompile(`(?i)[a-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
)

// ValidatePassword checks plain against every strength rule and returns all
// violations; an empty result means the password is acceptable.
func ValidatePassword(plain string) []string {
	violations := make([]string, 0, 3)
	if utf8.RuneCountInString(plain) < MinPasswordLength {
		violations = append(violations, MsgPasswordTooShort)
	}
	if !letterRe.MatchString(plain) {
		violations = append(violations, MsgPasswordNoLetter)
	}
	if !digitRe.MatchString(plain) {
		violations = append(violations, MsgPasswordNoDigit)
	}
	return violations
}
