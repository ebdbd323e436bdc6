package auth

import "unicode"

// Password strength scoring, used at signup: one point each for length
// ≥ 8, an upper-case letter, a lower-case letter, a digit, and a
// symbol, capped at 4. Signup requires at least "Fair" (score 2).

// Strength labels, indexed by score 0–4.
var strengthLabels = [5]string{"Very weak", "Weak", "Fair", "Good", "Strong"}

// MinSignupStrength is the minimum acceptable score at signup.
const MinSignupStrength = 2

// PasswordStrength returns the score (0–4) and its label.
func PasswordStrength(password string) (int, string) {
	if password == "" {
		return 0, strengthLabels[0]
	}

	score := 0
	if len(password) >= 8 {
		score++
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	for _, hit := range []bool{hasUpper, hasLower, hasDigit, hasSymbol} {
		if hit {
			score++
		}
	}
	if score > 4 {
		score = 4
	}
	return score, strengthLabels[score]
}
