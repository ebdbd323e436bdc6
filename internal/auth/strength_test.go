package auth

import "testing"

func TestPasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		score    int
		label    string
	}{
		{"", 0, "Very weak"},
		{"abc", 1, "Weak"},              // lower only
		{"abcdefgh", 2, "Fair"},         // length + lower
		{"Abcdefgh", 3, "Good"},         // length + upper + lower
		{"Abcdefg1", 4, "Strong"},       // length + upper + lower + digit
		{"Abcdef1!", 4, "Strong"},       // all five hits, capped at 4
		{"aB1!", 4, "Strong"},           // short, but hits all four classes
	}
	for _, tc := range cases {
		score, label := PasswordStrength(tc.password)
		if score != tc.score || label != tc.label {
			t.Errorf("PasswordStrength(%q) = %d, %q; want %d, %q",
				tc.password, score, label, tc.score, tc.label)
		}
	}
}

func TestPasswordStrength_MinSignupBoundary(t *testing.T) {
	if score, _ := PasswordStrength("abcdefgh"); score < MinSignupStrength {
		t.Errorf("8 lowercase letters scored %d, below the signup minimum", score)
	}
	if score, _ := PasswordStrength("abc"); score >= MinSignupStrength {
		t.Errorf("3 lowercase letters scored %d, should be below the signup minimum", score)
	}
}
