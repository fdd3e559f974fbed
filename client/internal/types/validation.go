package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is the shared sentinel for 404 responses.
var ErrNotFound = errors.New("not found")

// ValidateLogin checks the login form before any network call is made.
// Failures map field name to a human-readable message.
func ValidateLogin(r LoginRequest) map[string]string {
	problems := map[string]string{}
	if !looksLikeEmail(r.Email) {
		problems["email"] = "Enter a valid email address."
	}
	if r.Password == "" {
		problems["password"] = "Password is required."
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// ValidateRegister checks the registration form before any network call.
func ValidateRegister(r RegisterRequest) map[string]string {
	problems := map[string]string{}
	if !looksLikeEmail(r.Email) {
		problems["email"] = "Enter a valid email address."
	}
	if strings.TrimSpace(r.Username) == "" {
		problems["username"] = "Pick a username."
	}
	if len(r.Password) < 8 {
		problems["password"] = "Password must be at least 8 characters."
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// ValidateIntensity bounds a card intensity to the 1-10 scale.
func ValidateIntensity(v int) error {
	if v < 1 || v > 10 {
		return fmt.Errorf("intensity %d out of range 1-10", v)
	}
	return nil
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && strings.Contains(s[at:], ".")
}
