package domain

import "regexp"

var usernameRule = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// User is a forum member. Users are never mutated after creation.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ValidUsername reports whether name consists only of latin letters and digits.
func ValidUsername(name string) bool {
	return usernameRule.MatchString(name)
}
