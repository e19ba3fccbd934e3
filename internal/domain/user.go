// Package domain contains entities without logic, just meta-data and validation.
package domain

import "strings"

const AllowedEmailDomain = "@mylaurier.ca"

type UserID string

type User struct {
	ID    UserID `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NormalizeEmail lowercases and trims an email before any lookup or store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsLaurierEmail(email string) bool {
	return strings.HasSuffix(email, AllowedEmailDomain)
}

// ValidIdentity rejects empty or whitespace-only identities. An identity that
// trims to nothing must never pass as authenticated.
func ValidIdentity(id UserID) bool {
	return strings.TrimSpace(string(id)) != ""
}
