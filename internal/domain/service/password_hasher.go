// Package service defines interfaces for domain services implemented by the
// infrastructure layer: hashing, token signing, OAuth, events and storage.
package service

// PasswordHasher hashes and verifies local account passwords.
type PasswordHasher interface {
	// Hash returns a salted hash of the plaintext password.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A hash in an unknown
	// format never matches.
	Check(password, hash string) bool
}
