// Package crypto handles password hashing and verification.
package crypto

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

// hashParams are the Argon2id cost parameters used for new hashes.
// Existing hashes encode their own parameters, so these can be raised
// later without invalidating stored credentials.
var hashParams = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// HashPassword derives an Argon2id hash from the plaintext password.
// The returned string embeds the salt and parameters.
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, hashParams)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// hash. A malformed hash returns an error, a wrong password returns false.
func VerifyPassword(password, hash string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
	return match, nil
}
