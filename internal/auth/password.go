package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted one-way digest of the given plaintext.
// The digest is self-describing (algorithm and cost are embedded), so the
// cost can be raised later without invalidating stored hashes.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
// A malformed digest is a verification failure, never a panic.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
