package utils

import "golang.org/x/crypto/bcrypt"

// HashAdminPassword returns a bcrypt hash suitable for the
// ADMIN_PASSWORD_HASH environment variable.  Used by operators when
// rotating the admin credential; the server itself only verifies.
func HashAdminPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
