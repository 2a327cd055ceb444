package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the bcrypt hash stored in customers.password_hash.
// The cost comes from BCRYPT_COST so environments can trade hashing time
// against login latency without a code change.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches a stored hash.  Login
// treats any mismatch or malformed hash the same way, so only the
// boolean outcome is exposed.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
