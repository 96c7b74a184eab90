package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost keeps verification in the tens-of-milliseconds band on current
// hardware.
const bcryptCost = 10

// dummyHash is a valid bcrypt hash of an unguessable value. Login paths
// compare against it when the user does not exist, so the unknown-user and
// wrong-password outcomes cost the same.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("docshare-dummy-password"), bcryptCost)

// HashPassword derives a salted one-way hash of password. The salt is
// generated by bcrypt and stored inside the hash string.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// CheckDummyPassword burns a bcrypt comparison without revealing anything.
// It always returns false.
func CheckDummyPassword(password string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}
