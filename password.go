package main

import "golang.org/x/crypto/bcrypt"

// Room passwords are stored as bcrypt hashes, never as plaintext. An
// empty password means the room is not protected and hashes to nil.

func HashRoomPassword(password string) ([]byte, error) {
	if password == "" {
		return nil, nil
	}
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckRoomPassword reports whether attempt matches the stored hash.
// bcrypt's comparison is constant-time over the derived key.
func CheckRoomPassword(hash []byte, attempt string) bool {
	if len(hash) == 0 {
		return true
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(attempt)) == nil
}
