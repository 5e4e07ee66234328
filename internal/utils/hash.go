package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// KeyHasher derives the stored form of integration API keys: the hex
// HMAC-SHA256 of the plaintext under the server's hash key. Lookups hash the
// presented key the same way, so plaintext keys never reach the database.
type KeyHasher struct {
	key []byte
}

func NewKeyHasher(key string) KeyHasher {
	return KeyHasher{key: []byte(key)}
}

// Sum returns the lookup hash of plaintext.
func (h KeyHasher) Sum(plaintext string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}
