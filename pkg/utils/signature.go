package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// GetMessageDigestOrSignature returns the hex SHA-256 digest of message, or
// its HMAC when a secret key is provided. Used to sign webhook payloads the
// X-Hub-Signature-256 way.
func GetMessageDigestOrSignature(message, key []byte) (string, error) {
	if len(key) == 0 {
		sum := sha256.Sum256(message)
		return hex.EncodeToString(sum[:]), nil
	}
	mac := hmac.New(sha256.New, key)
	if _, err := mac.Write(message); err != nil {
		return "", err
	}
	return hex.EncodeToString(mac.Sum(nil)), nil
}
