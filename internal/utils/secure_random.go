package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateTransactionRef generates an opaque external payment reference with
// a fixed prefix and 128 bits of randomness, e.g. "TXN-9f86d081884c7d65...".
func GenerateTransactionRef() (string, error) {
	random, err := GenerateSecureRandomString(16)
	if err != nil {
		return "", err
	}
	return "TXN-" + random, nil
}
