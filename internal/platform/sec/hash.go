// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// HashCode hashes a plain-text confirmation code using the bcrypt algorithm.
//
// Codes are short-lived, but they travel over email and are stored in Redis,
// so they are never persisted in plain text.
func HashCode(plainTextCode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextCode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash confirmation code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckCodeHash compares a plain-text confirmation code with its hashed version.
func CheckCodeHash(plainTextCode, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextCode))
	return err == nil
}

// NewConfirmationCode generates a random numeric confirmation code of the
// given length using a cryptographically secure source.
func NewConfirmationCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
