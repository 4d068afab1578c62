package utils

import (
	"crypto/rand"
	"encoding/hex"
)

func GenerateRandomToken(length int) string {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)[:length]
}
