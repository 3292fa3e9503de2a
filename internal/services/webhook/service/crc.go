package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

const signaturePrefix = "sha256="

// CRC computes the challenge response for token
func CRC(secret, token string) string {
	return sign(secret, []byte(token))
}

// ValidSignature checks a delivery signature header against the body
func ValidSignature(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	return hmac.Equal([]byte(sign(secret, body)), []byte(header))
}

func sign(secret string, msg []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(msg)
	return signaturePrefix + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
