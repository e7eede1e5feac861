package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// webhookSigPrefix names the digest so receivers can reject other schemes.
const webhookSigPrefix = "sha256="

// HMACSignatureService signs dispute webhook bodies with a shared secret.
// Signatures read "sha256=<hex>".
type HMACSignatureService struct{}

func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

func (s *HMACSignatureService) digest(secret, payload string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}

// Sign returns the prefixed HMAC-SHA256 of payload.
func (s *HMACSignatureService) Sign(secret string, payload string) string {
	return webhookSigPrefix + hex.EncodeToString(s.digest(secret, payload))
}

// Verify accepts a signature with or without the "sha256=" prefix and
// compares digests in constant time.
func (s *HMACSignatureService) Verify(secret string, payload string, signature string) bool {
	got, err := hex.DecodeString(strings.TrimPrefix(signature, webhookSigPrefix))
	if err != nil {
		return false
	}
	return hmac.Equal(got, s.digest(secret, payload))
}
