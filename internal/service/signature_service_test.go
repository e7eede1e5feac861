package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHMACSignatureService_SignFormat(t *testing.T) {
	svc := NewHMACSignatureService()
	payload := `{"event_type":"SETTLEMENT_DISPUTE","data":{"fee":42}}`

	signature := svc.Sign("hook-secret", payload)
	assert.Regexp(t, `^sha256=[0-9a-f]{64}$`, signature)
	assert.Equal(t, signature, svc.Sign("hook-secret", payload))
}

func TestHMACSignatureService_Verify(t *testing.T) {
	svc := NewHMACSignatureService()
	payload := `{"response_id":"chatcmpl-1"}`
	good := svc.Sign("k", payload)

	tests := []struct {
		name    string
		secret  string
		payload string
		sig     string
		want    bool
	}{
		{"prefixed", "k", payload, good, true},
		{"bare hex", "k", payload, strings.TrimPrefix(good, "sha256="), true},
		{"wrong secret", "other", payload, good, false},
		{"tampered payload", "k", `{"response_id":"chatcmpl-2"}`, good, false},
		{"not hex", "k", payload, "sha256=zz", false},
		{"truncated", "k", payload, good[:20], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Verify(tt.secret, tt.payload, tt.sig))
		})
	}
}
