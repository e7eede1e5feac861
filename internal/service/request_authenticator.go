package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"
	"serving-broker/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// Billing headers attached to every paid provider request.
const (
	HeaderUser        = "X-Broker-User"
	HeaderProvider    = "X-Broker-Provider"
	HeaderNonce       = "X-Broker-Nonce"
	HeaderTimestamp   = "X-Broker-Timestamp"
	HeaderRequestHash = "X-Broker-Request-Hash"
	HeaderSignature   = "X-Broker-Signature"
)

// nonceAttempts bounds the retries when a generated nonce collides.
const nonceAttempts = 3

// seenNoncePrefix separates nonces consumed by verification from those
// reserved at issuance.
const seenNoncePrefix = "seen:"

// Authenticator implements ports.RequestAuthenticator.
type Authenticator struct {
	*session
	directory ports.ProviderDirectory
	nonces    ports.NonceStore
}

// BuildCanonicalString constructs the string signed for a request.
// Format: "user|provider|nonce|timestamp|requestHash" with lowercase hex.
func BuildCanonicalString(user, provider common.Address, nonce string, timestamp int64, requestHash string) string {
	return strings.Join([]string{
		strings.ToLower(user.Hex()),
		strings.ToLower(provider.Hex()),
		nonce,
		strconv.FormatInt(timestamp, 10),
		strings.ToLower(requestHash),
	}, "|")
}

// RequestHash is the keccak256 of the request body. An absent body hashes
// as empty input.
func RequestHash(body []byte) string {
	return crypto.Keccak256Hash(body).Hex()
}

// AcknowledgeProvider records on the ledger that the user accepts the
// provider's service terms. Repeated calls are no-ops.
func (a *Authenticator) AcknowledgeProvider(ctx context.Context, provider common.Address) error {
	if _, err := a.directory.GetService(ctx, provider); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ledger.Acknowledge(ctx, a.user(), provider); err != nil {
		if domain.IsRejection(err) {
			return toAppError(err, nil)
		}
		return apperror.ErrNetwork(fmt.Errorf("acknowledge provider: %w", err))
	}
	a.record(ctx, domain.AuditActionAcknowledge, &provider, 0, nil, "")
	return nil
}

// GetRequestHeaders issues a single-use set of billing headers for one
// request to provider. body may be nil.
func (a *Authenticator) GetRequestHeaders(ctx context.Context, provider common.Address, body []byte) (map[string]string, error) {
	if _, err := a.directory.GetService(ctx, provider); err != nil {
		return nil, err
	}

	u := a.user()
	acked, err := retryRead(ctx, a.opts.ReadRetries, func() (bool, error) {
		return a.ledger.IsAcknowledged(ctx, u, provider)
	})
	if err != nil {
		return nil, apperror.ErrUpstream(fmt.Errorf("read acknowledgement: %w", err))
	}
	if !acked {
		return nil, apperror.ErrProviderNotAcknowledged()
	}

	sub, err := a.readSubAccount(ctx, provider)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.Balance <= 0 {
		return nil, apperror.ErrSubAccountEmpty()
	}

	nonce, err := a.reserveNonce(ctx)
	if err != nil {
		return nil, err
	}

	ts := a.clock.Now().Unix()
	hash := RequestHash(body)
	sig, err := a.signer.SignText([]byte(BuildCanonicalString(u, provider, nonce, ts, hash)))
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	headersIssued.Inc()
	return map[string]string{
		HeaderUser:        u.Hex(),
		HeaderProvider:    provider.Hex(),
		HeaderNonce:       nonce,
		HeaderTimestamp:   strconv.FormatInt(ts, 10),
		HeaderRequestHash: hash,
		HeaderSignature:   hexutil.Encode(sig),
	}, nil
}

func (a *Authenticator) reserveNonce(ctx context.Context) (string, error) {
	owner := strings.ToLower(a.user().Hex())
	for i := 0; i < nonceAttempts; i++ {
		nonce := uuid.NewString()
		ok, err := a.nonces.CheckAndSet(ctx, owner, nonce, a.opts.NonceTTL)
		if err != nil {
			return "", apperror.ErrUpstream(fmt.Errorf("reserve nonce: %w", err))
		}
		if ok {
			return nonce, nil
		}
	}
	return "", apperror.InternalError(fmt.Errorf("no unused nonce after %d attempts", nonceAttempts))
}

// GetServiceMetadata returns where and which model to call for provider.
func (a *Authenticator) GetServiceMetadata(ctx context.Context, provider common.Address) (*ports.ServiceMetadata, error) {
	svc, err := a.directory.GetService(ctx, provider)
	if err != nil {
		return nil, err
	}
	return &ports.ServiceMetadata{Endpoint: svc.Endpoint, Model: svc.Model}, nil
}

// VerifyRequestHeaders checks a header set on the provider side. The nonce
// is consumed, so a second verification of the same headers fails.
func (a *Authenticator) VerifyRequestHeaders(ctx context.Context, headers map[string]string, body []byte) (common.Address, error) {
	get := func(name string) string { return headerValue(headers, name) }
	userHex, providerHex := get(HeaderUser), get(HeaderProvider)
	nonce, tsStr := get(HeaderNonce), get(HeaderTimestamp)
	hash, sigHex := get(HeaderRequestHash), get(HeaderSignature)
	if userHex == "" || providerHex == "" || nonce == "" || tsStr == "" || hash == "" || sigHex == "" {
		return common.Address{}, apperror.ErrMissingAuthHeaders()
	}
	if !common.IsHexAddress(userHex) || !common.IsHexAddress(providerHex) {
		return common.Address{}, apperror.ErrInvalidSignature()
	}
	user, provider := common.HexToAddress(userHex), common.HexToAddress(providerHex)

	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return common.Address{}, apperror.ErrTimestampExpired()
	}
	drift := a.clock.Now().Sub(time.Unix(ts, 0))
	if drift < 0 {
		drift = -drift
	}
	if drift > a.opts.MaxTimestampDrift {
		return common.Address{}, apperror.ErrTimestampExpired()
	}

	if !strings.EqualFold(hash, RequestHash(body)) {
		return common.Address{}, apperror.ErrRequestHashMismatch()
	}

	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return common.Address{}, apperror.ErrInvalidSignature()
	}
	signer, err := RecoverText([]byte(BuildCanonicalString(user, provider, nonce, ts, hash)), sig)
	if err != nil || signer != user {
		return common.Address{}, apperror.ErrInvalidSignature()
	}

	fresh, err := a.nonces.CheckAndSet(ctx, seenNoncePrefix+strings.ToLower(user.Hex()), nonce, a.opts.NonceTTL)
	if err != nil {
		return common.Address{}, apperror.ErrUpstream(fmt.Errorf("check nonce: %w", err))
	}
	if !fresh {
		return common.Address{}, apperror.ErrNonceUsed()
	}
	return user, nil
}

// headerValue looks name up exactly, then case-insensitively.
func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

var _ ports.RequestAuthenticator = (*Authenticator)(nil)
