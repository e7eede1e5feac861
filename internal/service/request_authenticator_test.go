package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports/mocks"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func readyHarness(t *testing.T) *harness {
	h := newHarness(t)
	h.fund(t, chatProvider, domain.ServiceChatbot, 100, 50)
	require.NoError(t, h.broker.Auth.AcknowledgeProvider(context.Background(), chatProvider))
	return h
}

func TestAuthenticator_GetRequestHeaders(t *testing.T) {
	h := readyHarness(t)
	body := []byte(`{"model":"llama-3-8b","messages":[]}`)

	headers, err := h.broker.Auth.GetRequestHeaders(context.Background(), chatProvider, body)
	require.NoError(t, err)

	assert.Equal(t, h.user().Hex(), headers[HeaderUser])
	assert.Equal(t, chatProvider.Hex(), headers[HeaderProvider])
	assert.NotEmpty(t, headers[HeaderNonce])
	assert.Equal(t, strconv.FormatInt(t0.Unix(), 10), headers[HeaderTimestamp])
	assert.Equal(t, crypto.Keccak256Hash(body).Hex(), headers[HeaderRequestHash])

	sig, err := hexutil.Decode(headers[HeaderSignature])
	require.NoError(t, err)
	canonical := BuildCanonicalString(h.user(), chatProvider, headers[HeaderNonce], t0.Unix(), headers[HeaderRequestHash])
	signer, err := RecoverText([]byte(canonical), sig)
	require.NoError(t, err)
	assert.Equal(t, h.user(), signer)
}

func TestAuthenticator_EmptyBodyHashesEmptyInput(t *testing.T) {
	h := readyHarness(t)
	headers, err := h.broker.Auth.GetRequestHeaders(context.Background(), chatProvider, nil)
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256Hash().Hex(), headers[HeaderRequestHash])
}

func TestAuthenticator_ConcurrentCallsGetDistinctNonces(t *testing.T) {
	h := readyHarness(t)

	const n = 32
	var mu sync.Mutex
	seen := make(map[string]struct{}, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			headers, err := h.broker.Auth.GetRequestHeaders(context.Background(), chatProvider, nil)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[headers[HeaderNonce]] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)
}

func TestAuthenticator_GetRequestHeaders_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown provider", func(t *testing.T) {
		h := readyHarness(t)
		_, err := h.broker.Auth.GetRequestHeaders(ctx, unknownProvider, nil)
		assertAppError(t, err, "PRV_001")
	})

	t.Run("not acknowledged", func(t *testing.T) {
		h := newHarness(t)
		h.fund(t, chatProvider, domain.ServiceChatbot, 10, 10)
		_, err := h.broker.Auth.GetRequestHeaders(ctx, chatProvider, nil)
		assertAppError(t, err, "PRV_002")
	})

	t.Run("no sub-account", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.broker.Auth.AcknowledgeProvider(ctx, imageProvider))
		_, err := h.broker.Auth.GetRequestHeaders(ctx, imageProvider, nil)
		assertAppError(t, err, "LED_005")
	})

	t.Run("drained sub-account", func(t *testing.T) {
		h := readyHarness(t)
		_, err := settle(h, "", `{"total_tokens":25}`)
		require.NoError(t, err)
		_, err = h.broker.Auth.GetRequestHeaders(ctx, chatProvider, nil)
		assertAppError(t, err, "LED_005")
	})
}

func TestAuthenticator_AcknowledgeIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.broker.Auth.AcknowledgeProvider(ctx, chatProvider))
	require.NoError(t, h.broker.Auth.AcknowledgeProvider(ctx, chatProvider))

	acked, err := h.ledger.IsAcknowledged(ctx, h.user(), chatProvider)
	require.NoError(t, err)
	assert.True(t, acked)

	assertAppError(t, h.broker.Auth.AcknowledgeProvider(ctx, unknownProvider), "PRV_001")
}

func TestAuthenticator_GetServiceMetadata(t *testing.T) {
	h := newHarness(t)
	meta, err := h.broker.Auth.GetServiceMetadata(context.Background(), chatProvider)
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com/v1", meta.Endpoint)
	assert.Equal(t, "llama-3-8b", meta.Model)

	_, err = h.broker.Auth.GetServiceMetadata(context.Background(), unknownProvider)
	assertAppError(t, err, "PRV_001")
}

func TestAuthenticator_VerifyRequestHeaders(t *testing.T) {
	ctx := context.Background()
	body := []byte(`{"prompt":"hi"}`)

	t.Run("valid then replayed", func(t *testing.T) {
		h := readyHarness(t)
		headers, err := h.broker.Auth.GetRequestHeaders(ctx, chatProvider, body)
		require.NoError(t, err)

		user, err := h.broker.Auth.VerifyRequestHeaders(ctx, headers, body)
		require.NoError(t, err)
		assert.Equal(t, h.user(), user)

		_, err = h.broker.Auth.VerifyRequestHeaders(ctx, headers, body)
		assertAppError(t, err, "SEC_004")
	})

	t.Run("case-insensitive header names", func(t *testing.T) {
		h := readyHarness(t)
		headers, err := h.broker.Auth.GetRequestHeaders(ctx, chatProvider, body)
		require.NoError(t, err)
		lower := make(map[string]string, len(headers))
		for k, v := range headers {
			lower[strings.ToLower(k)] = v
		}
		_, err = h.broker.Auth.VerifyRequestHeaders(ctx, lower, body)
		assert.NoError(t, err)
	})

	t.Run("tampered body", func(t *testing.T) {
		h := readyHarness(t)
		headers, err := h.broker.Auth.GetRequestHeaders(ctx, chatProvider, body)
		require.NoError(t, err)
		_, err = h.broker.Auth.VerifyRequestHeaders(ctx, headers, []byte(`{"prompt":"bye"}`))
		assertAppError(t, err, "SEC_005")
	})

	t.Run("expired timestamp", func(t *testing.T) {
		h := readyHarness(t)
		headers, err := h.broker.Auth.GetRequestHeaders(ctx, chatProvider, body)
		require.NoError(t, err)
		h.clock.Advance(2 * time.Minute)
		_, err = h.broker.Auth.VerifyRequestHeaders(ctx, headers, body)
		assertAppError(t, err, "SEC_003")
	})

	t.Run("forged signature", func(t *testing.T) {
		h := readyHarness(t)
		headers, err := h.broker.Auth.GetRequestHeaders(ctx, chatProvider, body)
		require.NoError(t, err)

		other, err := GenerateWalletSigner()
		require.NoError(t, err)
		ts, _ := strconv.ParseInt(headers[HeaderTimestamp], 10, 64)
		sig, err := other.SignText([]byte(BuildCanonicalString(h.user(), chatProvider, headers[HeaderNonce], ts, headers[HeaderRequestHash])))
		require.NoError(t, err)
		headers[HeaderSignature] = hexutil.Encode(sig)

		_, err = h.broker.Auth.VerifyRequestHeaders(ctx, headers, body)
		assertAppError(t, err, "SEC_002")
	})

	t.Run("missing header", func(t *testing.T) {
		h := readyHarness(t)
		headers, err := h.broker.Auth.GetRequestHeaders(ctx, chatProvider, body)
		require.NoError(t, err)
		delete(headers, HeaderNonce)
		_, err = h.broker.Auth.VerifyRequestHeaders(ctx, headers, body)
		assertAppError(t, err, "SEC_001")
	})
}

func TestAuthenticator_NonceStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	nonces := mocks.NewMockNonceStore(ctrl)
	nonces.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))

	h := newHarness(t, func(d *Deps) { d.Nonces = nonces })
	h.fund(t, chatProvider, domain.ServiceChatbot, 10, 10)
	require.NoError(t, h.broker.Auth.AcknowledgeProvider(context.Background(), chatProvider))

	_, err := h.broker.Auth.GetRequestHeaders(context.Background(), chatProvider, nil)
	assertAppError(t, err, "NET_002")
}

func TestAuthenticator_NonceCollisionRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	nonces := mocks.NewMockNonceStore(ctrl)
	gomock.InOrder(
		nonces.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
		nonces.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil),
	)

	h := newHarness(t, func(d *Deps) { d.Nonces = nonces })
	h.fund(t, chatProvider, domain.ServiceChatbot, 10, 10)
	require.NoError(t, h.broker.Auth.AcknowledgeProvider(context.Background(), chatProvider))

	_, err := h.broker.Auth.GetRequestHeaders(context.Background(), chatProvider, nil)
	require.NoError(t, err)
}
