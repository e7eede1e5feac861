package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"
	"serving-broker/pkg/clock"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultDisputeRetryIntervals are the waits between delivery attempts.
var DefaultDisputeRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// EventSettlementDispute is the event type of every dispute webhook.
const EventSettlementDispute = "SETTLEMENT_DISPUTE"

// DisputeSignatureHeader carries the HMAC of the payload data.
const DisputeSignatureHeader = "X-Broker-Webhook-Signature"

// DisputePayload is the JSON structure sent to the dispute webhook.
type DisputePayload struct {
	EventType string             `json:"event_type"`
	Data      DisputePayloadData `json:"data"`
	Signature string             `json:"signature"`
}

// DisputePayloadData holds the settlement details in the webhook.
type DisputePayloadData struct {
	User       string               `json:"user"`
	Provider   string               `json:"provider"`
	ResponseID string               `json:"response_id"`
	Reason     domain.DisputeReason `json:"reason"`
	Verified   bool                 `json:"verified"`
	Fee        int64                `json:"fee"`
	Charged    int64                `json:"charged"`
	TxID       string               `json:"tx_id"`
	Timestamp  int64                `json:"timestamp"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DisputeNotifierConfig configures dispute delivery. An empty WebhookURL
// disables it.
type DisputeNotifierConfig struct {
	WebhookURL     string
	Secret         string
	RetryIntervals []time.Duration // nil: DefaultDisputeRetryIntervals
}

// DisputeNotifier implements ports.DisputeNotifier. Deliveries run in the
// background until Close is called.
type DisputeNotifier struct {
	cfg        DisputeNotifierConfig
	repo       ports.DisputeRepository
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	clock      clock.Clock
	log        zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDisputeNotifier creates a dispute notifier. repo may be nil, in which
// case deliveries are only logged.
func NewDisputeNotifier(
	cfg DisputeNotifierConfig,
	repo ports.DisputeRepository,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	clk clock.Clock,
	log zerolog.Logger,
) *DisputeNotifier {
	if cfg.RetryIntervals == nil {
		cfg.RetryIntervals = DefaultDisputeRetryIntervals
	}
	if clk == nil {
		clk = clock.Real()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &DisputeNotifier{
		cfg:        cfg,
		repo:       repo,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		clock:      clk,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Close stops pending retries and waits for running deliveries to return.
// Deliveries cut short stay PENDING.
func (n *DisputeNotifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	n.cancel()
	n.wg.Wait()
}

// Notify signs the dispute and delivers it asynchronously with retries.
func (n *DisputeNotifier) Notify(ctx context.Context, user common.Address, s *domain.Settlement, reason domain.DisputeReason) error {
	if n.cfg.WebhookURL == "" {
		n.log.Debug().Str("reason", string(reason)).Msg("dispute: no webhook URL configured, skipping")
		return nil
	}

	now := n.clock.Now()
	data := DisputePayloadData{
		User:       strings.ToLower(user.Hex()),
		Provider:   strings.ToLower(s.Provider.Hex()),
		ResponseID: s.ResponseID,
		Reason:     reason,
		Verified:   s.Verified,
		Fee:        s.Fee,
		Charged:    s.Charged,
		TxID:       s.TxID,
		Timestamp:  now.Unix(),
	}
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("dispute: marshal data: %w", err)
	}
	payload := DisputePayload{
		EventType: EventSettlementDispute,
		Data:      data,
		Signature: n.sigSvc.Sign(n.cfg.Secret, string(dataBytes)),
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("dispute: marshal payload: %w", err)
	}

	delivery := &domain.DisputeDelivery{
		ID:         uuid.New(),
		User:       data.User,
		Provider:   data.Provider,
		ResponseID: s.ResponseID,
		Reason:     reason,
		WebhookURL: n.cfg.WebhookURL,
		Payload:    string(payloadBytes),
		Status:     domain.DeliveryPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if n.repo != nil {
		if err := n.repo.Create(ctx, delivery); err != nil {
			n.log.Warn().Err(err).Msg("dispute: failed to record delivery")
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		n.log.Warn().Str("delivery_id", delivery.ID.String()).Msg("dispute: notifier closed, delivery left pending")
		return nil
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliverWithRetries(n.ctx, delivery, payload.Signature)
	}()
	return nil
}

// intervalBackOff waits the configured intervals in order, then stops.
type intervalBackOff struct {
	intervals []time.Duration
	next      int
}

func (b *intervalBackOff) NextBackOff() time.Duration {
	if b.next >= len(b.intervals) {
		return backoff.Stop
	}
	d := b.intervals[b.next]
	b.next++
	return d
}

func (b *intervalBackOff) Reset() { b.next = 0 }

// deliverWithRetries posts the payload until a 2xx response, the retry
// intervals are exhausted or ctx is cancelled.
func (n *DisputeNotifier) deliverWithRetries(ctx context.Context, d *domain.DisputeDelivery, signature string) {
	logger := n.log.With().Str("delivery_id", d.ID.String()).Str("reason", string(d.Reason)).Logger()

	_, err := backoff.Retry(ctx, func() (int, error) {
		d.Attempt++
		status, err := n.post(ctx, d.WebhookURL, []byte(d.Payload), signature)
		if err != nil {
			logger.Warn().Err(err).Int("attempt", d.Attempt).Msg("dispute: delivery failed")
			msg := err.Error()
			d.LastError = &msg
			d.HTTPStatus = nil
			n.update(d, domain.DeliveryPending)
			return 0, err
		}
		d.HTTPStatus = &status
		if status >= 200 && status < 300 {
			d.LastError = nil
			n.update(d, domain.DeliveryDelivered)
			logger.Info().Int("attempt", d.Attempt).Int("status", status).Msg("dispute: delivered successfully")
			return status, nil
		}
		msg := fmt.Sprintf("non-2xx response: %d", status)
		d.LastError = &msg
		n.update(d, domain.DeliveryPending)
		logger.Warn().Int("attempt", d.Attempt).Int("status", status).Msg("dispute: non-2xx response, retrying")
		return status, fmt.Errorf("dispute: %s", msg)
	},
		backoff.WithBackOff(&intervalBackOff{intervals: n.cfg.RetryIntervals}),
		backoff.WithMaxTries(uint(len(n.cfg.RetryIntervals)+1)),
		backoff.WithMaxElapsedTime(0),
	)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		logger.Warn().Int("attempt", d.Attempt).Msg("dispute: delivery stopped by shutdown, left pending")
	default:
		n.update(d, domain.DeliveryFailed)
		logger.Error().Msg("dispute: all retry attempts exhausted")
	}
}

func (n *DisputeNotifier) post(ctx context.Context, url string, body []byte, signature string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(DisputeSignatureHeader, signature)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func (n *DisputeNotifier) update(d *domain.DisputeDelivery, status domain.DeliveryStatus) {
	d.Status = status
	d.UpdatedAt = n.clock.Now()
	if n.repo == nil {
		return
	}
	if err := n.repo.Update(context.Background(), d); err != nil {
		n.log.Warn().Err(err).Str("delivery_id", d.ID.String()).Msg("dispute: failed to update delivery")
	}
}

var _ ports.DisputeNotifier = (*DisputeNotifier)(nil)
