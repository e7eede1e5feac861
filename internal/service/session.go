package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"
	"serving-broker/pkg/apperror"
	"serving-broker/pkg/clock"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// session is the state shared by the account, authentication and settlement
// services of one broker. It is bound to a single wallet key.
type session struct {
	signer ports.Signer
	ledger ports.LedgerStore
	audit  ports.AuditService
	clock  clock.Clock
	opts   Options
	log    zerolog.Logger

	// mu serialises ledger mutations. Reads never take it.
	mu sync.Mutex
}

func newSession(signer ports.Signer, ledger ports.LedgerStore, audit ports.AuditService, clk clock.Clock, opts Options, log zerolog.Logger) *session {
	if audit == nil {
		audit = noopAudit{}
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &session{
		signer: signer,
		ledger: ledger,
		audit:  audit,
		clock:  clk,
		opts:   opts,
		log:    log.With().Str("user", signer.Address().Hex()).Logger(),
	}
}

func (s *session) user() common.Address { return s.signer.Address() }

// submit hands t to the ledger under the confirmation deadline. Store
// rejections are returned unchanged; every other failure becomes a
// NET_001 error because the transfer may or may not have been applied.
func (s *session) submit(ctx context.Context, op string, t domain.Transfer) (*domain.Confirmation, error) {
	if s.opts.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.ConfirmTimeout)
		defer cancel()
	}

	start := time.Now()
	conf, err := s.ledger.SubmitTransfer(ctx, t)
	ledgerLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		ledgerOps.WithLabelValues(op, "confirmed").Inc()
		s.log.Debug().Str("op", op).Str("tx_id", conf.TxID.String()).Int64("amount", conf.Amount).Msg("ledger transfer confirmed")
		return conf, nil
	case domain.IsRejection(err):
		ledgerOps.WithLabelValues(op, "rejected").Inc()
		return nil, err
	default:
		ledgerOps.WithLabelValues(op, "undetermined").Inc()
		s.log.Error().Err(err).Str("op", op).Msg("ledger transfer outcome unknown")
		return nil, apperror.ErrNetwork(err)
	}
}

// retryRead runs an idempotent read with exponential backoff. Store
// rejections are not retried.
func retryRead[T any](ctx context.Context, tries uint, op func() (T, error)) (T, error) {
	if tries == 0 {
		tries = 1
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && domain.IsRejection(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(tries))
}

func (s *session) mainBalance(ctx context.Context) (int64, error) {
	return retryRead(ctx, s.opts.ReadRetries, func() (int64, error) {
		return s.ledger.ReadBalance(ctx, domain.MainRef(s.user()))
	})
}

func (s *session) readSubAccount(ctx context.Context, provider common.Address) (*domain.SubAccount, error) {
	sub, err := retryRead(ctx, s.opts.ReadRetries, func() (*domain.SubAccount, error) {
		return s.ledger.ReadSubAccount(ctx, s.user(), provider)
	})
	if err != nil {
		return nil, apperror.ErrUpstream(fmt.Errorf("read sub-account: %w", err))
	}
	return sub, nil
}

// fail converts err to an AppError carrying a fresh main balance. The
// balance is omitted when it cannot be read.
func (s *session) fail(ctx context.Context, err error, insufficient func() *apperror.AppError) error {
	appErr := toAppError(err, insufficient)

	readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	bal, rerr := s.mainBalance(readCtx)
	if rerr != nil {
		s.log.Warn().Err(rerr).Msg("could not read main balance after failed mutation")
		return appErr
	}
	return appErr.WithBalance(bal)
}

// toAppError maps store rejections onto API errors. insufficient names the
// error reported for an insufficient balance, which depends on the source
// account of the transfer.
func toAppError(err error, insufficient func() *apperror.AppError) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return apperror.ErrInsufficientFunds()
	case errors.Is(err, domain.ErrInsufficientBalance):
		if insufficient != nil {
			return insufficient()
		}
		return apperror.ErrInsufficientMainBalance()
	case errors.Is(err, domain.ErrLedgerKindMismatch):
		return apperror.ErrServiceKindMismatch()
	case errors.Is(err, domain.ErrSubAccountNotFound):
		return apperror.ErrSubAccountNotFound()
	case errors.Is(err, domain.ErrNotAcknowledged):
		return apperror.ErrProviderNotAcknowledged()
	case errors.Is(err, domain.ErrInvalidTransfer):
		return apperror.Validation(err.Error())
	}
	return apperror.InternalError(err)
}

// record writes an audit entry for a confirmed ledger action.
func (s *session) record(ctx context.Context, action domain.AuditAction, provider *common.Address, amount int64, conf *domain.Confirmation, details string) {
	entry := &domain.AuditLog{
		ID:        uuid.New(),
		User:      strings.ToLower(s.user().Hex()),
		Action:    action,
		Amount:    amount,
		Details:   details,
		CreatedAt: s.clock.Now(),
	}
	if provider != nil {
		entry.Provider = strings.ToLower(provider.Hex())
	}
	if conf != nil {
		entry.TxID = conf.TxID.String()
	}
	s.audit.Log(ctx, entry)
}
