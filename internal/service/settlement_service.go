package service

import (
	"context"
	"fmt"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"
	"serving-broker/pkg/apperror"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// inFlightPoll is how often a duplicate settlement re-checks the record
// of the call that reserved it.
const inFlightPoll = 50 * time.Millisecond

// Settler implements ports.ResponseSettler.
type Settler struct {
	*session
	directory   ports.ProviderDirectory
	settlements ports.SettlementStore
	proofs      ports.ProofFetcher
	disputes    ports.DisputeNotifier
}

// ProcessResponse verifies a provider response and charges its fee to the
// provider's sub-account. A response with an identifier is charged at most
// once: later calls return the stored record with Duplicate set.
func (s *Settler) ProcessResponse(ctx context.Context, req ports.SettleRequest) (*domain.Settlement, error) {
	svc, err := s.directory.GetService(ctx, req.Provider)
	if err != nil {
		return nil, err
	}
	sub, err := s.readSubAccount(ctx, req.Provider)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperror.ErrSubAccountNotFound()
	}
	usage, err := domain.ParseUsage(req.UsageData)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("invalid usage data: %v", err))
	}
	fee, err := s.fee(svc, usage)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("invalid usage data: %v", err))
	}

	var key string
	if req.ResponseID != "" {
		key = domain.BuildSettlementKey(s.user(), req.Provider, req.ResponseID)
		existing, err := s.reserve(ctx, key)
		if err != nil {
			settlementsTotal.WithLabelValues("failed").Inc()
			return nil, err
		}
		if existing != nil {
			dup := *existing
			dup.Duplicate = true
			settlementsTotal.WithLabelValues("duplicate").Inc()
			return &dup, nil
		}
	}

	st, err := s.settle(ctx, svc, req, fee)
	if err != nil {
		settlementsTotal.WithLabelValues("failed").Inc()
		if apperror.IsUndetermined(err) {
			// The fee may have been applied. The key stays reserved until
			// it expires so a retry cannot charge the response twice.
			if key != "" {
				s.log.Error().Err(err).Str("key", key).Msg("fee outcome unknown, keeping settlement reserved")
			}
			return nil, err
		}
		s.release(ctx, key)
		return nil, err
	}

	if key != "" {
		// The fee is already charged. A lost record leaves the key reserved
		// until it expires, which blocks a double charge.
		if err := s.settlements.Complete(context.WithoutCancel(ctx), key, st, s.opts.DedupTTL); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to store settlement record")
		}
	}

	if st.Verified {
		settlementsTotal.WithLabelValues("verified").Inc()
	} else {
		settlementsTotal.WithLabelValues("unverified").Inc()
	}
	s.publishDisputes(ctx, st)
	return st, nil
}

// settle verifies the response and deducts min(fee, balance).
func (s *Settler) settle(ctx context.Context, svc *domain.ProviderService, req ports.SettleRequest, fee int64) (*domain.Settlement, error) {
	verified := true
	if svc.IsVerifiable() && req.ResponseID != "" {
		verified = s.verifyProof(ctx, svc, req.ResponseID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.user()
	bal, err := retryRead(ctx, s.opts.ReadRetries, func() (int64, error) {
		return s.ledger.ReadBalance(ctx, domain.SubRef(u, req.Provider))
	})
	if err != nil {
		return nil, apperror.ErrUpstream(fmt.Errorf("read sub-account balance: %w", err))
	}

	charge := min(fee, bal)
	st := &domain.Settlement{
		Provider:       req.Provider,
		ResponseID:     req.ResponseID,
		Verified:       verified,
		Fee:            fee,
		Charged:        charge,
		UnderCollected: charge < fee,
		SettledAt:      s.clock.Now(),
	}
	if charge > 0 {
		conf, err := s.submit(ctx, "fee", domain.Transfer{
			From:   domain.SubRef(u, req.Provider),
			To:     domain.ProviderRef(u, req.Provider),
			Amount: charge,
		})
		if err != nil {
			return nil, s.fail(ctx, err, apperror.ErrSubAccountEmpty)
		}
		st.TxID = conf.TxID.String()
		s.record(ctx, domain.AuditActionSettle, &req.Provider, charge, conf, req.ResponseID)
		feesCharged.Add(float64(charge))
	}
	if st.UnderCollected {
		feesUncollected.Add(float64(fee - charge))
		s.log.Warn().Str("provider", req.Provider.Hex()).Int64("fee", fee).Int64("charged", charge).Msg("fee exceeds sub-account balance")
	}
	return st, nil
}

// reserve claims key. It returns the completed record when the response
// was already settled, and waits up to InFlightWait while another call is
// still settling it.
func (s *Settler) reserve(ctx context.Context, key string) (*domain.Settlement, error) {
	deadline := time.Now().Add(s.opts.InFlightWait)
	for {
		reserved, existing, err := s.settlements.Reserve(ctx, key, s.opts.DedupTTL)
		if err != nil {
			return nil, apperror.ErrUpstream(fmt.Errorf("reserve settlement: %w", err))
		}
		if reserved {
			return nil, nil
		}
		if existing != nil {
			return existing, nil
		}
		if !time.Now().Before(deadline) {
			return nil, apperror.ErrSettlementInFlight()
		}
		select {
		case <-ctx.Done():
			return nil, apperror.ErrUpstream(ctx.Err())
		case <-time.After(inFlightPoll):
		}
	}
}

func (s *Settler) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.settlements.Release(context.WithoutCancel(ctx), key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to release settlement reservation")
	}
}

// verifyProof reports whether the provider's proof for responseID was
// signed by the service's TEE signer. Fetch failures count as unverified.
func (s *Settler) verifyProof(ctx context.Context, svc *domain.ProviderService, responseID string) bool {
	if s.proofs == nil {
		return false
	}
	if s.opts.ProofTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.ProofTimeout)
		defer cancel()
	}

	logger := s.log.With().Str("provider", svc.Provider.Hex()).Str("response_id", responseID).Logger()
	proof, err := s.proofs.FetchProof(ctx, svc, responseID)
	if err != nil {
		logger.Warn().Err(err).Msg("could not fetch response proof")
		return false
	}
	sig, err := hexutil.Decode(proof.Signature)
	if err != nil {
		logger.Warn().Err(err).Msg("malformed proof signature")
		return false
	}
	signer, err := RecoverText([]byte(proof.Text), sig)
	if err != nil || signer != svc.TEESigner {
		logger.Warn().Str("recovered", signer.Hex()).Msg("response proof not signed by TEE signer")
		return false
	}
	return true
}

// fee prices usage, falling back to the provider minimum and then the
// configured default when no usage was reported.
func (s *Settler) fee(svc *domain.ProviderService, usage *domain.Usage) (int64, error) {
	if usage == nil {
		if svc.MinFee > 0 {
			return svc.MinFee, nil
		}
		return s.opts.DefaultMinFee, nil
	}
	return svc.UsageFee(usage)
}

func (s *Settler) publishDisputes(ctx context.Context, st *domain.Settlement) {
	if s.disputes == nil {
		return
	}
	u := s.user()
	if !st.Verified {
		if err := s.disputes.Notify(ctx, u, st, domain.DisputeVerificationFailed); err != nil {
			s.log.Warn().Err(err).Msg("failed to publish verification dispute")
		}
	}
	if st.UnderCollected {
		if err := s.disputes.Notify(ctx, u, st, domain.DisputeUnderCollected); err != nil {
			s.log.Warn().Err(err).Msg("failed to publish under-collection")
		}
	}
}

var _ ports.ResponseSettler = (*Settler)(nil)
