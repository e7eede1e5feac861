package service

import (
	"errors"

	"serving-broker/internal/core/ports"
	"serving-broker/pkg/clock"

	"github.com/rs/zerolog"
)

// Deps are the collaborators of a broker session. Audit, Disputes and
// Proofs are optional.
type Deps struct {
	Signer      ports.Signer
	Ledger      ports.LedgerStore
	Source      ports.ServiceSource
	Nonces      ports.NonceStore
	Settlements ports.SettlementStore
	Proofs      ports.ProofFetcher
	Audit       ports.AuditService
	Disputes    ports.DisputeNotifier
	Clock       clock.Clock
}

// Broker is the context object bound to one wallet key. Its services
// share a single mutation lock.
type Broker struct {
	Accounts  *AccountBroker
	Auth      *Authenticator
	Settler   *Settler
	Directory *Directory
}

// NewBroker wires the account, authentication, settlement and directory
// services around one session.
func NewBroker(deps Deps, opts Options, log zerolog.Logger) (*Broker, error) {
	switch {
	case deps.Signer == nil:
		return nil, errors.New("broker: signer is required")
	case deps.Ledger == nil:
		return nil, errors.New("broker: ledger store is required")
	case deps.Source == nil:
		return nil, errors.New("broker: service source is required")
	case deps.Nonces == nil:
		return nil, errors.New("broker: nonce store is required")
	case deps.Settlements == nil:
		return nil, errors.New("broker: settlement store is required")
	}

	sess := newSession(deps.Signer, deps.Ledger, deps.Audit, deps.Clock, opts, log)
	dir := NewDirectory(deps.Source, deps.Ledger, deps.Signer.Address(), sess.clock, opts, log.With().Str("component", "directory").Logger())

	return &Broker{
		Accounts:  &AccountBroker{session: sess, directory: dir},
		Auth:      &Authenticator{session: sess, directory: dir, nonces: deps.Nonces},
		Settler:   &Settler{session: sess, directory: dir, settlements: deps.Settlements, proofs: deps.Proofs, disputes: deps.Disputes},
		Directory: dir,
	}, nil
}
