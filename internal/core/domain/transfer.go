package domain

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// RefKind identifies the kind of balance a transfer touches.
type RefKind string

const (
	RefWallet   RefKind = "wallet"   // external funding wallet
	RefMain     RefKind = "main"     // main account
	RefSub      RefKind = "sub"      // spare part of a sub-account
	RefRefund   RefKind = "refund"   // pending refunds of a sub-account
	RefProvider RefKind = "provider" // provider payout (fee sink)
)

// AccountRef addresses one balance on the ledger.
type AccountRef struct {
	Kind     RefKind        `json:"kind"`
	Owner    common.Address `json:"owner"`
	Provider common.Address `json:"provider,omitempty"`
}

func WalletRef(owner common.Address) AccountRef { return AccountRef{Kind: RefWallet, Owner: owner} }
func MainRef(owner common.Address) AccountRef   { return AccountRef{Kind: RefMain, Owner: owner} }

func SubRef(owner, provider common.Address) AccountRef {
	return AccountRef{Kind: RefSub, Owner: owner, Provider: provider}
}

func RefundRef(owner, provider common.Address) AccountRef {
	return AccountRef{Kind: RefRefund, Owner: owner, Provider: provider}
}

func ProviderRef(owner, provider common.Address) AccountRef {
	return AccountRef{Kind: RefProvider, Owner: owner, Provider: provider}
}

func (r AccountRef) String() string {
	switch r.Kind {
	case RefSub, RefRefund, RefProvider:
		return fmt.Sprintf("%s:%s/%s", r.Kind, r.Owner.Hex(), r.Provider.Hex())
	default:
		return fmt.Sprintf("%s:%s", r.Kind, r.Owner.Hex())
	}
}

// TransferType names the ledger operation implied by a From/To pair.
type TransferType string

const (
	TransferDeposit        TransferType = "DEPOSIT"
	TransferWithdraw       TransferType = "WITHDRAW"
	TransferFund           TransferType = "TRANSFER"
	TransferRefundInitiate TransferType = "REFUND_INITIATE"
	TransferRefundComplete TransferType = "REFUND_COMPLETE"
	TransferFee            TransferType = "FEE"
)

// Transfer is a single atomic movement submitted to the ledger store.
type Transfer struct {
	From   AccountRef `json:"from"`
	To     AccountRef `json:"to"`
	Amount int64      `json:"amount"`
	// Kind is recorded when a main->sub transfer creates the sub-account.
	Kind LedgerKind `json:"kind,omitempty"`
	// RefundIDs lists the refunds completed by a refund->main transfer.
	RefundIDs []uuid.UUID `json:"refund_ids,omitempty"`
}

// Type classifies the transfer, returning an error for unsupported pairs.
func (t Transfer) Type() (TransferType, error) {
	if t.From.Owner != t.To.Owner {
		return "", fmt.Errorf("%w: owner mismatch", ErrInvalidTransfer)
	}
	switch {
	case t.From.Kind == RefWallet && t.To.Kind == RefMain:
		return TransferDeposit, nil
	case t.From.Kind == RefMain && t.To.Kind == RefWallet:
		return TransferWithdraw, nil
	case t.From.Kind == RefMain && t.To.Kind == RefSub:
		return TransferFund, nil
	case t.From.Kind == RefSub && t.To.Kind == RefRefund && t.From.Provider == t.To.Provider:
		return TransferRefundInitiate, nil
	case t.From.Kind == RefRefund && t.To.Kind == RefMain:
		return TransferRefundComplete, nil
	case t.From.Kind == RefSub && t.To.Kind == RefProvider && t.From.Provider == t.To.Provider:
		return TransferFee, nil
	}
	return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransfer, t.From.Kind, t.To.Kind)
}

// Validate checks the transfer shape before it is submitted.
func (t Transfer) Validate() error {
	typ, err := t.Type()
	if err != nil {
		return err
	}
	if typ == TransferRefundComplete {
		if len(t.RefundIDs) == 0 {
			return fmt.Errorf("%w: no refunds to complete", ErrInvalidTransfer)
		}
		return nil
	}
	if t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransfer)
	}
	if typ == TransferFund {
		if _, ok := ParseLedgerKind(string(t.Kind)); !ok {
			return fmt.Errorf("%w: ledger kind required", ErrInvalidTransfer)
		}
	}
	return nil
}

// Confirmation is returned once the store has durably applied a transfer.
type Confirmation struct {
	TxID        uuid.UUID      `json:"tx_id"`
	Type        TransferType   `json:"type"`
	Amount      int64          `json:"amount"`
	ConfirmedAt time.Time      `json:"confirmed_at"`
	Refund      *RefundRequest `json:"refund,omitempty"`
}
