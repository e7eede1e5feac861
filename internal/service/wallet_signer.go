package service

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// WalletSigner implements ports.Signer with a secp256k1 key held in memory.
type WalletSigner struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// NewWalletSigner parses a hex-encoded private key, with or without 0x.
func NewWalletSigner(hexKey string) (*WalletSigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse wallet key: %w", err)
	}
	return &WalletSigner{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// GenerateWalletSigner creates a signer with a fresh random key.
func GenerateWalletSigner() (*WalletSigner, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate wallet key: %w", err)
	}
	return &WalletSigner{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// Address returns the wallet address.
func (w *WalletSigner) Address() common.Address { return w.addr }

// SignText signs msg as an EIP-191 personal message. The recovery id is
// returned in the 27/28 form wallets produce.
func (w *WalletSigner) SignText(msg []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(msg), w.key)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// RecoverText returns the address that produced sig over the EIP-191
// personal message msg. Both 0/1 and 27/28 recovery ids are accepted.
func RecoverText(msg, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("recover: signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	cp := make([]byte, len(sig))
	copy(cp, sig)
	if cp[crypto.RecoveryIDOffset] >= 27 {
		cp[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(accounts.TextHash(msg), cp)
	if err != nil {
		return common.Address{}, fmt.Errorf("recover: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
