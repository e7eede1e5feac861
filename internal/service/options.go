package service

import (
	"time"

	"serving-broker/config"
)

// Options tunes a broker session.
type Options struct {
	ConfirmTimeout    time.Duration // deadline for one ledger submission
	ReadRetries       uint          // attempts for idempotent reads
	NonceTTL          time.Duration
	MaxTimestampDrift time.Duration
	DedupTTL          time.Duration
	DefaultMinFee     int64 // charged when neither usage nor a provider minimum is known
	ProofTimeout      time.Duration
	InFlightWait      time.Duration // how long a duplicate settlement waits for the first
	DirectoryTTL      time.Duration
	DirectoryPageSize int
}

// DefaultOptions returns the values used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		ConfirmTimeout:    30 * time.Second,
		ReadRetries:       3,
		NonceTTL:          10 * time.Minute,
		MaxTimestampDrift: 60 * time.Second,
		DedupTTL:          24 * time.Hour,
		DefaultMinFee:     1,
		ProofTimeout:      10 * time.Second,
		InFlightWait:      5 * time.Second,
		DirectoryTTL:      time.Minute,
		DirectoryPageSize: 50,
	}
}

// OptionsFromConfig maps loaded configuration onto Options. Zero values
// keep the defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	o := DefaultOptions()
	if cfg == nil {
		return o
	}
	setDuration(&o.ConfirmTimeout, cfg.Ledger.ConfirmTimeout)
	if cfg.Ledger.ReadRetries > 0 {
		o.ReadRetries = cfg.Ledger.ReadRetries
	}
	setDuration(&o.NonceTTL, cfg.Auth.NonceTTL)
	setDuration(&o.MaxTimestampDrift, cfg.Auth.MaxTimestampDrift)
	setDuration(&o.DedupTTL, cfg.Settlement.DedupTTL)
	if cfg.Settlement.DefaultMinFee > 0 {
		o.DefaultMinFee = cfg.Settlement.DefaultMinFee
	}
	setDuration(&o.ProofTimeout, cfg.Settlement.ProofTimeout)
	setDuration(&o.InFlightWait, cfg.Settlement.InFlightWait)
	setDuration(&o.DirectoryTTL, cfg.Directory.CacheTTL)
	if cfg.Directory.PageSize > 0 {
		o.DirectoryPageSize = cfg.Directory.PageSize
	}
	return o
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
