package postgres

import (
	"context"
	"fmt"
)

// schema creates the broker tables. Addresses are stored as lowercase hex.
const schema = `
CREATE TABLE IF NOT EXISTS funding_wallets (
	owner   TEXT PRIMARY KEY,
	balance BIGINT NOT NULL CHECK (balance >= 0)
);

CREATE TABLE IF NOT EXISTS accounts (
	owner      TEXT PRIMARY KEY,
	balance    BIGINT NOT NULL CHECK (balance >= 0),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sub_accounts (
	owner      TEXT NOT NULL,
	provider   TEXT NOT NULL,
	kind       TEXT NOT NULL,
	balance    BIGINT NOT NULL CHECK (balance >= 0),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (owner, provider)
);

CREATE TABLE IF NOT EXISTS refund_requests (
	id           UUID PRIMARY KEY,
	owner        TEXT NOT NULL,
	provider     TEXT NOT NULL,
	amount       BIGINT NOT NULL CHECK (amount > 0),
	requested_at TIMESTAMPTZ NOT NULL,
	unlock_at    TIMESTAMPTZ NOT NULL,
	FOREIGN KEY (owner, provider) REFERENCES sub_accounts (owner, provider)
);
CREATE INDEX IF NOT EXISTS idx_refund_requests_owner ON refund_requests (owner, provider, requested_at);

CREATE TABLE IF NOT EXISTS provider_payouts (
	owner    TEXT NOT NULL,
	provider TEXT NOT NULL,
	amount   BIGINT NOT NULL,
	PRIMARY KEY (owner, provider)
);

CREATE TABLE IF NOT EXISTS acknowledgements (
	owner           TEXT NOT NULL,
	provider        TEXT NOT NULL,
	acknowledged_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (owner, provider)
);

CREATE TABLE IF NOT EXISTS ledger_transfers (
	id         UUID PRIMARY KEY,
	type       TEXT NOT NULL,
	from_ref   TEXT NOT NULL,
	to_ref     TEXT NOT NULL,
	amount     BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_logs (
	id         UUID PRIMARY KEY,
	owner      TEXT NOT NULL,
	action     TEXT NOT NULL,
	provider   TEXT,
	amount     BIGINT NOT NULL,
	tx_id      TEXT,
	details    JSONB,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS dispute_deliveries (
	id          UUID PRIMARY KEY,
	owner       TEXT NOT NULL,
	provider    TEXT NOT NULL,
	response_id TEXT NOT NULL,
	reason      TEXT NOT NULL,
	webhook_url TEXT NOT NULL,
	payload     JSONB NOT NULL,
	http_status INT,
	attempt     INT NOT NULL,
	status      TEXT NOT NULL,
	last_error  TEXT,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
`

// Migrate creates missing tables.
func Migrate(ctx context.Context, pool Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
