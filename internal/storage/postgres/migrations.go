package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema mirrors the SQLite layout. BIGSERIAL sequences never hand out an id twice.
const schema = `
CREATE TABLE IF NOT EXISTS groups (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS group_members (
    group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    member TEXT NOT NULL,
    PRIMARY KEY (group_id, member)
);

CREATE TABLE IF NOT EXISTS balances (
    group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
    member TEXT NOT NULL,
    amount BIGINT NOT NULL,
    PRIMARY KEY (group_id, member)
);

CREATE TABLE IF NOT EXISTS debts (
    group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
    debtor TEXT NOT NULL,
    creditor TEXT NOT NULL,
    amount BIGINT NOT NULL CHECK (amount >= 0),
    PRIMARY KEY (group_id, debtor, creditor)
);

CREATE INDEX IF NOT EXISTS idx_group_members_position ON group_members(group_id, position);
`

func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
