package pgsql

import (
	"context"
	"fmt"
)

// CreateAppsTable1755834117 is struct to define a migration with ID 1755834117_create_apps_table
type CreateAppsTable1755834117 struct{}

// ID return unique identifier for each migration. The prefix is unix time when this migration is created.
func (m CreateAppsTable1755834117) ID(ctx context.Context) string {
	return fmt.Sprintf("%d_%s.sql", 1755834117, "create_apps_table")
}

// SequenceNumber return current time when the migration is created,
// this useful to see the current status of the migration.
func (m CreateAppsTable1755834117) SequenceNumber(ctx context.Context) int {
	return 1755834117
}

// Up return sql migration for sync database
func (m CreateAppsTable1755834117) Up(ctx context.Context) (sql string, err error) {
	sql = `
CREATE TABLE IF NOT EXISTS apps
(
    id                  UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    user_id             UUID                     NOT NULL REFERENCES users (id),
    name                VARCHAR(255)             NOT NULL,
    description         TEXT                     NOT NULL,
    features            JSONB                    NOT NULL DEFAULT '[]',
    entities            JSONB                    NOT NULL DEFAULT '[]',
    target_audience     TEXT                     NOT NULL DEFAULT '',
    framework           VARCHAR(32)              NOT NULL DEFAULT 'react',
    styling             VARCHAR(32)              NOT NULL DEFAULT 'tailwind',
    status              VARCHAR(32)              NOT NULL DEFAULT 'draft',
    generated_code      TEXT                     NOT NULL DEFAULT '',
    deployment_url      TEXT                     NOT NULL DEFAULT '',
    deployment_provider VARCHAR(32)              NOT NULL DEFAULT '',
    created_at          TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at          TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS apps_user_id_idx ON apps (user_id);
`
	return
}

// Down return sql migration for rollback database
func (m CreateAppsTable1755834117) Down(ctx context.Context) (sql string, err error) {
	sql = `DROP TABLE IF EXISTS apps;`
	return
}
