package pgsql

import (
	"context"
	"fmt"
)

// CreateDeploymentsTable1755834298 is struct to define a migration with ID 1755834298_create_deployments_table
type CreateDeploymentsTable1755834298 struct{}

// ID return unique identifier for each migration. The prefix is unix time when this migration is created.
func (m CreateDeploymentsTable1755834298) ID(ctx context.Context) string {
	return fmt.Sprintf("%d_%s.sql", 1755834298, "create_deployments_table")
}

// SequenceNumber return current time when the migration is created,
// this useful to see the current status of the migration.
func (m CreateDeploymentsTable1755834298) SequenceNumber(ctx context.Context) int {
	return 1755834298
}

// Up return sql migration for sync database
func (m CreateDeploymentsTable1755834298) Up(ctx context.Context) (sql string, err error) {
	sql = `
CREATE TABLE IF NOT EXISTS deployments
(
    id            UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    app_id        UUID                     NOT NULL REFERENCES apps (id) ON DELETE CASCADE,
    user_id       UUID                     NOT NULL REFERENCES users (id),
    provider      VARCHAR(32)              NOT NULL,
    status        VARCHAR(32)              NOT NULL DEFAULT 'pending',
    url           TEXT                     NOT NULL DEFAULT '',
    environment   VARCHAR(32)              NOT NULL DEFAULT 'production',
    error_message TEXT                     NOT NULL DEFAULT '',
    created_at    TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    completed_at  TIMESTAMP WITH TIME ZONE
);

CREATE INDEX IF NOT EXISTS deployments_user_id_idx ON deployments (user_id);
CREATE INDEX IF NOT EXISTS deployments_app_id_idx ON deployments (app_id);
`
	return
}

// Down return sql migration for rollback database
func (m CreateDeploymentsTable1755834298) Down(ctx context.Context) (sql string, err error) {
	sql = `DROP TABLE IF EXISTS deployments;`
	return
}
