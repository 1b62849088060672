package pgsql

import (
	"context"
	"fmt"
)

// CreateUsersTable1755834002 is struct to define a migration with ID 1755834002_create_users_table
type CreateUsersTable1755834002 struct{}

// ID return unique identifier for each migration. The prefix is unix time when this migration is created.
func (m CreateUsersTable1755834002) ID(ctx context.Context) string {
	return fmt.Sprintf("%d_%s.sql", 1755834002, "create_users_table")
}

// SequenceNumber return current time when the migration is created,
// this useful to see the current status of the migration.
func (m CreateUsersTable1755834002) SequenceNumber(ctx context.Context) int {
	return 1755834002
}

// Up return sql migration for sync database
func (m CreateUsersTable1755834002) Up(ctx context.Context) (sql string, err error) {
	sql = `
CREATE TABLE IF NOT EXISTS users
(
    id                   UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    email                VARCHAR(255)             NOT NULL,
    name                 VARCHAR(255)             NOT NULL,
    password_digest      TEXT                     NOT NULL,
    plan                 VARCHAR(32)              NOT NULL DEFAULT 'free',
    ai_generations_used  INTEGER                  NOT NULL DEFAULT 0,
    ai_generations_limit INTEGER                  NOT NULL DEFAULT 5,
    created_at           TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT users_email_unique UNIQUE (email)
);
`
	return
}

// Down return sql migration for rollback database
func (m CreateUsersTable1755834002) Down(ctx context.Context) (sql string, err error) {
	sql = `DROP TABLE IF EXISTS users;`
	return
}
