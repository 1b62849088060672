package pgsql

import (
	"context"
	"fmt"
)

// CreateUuidExtensions1755833918 is struct to define a migration with ID 1755833918_create_uuid_extensions
type CreateUuidExtensions1755833918 struct{}

// ID return unique identifier for each migration. The prefix is unix time when this migration is created.
func (m CreateUuidExtensions1755833918) ID(ctx context.Context) string {
	return fmt.Sprintf("%d_%s.sql", 1755833918, "create_uuid_extensions")
}

// SequenceNumber return current time when the migration is created,
// this useful to see the current status of the migration.
func (m CreateUuidExtensions1755833918) SequenceNumber(ctx context.Context) int {
	return 1755833918
}

// Up return sql migration for sync database
func (m CreateUuidExtensions1755833918) Up(ctx context.Context) (sql string, err error) {
	sql = `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`
	return
}

// Down return sql migration for rollback database
func (m CreateUuidExtensions1755833918) Down(ctx context.Context) (sql string, err error) {
	return
}
