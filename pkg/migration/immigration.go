package migration

import "context"

// Immigration runs migrations Up to the latest version or Down to rollback.
type Immigration interface {
	Up() error
	Down() error
}

// Migrate is one migration unit.
type Migrate interface {
	// ID return unique identifier for each migration. The prefix must be number.
	ID(ctx context.Context) string

	// SequenceNumber must be unique, this useful to see the current status of the migration.
	SequenceNumber(ctx context.Context) int

	// Up return sql migration for sync database
	Up(ctx context.Context) (sql string, err error)

	// Down return sql migration for rollback database
	Down(ctx context.Context) (sql string, err error)
}
