package pgsql

import (
	"github.com/forgelabs/appforge/pkg/migration"
)

// All returns every migration in apply order.
func All() []migration.Migrate {
	return []migration.Migrate{
		CreateUuidExtensions1755833918{},
		CreateUsersTable1755834002{},
		CreateAppsTable1755834117{},
		CreateDeploymentsTable1755834298{},
	}
}
