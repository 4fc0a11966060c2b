package store

import (
	"github.com/corepay/identity-service/migrations"
)

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
