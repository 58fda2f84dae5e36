package models

import "github.com/google/uuid"

// ensureID assigns a fresh UUID when the caller did not provide one. Postgres
// would default the column, but SQLite has no gen_random_uuid().
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every persisted model, in dependency order, for gorm AutoMigrate.
func All() []any {
	return []any{
		&Genre{},
		&Movie{},
		&Customer{},
		&User{},
		&Rental{},
	}
}
