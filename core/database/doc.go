// Package database handles database connections and schema checks.
//
// It provides a wrapper around GORM to configure MySQL connections (or SQLite for
// tests and single-node setups) from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, tunes the pool and pings the server.
// Every connection enables GORM's TranslateError so unique constraint violations
// surface as gorm.ErrDuplicatedKey; the account and race services rely on that
// instead of their existence pre-checks alone.
//
// # Schema
//
// Migrate creates the tables of the entity models and MissingTables reports the
// ones that are absent, which the health endpoint surfaces.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	missing := database.MissingTables(db, models.All()...)
package database
