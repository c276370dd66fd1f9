package database

import (
	"fmt"
	"strings"

	"suggestion-board/internal/ports/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresConnection opens the relational store and migrates the
// suggestions and votes tables.
func NewPostgresConnection(dburi string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dburi), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		AllowGlobalUpdate:                        false,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migration for the board's tables. The unique
// (suggestion_id, voter_email) index on votes is declared on the model and
// backs the one-vote-per-voter guarantee.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Suggestion{},
		&models.Vote{},
	)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("failed to migrate database: %v", err)
	}
	return nil
}
