package service

import (
	"context"
	"testing"

	"suggestion-board/configs/database"
	"suggestion-board/internal/ports/models"
	"suggestion-board/internal/server/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with the board schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

// seedSuggestion inserts a suggestion directly through the repository.
func seedSuggestion(t *testing.T, db *gorm.DB, title string, status models.Status) *models.Suggestion {
	t.Helper()

	suggestion := &models.Suggestion{
		Title:          title,
		Description:    "seeded",
		RequesterName:  "Seeder",
		RequesterEmail: "seed@example.com",
		Channel:        "cbb",
		Status:         status,
	}
	require.NoError(t, repository.NewSuggestionRepository(db).Create(context.Background(), suggestion))
	return suggestion
}
