package repository

import (
	"context"
	"errors"
	"fmt"

	"suggestion-board/internal/ports/models"

	"gorm.io/gorm"
)

type SuggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// Create inserts a new suggestion
func (r *SuggestionRepository) Create(ctx context.Context, suggestion *models.Suggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

// GetByID retrieves a suggestion by id
func (r *SuggestionRepository) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	err := r.db.WithContext(ctx).First(&suggestion, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("suggestion %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// List retrieves suggestions restricted to the given statuses, applying the
// filter's channel, search and sort options.
func (r *SuggestionRepository) List(ctx context.Context, statuses []models.Status, filter models.ListFilter) ([]*models.Suggestion, error) {
	query := r.db.WithContext(ctx).Model(&models.Suggestion{})

	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if filter.Channel != "" {
		query = query.Where("channel = ?", filter.Channel)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	switch filter.Sort {
	case "recent":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("votes_count DESC").Order("created_at DESC")
	}

	var suggestions []*models.Suggestion
	if err := query.Find(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}

// UpdateStatus sets the status and, when non-nil, the video URL of a
// suggestion.
func (r *SuggestionRepository) UpdateStatus(ctx context.Context, id string, status models.Status, videoURL *string) error {
	updates := map[string]interface{}{"status": status}
	if videoURL != nil {
		updates["video_url"] = *videoURL
	}

	result := r.db.WithContext(ctx).Model(&models.Suggestion{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("suggestion %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// Delete removes a suggestion and its votes. Votes go first so a failure
// mid-way never leaves orphaned vote rows pointing at a missing suggestion.
func (r *SuggestionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("suggestion_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Suggestion{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("suggestion %s: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

// VideoURLs returns every non-null video_url currently stored.
func (r *SuggestionRepository) VideoURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where("video_url IS NOT NULL").
		Pluck("video_url", &urls).Error
	if err != nil {
		return nil, err
	}
	return urls, nil
}
