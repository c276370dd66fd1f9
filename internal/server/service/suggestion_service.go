package service

import (
	"context"
	"fmt"
	"strings"

	"suggestion-board/internal/ports/models"
	"suggestion-board/internal/server/repository"
)

type SuggestionService struct {
	suggestionRepo *repository.SuggestionRepository
}

func NewSuggestionService(suggestionRepo *repository.SuggestionRepository) *SuggestionService {
	return &SuggestionService{suggestionRepo: suggestionRepo}
}

// CreateSuggestion validates a public submission and inserts it in the
// hidden state with a zero vote count.
func (s *SuggestionService) CreateSuggestion(ctx context.Context, req models.CreateSuggestionRequest) (*models.Suggestion, error) {
	for field, value := range map[string]string{
		"title":           req.Title,
		"description":     req.Description,
		"requester_name":  req.RequesterName,
		"requester_email": req.RequesterEmail,
		"channel":         req.Channel,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%s is required: %w", field, models.ErrValidation)
		}
	}

	suggestion := &models.Suggestion{
		Title:          req.Title,
		Description:    req.Description,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		Channel:        req.Channel,
		Status:         models.StatusHidden,
		VotesCount:     0,
	}

	if err := s.suggestionRepo.Create(ctx, suggestion); err != nil {
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}

	return suggestion, nil
}

// GetSuggestion retrieves a single suggestion by id.
func (s *SuggestionService) GetSuggestion(ctx context.Context, id string) (*models.Suggestion, error) {
	return s.suggestionRepo.GetByID(ctx, id)
}

// ListPublic lists suggestions in publicly visible states. A status filter
// outside the visible set yields an empty result rather than leaking
// admin-only rows.
func (s *SuggestionService) ListPublic(ctx context.Context, filter models.ListFilter) ([]*models.Suggestion, error) {
	statuses := models.VisibleStatuses
	if filter.Status != "" {
		if !filter.Status.Visible() {
			return []*models.Suggestion{}, nil
		}
		statuses = []models.Status{filter.Status}
	}
	filter.Status = ""
	return s.suggestionRepo.List(ctx, statuses, filter)
}

// ListAll lists suggestions in every state, for the admin dashboard.
func (s *SuggestionService) ListAll(ctx context.Context, filter models.ListFilter) ([]*models.Suggestion, error) {
	var statuses []models.Status
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, fmt.Errorf("unknown status %q: %w", filter.Status, models.ErrValidation)
		}
		statuses = []models.Status{filter.Status}
	}
	filter.Status = ""
	return s.suggestionRepo.List(ctx, statuses, filter)
}

// Transition moves a suggestion to a new lifecycle state. The target must
// be a legal successor of the current state; moving into published requires
// a video URL in the same operation.
func (s *SuggestionService) Transition(ctx context.Context, id string, req models.TransitionRequest) (*models.Suggestion, error) {
	if !req.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", req.Status, models.ErrValidation)
	}

	suggestion, err := s.suggestionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !suggestion.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%s -> %s: %w", suggestion.Status, req.Status, models.ErrInvalidTransition)
	}

	var videoURL *string
	if req.Status == models.StatusPublished {
		if strings.TrimSpace(req.VideoURL) == "" {
			return nil, fmt.Errorf("video_url is required to publish: %w", models.ErrMissingField)
		}
		videoURL = &req.VideoURL
	}

	if err := s.suggestionRepo.UpdateStatus(ctx, id, req.Status, videoURL); err != nil {
		return nil, err
	}

	suggestion.Status = req.Status
	if videoURL != nil {
		suggestion.VideoURL = videoURL
	}
	return suggestion, nil
}

// DeleteSuggestion removes a suggestion and cascades to its votes.
func (s *SuggestionService) DeleteSuggestion(ctx context.Context, id string) error {
	return s.suggestionRepo.Delete(ctx, id)
}
