package repository

import (
	"context"
	"errors"
	"fmt"

	"suggestion-board/internal/ports/models"

	"gorm.io/gorm"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// CastVote records a vote and bumps the suggestion's denormalized counter.
// The duplicate check, the vote insert and the increment run in a single
// transaction so two concurrent votes from the same voter cannot both pass
// the check before either write lands.
func (r *VoteRepository) CastVote(ctx context.Context, suggestionID, voterEmail string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("suggestion_id = ? AND voter_email = ?", suggestionID, voterEmail).
			First(&existing).Error
		if err == nil {
			return fmt.Errorf("suggestion %s voter %s: %w", suggestionID, voterEmail, models.ErrDuplicateVote)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote := &models.Vote{SuggestionID: suggestionID, VoterEmail: voterEmail}
		if err := tx.Create(vote).Error; err != nil {
			// The unique index backstops the check under concurrency.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("suggestion %s voter %s: %w", suggestionID, voterEmail, models.ErrDuplicateVote)
			}
			return err
		}

		return tx.Model(&models.Suggestion{}).Where("id = ?", suggestionID).
			UpdateColumn("votes_count", gorm.Expr("votes_count + 1")).Error
	})
}

// IncrementCount blindly bumps the counter without touching the ledger.
// Only the legacy client-tracked dedup mode uses this; a cleared client
// state or a second device permits duplicate votes.
func (r *VoteRepository) IncrementCount(ctx context.Context, suggestionID string) error {
	return r.db.WithContext(ctx).Model(&models.Suggestion{}).Where("id = ?", suggestionID).
		UpdateColumn("votes_count", gorm.Expr("votes_count + 1")).Error
}

// CountBySuggestion returns the number of ledger rows for a suggestion.
func (r *VoteRepository) CountBySuggestion(ctx context.Context, suggestionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("suggestion_id = ?", suggestionID).Count(&count).Error
	return count, err
}

// HasVoted reports whether the voter already has a ledger row for the
// suggestion.
func (r *VoteRepository) HasVoted(ctx context.Context, suggestionID, voterEmail string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("suggestion_id = ? AND voter_email = ?", suggestionID, voterEmail).
		Count(&count).Error
	return count > 0, err
}
