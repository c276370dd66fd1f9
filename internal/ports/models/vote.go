package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is a single endorsement of a suggestion by an identified voter. The
// (suggestion_id, voter_email) pair is unique: one vote per voter per
// suggestion.
type Vote struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SuggestionID string    `gorm:"column:suggestion_id;type:uuid;not null;uniqueIndex:idx_votes_suggestion_voter" json:"suggestion_id"`
	VoterEmail   string    `gorm:"column:voter_email;size:255;not null;uniqueIndex:idx_votes_suggestion_voter" json:"voter_email"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// CastVoteRequest defines the input for casting a vote. The email is
// optional at the binding layer: in client-tracked dedup mode votes carry no
// identity, and in server mode the vote service rejects an empty email.
type CastVoteRequest struct {
	VoterEmail string `json:"voter_email" binding:"omitempty,email"`
}
