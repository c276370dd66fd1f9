package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a suggestion. New submissions always
// start hidden and only admin actions move them forward.
type Status string

const (
	StatusHidden        Status = "hidden"
	StatusPendingReview Status = "pending_review"
	StatusOpenForVoting Status = "open_for_voting"
	StatusInProgress    Status = "in_progress"
	StatusPublished     Status = "published"
)

// AllStatuses lists every lifecycle state, in workflow order.
var AllStatuses = []Status{
	StatusHidden,
	StatusPendingReview,
	StatusOpenForVoting,
	StatusInProgress,
	StatusPublished,
}

// transitions maps each state to its legal successors. Forward edges walk
// the review workflow; reverse edges let an admin send a suggestion back one
// step. Published is terminal.
var transitions = map[Status][]Status{
	StatusHidden:        {StatusPendingReview},
	StatusPendingReview: {StatusOpenForVoting, StatusHidden},
	StatusOpenForVoting: {StatusInProgress, StatusPendingReview},
	StatusInProgress:    {StatusPublished, StatusOpenForVoting},
	StatusPublished:     {},
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether target is a legal successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Visible reports whether suggestions in this state appear on the public
// listing. Hidden and pending_review are admin-only.
func (s Status) Visible() bool {
	switch s {
	case StatusOpenForVoting, StatusInProgress, StatusPublished:
		return true
	}
	return false
}

// Votable reports whether suggestions in this state accept votes.
func (s Status) Votable() bool {
	return s == StatusOpenForVoting
}

// VisibleStatuses is the public listing filter set.
var VisibleStatuses = []Status{StatusOpenForVoting, StatusInProgress, StatusPublished}

// StatusDescriptor is the display metadata for a lifecycle state.
type StatusDescriptor struct {
	Label string `json:"label"`
	Badge string `json:"badge"`
}

// Descriptor returns the display descriptor for s. The switch is exhaustive
// over AllStatuses; models tests fail if a new state is added without one.
func (s Status) Descriptor() StatusDescriptor {
	switch s {
	case StatusHidden:
		return StatusDescriptor{Label: "Hidden", Badge: "gray"}
	case StatusPendingReview:
		return StatusDescriptor{Label: "Pending Review", Badge: "orange"}
	case StatusOpenForVoting:
		return StatusDescriptor{Label: "Open for Voting", Badge: "teal"}
	case StatusInProgress:
		return StatusDescriptor{Label: "In Progress", Badge: "yellow"}
	case StatusPublished:
		return StatusDescriptor{Label: "Published", Badge: "green"}
	}
	return StatusDescriptor{}
}

// Suggestion is a public video request moving through the review workflow.
type Suggestion struct {
	ID             string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"column:title;size:255;not null" json:"title"`
	Description    string    `gorm:"column:description;type:text;not null" json:"description"`
	RequesterName  string    `gorm:"column:requester_name;size:255;not null" json:"requester_name"`
	RequesterEmail string    `gorm:"column:requester_email;size:255;not null" json:"requester_email"`
	Channel        string    `gorm:"column:channel;size:64;not null;index" json:"channel"`
	Status         Status    `gorm:"column:status;size:32;not null;index" json:"status"`
	VideoURL       *string   `gorm:"column:video_url;size:512" json:"video_url"`
	VotesCount     int       `gorm:"column:votes_count;not null;default:0" json:"votes_count"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for Suggestion
func (Suggestion) TableName() string {
	return "suggestions"
}

func (s *Suggestion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// CreateSuggestionRequest defines the input for submitting a suggestion
type CreateSuggestionRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description" binding:"required"`
	RequesterName  string `json:"requester_name" binding:"required"`
	RequesterEmail string `json:"requester_email" binding:"required,email"`
	Channel        string `json:"channel" binding:"required"`
}

// TransitionRequest defines the input for an admin status change. VideoURL
// is only consulted when the target status is published.
type TransitionRequest struct {
	Status   Status `json:"status" binding:"required"`
	VideoURL string `json:"video_url"`
}

// ListFilter narrows a suggestion listing.
type ListFilter struct {
	Status  Status
	Channel string
	Search  string
	Sort    string // "votes" (default) or "recent"
}
