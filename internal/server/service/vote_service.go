package service

import (
	"context"
	"fmt"

	"suggestion-board/internal/ports/models"
	"suggestion-board/internal/server/repository"
)

// DedupMode selects how duplicate votes are prevented.
type DedupMode string

const (
	// DedupServer enforces one vote per (suggestion, voter email) in the
	// ledger. Canonical.
	DedupServer DedupMode = "server"

	// DedupClient trusts the caller to track which suggestions it already
	// voted for; the server blindly increments. Cosmetic protection only: a
	// cleared client state or a second device permits duplicate votes. Kept
	// for deployments that ran the legacy workflow.
	DedupClient DedupMode = "client"
)

type VoteService struct {
	voteRepo       *repository.VoteRepository
	suggestionRepo *repository.SuggestionRepository
	mode           DedupMode
}

func NewVoteService(voteRepo *repository.VoteRepository, suggestionRepo *repository.SuggestionRepository, mode DedupMode) *VoteService {
	if mode == "" {
		mode = DedupServer
	}
	return &VoteService{
		voteRepo:       voteRepo,
		suggestionRepo: suggestionRepo,
		mode:           mode,
	}
}

// CastVote records a vote for a suggestion that is open for voting. In
// server mode voterEmail identifies the voter for deduplication; in client
// mode it is ignored and the counter is incremented unconditionally.
func (s *VoteService) CastVote(ctx context.Context, suggestionID, voterEmail string) error {
	suggestion, err := s.suggestionRepo.GetByID(ctx, suggestionID)
	if err != nil {
		return err
	}

	if !suggestion.Status.Votable() {
		return fmt.Errorf("suggestion %s is %s: %w", suggestionID, suggestion.Status, models.ErrInvalidState)
	}

	if s.mode == DedupClient {
		return s.voteRepo.IncrementCount(ctx, suggestionID)
	}

	if voterEmail == "" {
		return fmt.Errorf("voter_email is required: %w", models.ErrValidation)
	}

	return s.voteRepo.CastVote(ctx, suggestionID, voterEmail)
}

// HasVoted reports whether the voter already has a ledger entry for the
// suggestion. Client UIs use this to disable the vote button up front.
func (s *VoteService) HasVoted(ctx context.Context, suggestionID, voterEmail string) (bool, error) {
	return s.voteRepo.HasVoted(ctx, suggestionID, voterEmail)
}
