package service

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"suggestion-board/internal/ports/models"
	"suggestion-board/internal/server/repository"
)

// Duplicate detection is a keyword-overlap heuristic, advisory only: it
// warns submitters about likely duplicates but never blocks a submission.
// False positives and false negatives are both expected.

const (
	exactMatchScore   = 10
	partialMatchScore = 3
	minSimilarScore   = 10 // at least one exact token match
	maxSimilarResults = 5
	minTokenLength    = 3
)

// stopWords are articles, auxiliary verbs, question words and pronouns too
// common to signal similarity.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"how": {}, "what": {}, "why": {}, "when": {}, "where": {}, "who": {},
	"which": {}, "this": {}, "that": {}, "these": {}, "those": {}, "is": {},
	"are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {},
	"might": {}, "must": {}, "can": {}, "your": {}, "you": {}, "use": {},
	"using": {}, "make": {}, "get": {}, "into": {},
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]`)

// tokenize lowercases s, strips everything outside [a-z0-9\s] and splits on
// whitespace.
func tokenize(s string) []string {
	cleaned := nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
	return strings.Fields(cleaned)
}

// queryTokens tokenizes a candidate title and drops short tokens and stop
// words. Only the query side is filtered; existing titles keep every token.
func queryTokens(title string) []string {
	var tokens []string
	for _, token := range tokenize(title) {
		if len(token) < minTokenLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// scoreTitle awards each query token 10 points for an exact title-token
// match, or 3 for a substring match in either direction. A token scores at
// most once.
func scoreTitle(query []string, title string) int {
	titleTokens := tokenize(title)

	score := 0
	for _, word := range query {
		exact := false
		for _, tt := range titleTokens {
			if word == tt {
				exact = true
				break
			}
		}
		if exact {
			score += exactMatchScore
			continue
		}
		for _, tt := range titleTokens {
			if strings.Contains(tt, word) || strings.Contains(word, tt) {
				score += partialMatchScore
				break
			}
		}
	}
	return score
}

type scoredSuggestion struct {
	suggestion *models.Suggestion
	score      int
}

type SimilarityService struct {
	suggestionRepo *repository.SuggestionRepository
}

func NewSimilarityService(suggestionRepo *repository.SuggestionRepository) *SimilarityService {
	return &SimilarityService{suggestionRepo: suggestionRepo}
}

// FindSimilar returns up to 5 publicly visible suggestions whose titles
// overlap the candidate title, most similar first. A title with no
// meaningful tokens returns an empty result without touching the store.
func (s *SimilarityService) FindSimilar(ctx context.Context, candidateTitle string) ([]*models.Suggestion, error) {
	query := queryTokens(candidateTitle)
	if len(query) == 0 {
		return []*models.Suggestion{}, nil
	}

	suggestions, err := s.suggestionRepo.List(ctx, models.VisibleStatuses, models.ListFilter{})
	if err != nil {
		return nil, err
	}

	var scored []scoredSuggestion
	for _, suggestion := range suggestions {
		if score := scoreTitle(query, suggestion.Title); score >= minSimilarScore {
			scored = append(scored, scoredSuggestion{suggestion: suggestion, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > maxSimilarResults {
		scored = scored[:maxSimilarResults]
	}

	results := make([]*models.Suggestion, len(scored))
	for i, sc := range scored {
		results[i] = sc.suggestion
	}
	return results, nil
}
