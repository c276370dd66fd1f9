package service

import (
	"context"
	"fmt"
	"regexp"

	"suggestion-board/internal/ports/models"
	"suggestion-board/internal/server/repository"
	"suggestion-board/internal/youtube"
)

const (
	importRequesterName  = "YouTube Import"
	importRequesterEmail = "import@videotutorhub.com"
)

// videoIDPattern extracts the 11-character video id from the watch, embed
// and short-link URL forms.
var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// VideoCatalog is the read-only catalog collaborator the importer pulls
// from. *youtube.Client satisfies it.
type VideoCatalog interface {
	ResolveChannelID(ctx context.Context, handle string) (string, error)
	ChannelVideos(ctx context.Context, channelID string, maxResults int) ([]youtube.Video, error)
}

// ImportResult summarizes one bulk-import run.
type ImportResult struct {
	ChannelID string `json:"channel_id"`
	Fetched   int    `json:"fetched"`
	Imported  int    `json:"imported"`
	Skipped   int    `json:"skipped"`
}

type ImportService struct {
	catalog        VideoCatalog
	suggestionRepo *repository.SuggestionRepository
	channelHandles map[string]string // channel tag -> youtube handle
}

func NewImportService(catalog VideoCatalog, suggestionRepo *repository.SuggestionRepository, channelHandles map[string]string) *ImportService {
	return &ImportService{
		catalog:        catalog,
		suggestionRepo: suggestionRepo,
		channelHandles: channelHandles,
	}
}

// ImportChannel pulls a channel's uploads from the catalog and inserts each
// one not already referenced by an existing video_url as a published
// suggestion.
func (s *ImportService) ImportChannel(ctx context.Context, channel string, maxResults int) (*ImportResult, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("video catalog not configured: %w", models.ErrUpstream)
	}

	handle, ok := s.channelHandles[channel]
	if !ok {
		return nil, fmt.Errorf("unknown channel %q: %w", channel, models.ErrValidation)
	}
	if maxResults <= 0 {
		maxResults = 50
	}

	channelID, err := s.catalog.ResolveChannelID(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("resolve channel %q: %v: %w", handle, err, models.ErrUpstream)
	}

	videos, err := s.catalog.ChannelVideos(ctx, channelID, maxResults)
	if err != nil {
		return nil, fmt.Errorf("list channel %q videos: %v: %w", channelID, err, models.ErrUpstream)
	}

	existing, err := s.existingVideoIDs(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{ChannelID: channelID, Fetched: len(videos)}
	for _, video := range videos {
		if _, seen := existing[video.ID]; seen {
			result.Skipped++
			continue
		}

		description := video.Description
		if description == "" {
			description = "No description"
		}
		videoURL := video.WatchURL()

		suggestion := &models.Suggestion{
			Title:          video.Title,
			Description:    description,
			RequesterName:  importRequesterName,
			RequesterEmail: importRequesterEmail,
			Channel:        channel,
			Status:         models.StatusPublished,
			VideoURL:       &videoURL,
			VotesCount:     0,
		}
		if err := s.suggestionRepo.Create(ctx, suggestion); err != nil {
			return nil, fmt.Errorf("import video %s: %w", video.ID, err)
		}

		existing[video.ID] = struct{}{}
		result.Imported++
	}

	return result, nil
}

func (s *ImportService) existingVideoIDs(ctx context.Context) (map[string]struct{}, error) {
	urls, err := s.suggestionRepo.VideoURLs(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if match := videoIDPattern.FindStringSubmatch(u); match != nil {
			ids[match[1]] = struct{}{}
		}
	}
	return ids, nil
}
