// Package youtube is a read-only client for the YouTube Data API v3,
// covering the slice the suggestion board needs: resolving a channel handle
// to an id and listing the channel's uploads with enough metadata to import
// them as published suggestions.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// VideoType classifies an upload by duration and live status.
type VideoType string

const (
	TypeShort VideoType = "short"
	TypeVideo VideoType = "video"
	TypeLive  VideoType = "live"
)

// Video is one uploaded item of a channel.
type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PublishedAt     string    `json:"published_at"`
	Thumbnail       string    `json:"thumbnail"`
	Duration        string    `json:"duration"`
	DurationSeconds int       `json:"duration_seconds"`
	Type            VideoType `json:"type"`
}

// WatchURL returns the canonical watch link for the video.
func (v Video) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts an ISO 8601 duration like PT1H2M3S to total
// seconds. Unparseable input yields 0.
func ParseDuration(duration string) int {
	match := durationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	return hours*3600 + minutes*60 + seconds
}

// truncateRunes caps s at limit characters, never splitting a multi-byte
// rune. Descriptions from the API are arbitrary user text.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Classify maps duration and live status to a video type: anything flagged
// live is live, anything at most 60 seconds is a short, the rest are videos.
func Classify(durationSeconds int, isLive bool) VideoType {
	if isLive {
		return TypeLive
	}
	if durationSeconds <= 60 {
		return TypeShort
	}
	return TypeVideo
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root. Tests use it to
// target an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON issues a GET with bounded retry. Every call in this package is
// read-only, so retrying cannot double an effect.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	const attempts = 3
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 250 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("youtube api returned %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("youtube api returned %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode youtube response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("youtube api unreachable after %d attempts: %w", attempts, lastErr)
}

type channelsResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		LiveStreamingDetails *struct{} `json:"liveStreamingDetails"`
	} `json:"items"`
}

// ResolveChannelID resolves a channel handle like "OfficialChatbotBuilder"
// to its channel id.
func (c *Client) ResolveChannelID(ctx context.Context, handle string) (string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("forHandle", handle)

	var resp channelsResponse
	if err := c.getJSON(ctx, "/channels", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("no channel found for handle %q", handle)
	}
	return resp.Items[0].ID, nil
}

// ChannelVideos lists up to maxResults uploads of a channel, newest first,
// following pagination via the API's continuation token and enriching each
// item with duration and live status.
func (c *Client) ChannelVideos(ctx context.Context, channelID string, maxResults int) ([]Video, error) {
	uploadsID, err := c.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	videos, order, err := c.playlistVideos(ctx, uploadsID, maxResults)
	if err != nil {
		return nil, err
	}

	if err := c.fillDetails(ctx, videos, order); err != nil {
		return nil, err
	}

	result := make([]Video, 0, len(order))
	for _, id := range order {
		v := videos[id]
		// Items missing from the details response were deleted or
		// made private between the two calls; skip them.
		if v.Duration == "" {
			continue
		}
		result = append(result, *v)
	}
	return result, nil
}

func (c *Client) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)

	var resp channelsResponse
	if err := c.getJSON(ctx, "/channels", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("no channel found for id %q", channelID)
	}
	uploads := resp.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if uploads == "" {
		return "", fmt.Errorf("channel %q has no uploads playlist", channelID)
	}
	return uploads, nil
}

func (c *Client) playlistVideos(ctx context.Context, playlistID string, maxResults int) (map[string]*Video, []string, error) {
	videos := make(map[string]*Video)
	var order []string
	pageToken := ""

	for len(order) < maxResults {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", "50")
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var resp playlistItemsResponse
		if err := c.getJSON(ctx, "/playlistItems", params, &resp); err != nil {
			return nil, nil, err
		}
		if len(resp.Items) == 0 {
			break
		}

		for _, item := range resp.Items {
			if len(order) >= maxResults {
				break
			}
			videoID := item.Snippet.ResourceID.VideoID
			thumbnail := item.Snippet.Thumbnails.High.URL
			if thumbnail == "" {
				thumbnail = item.Snippet.Thumbnails.Default.URL
			}
			description := truncateRunes(item.Snippet.Description, 500)
			videos[videoID] = &Video{
				ID:          videoID,
				Title:       item.Snippet.Title,
				Description: description,
				PublishedAt: item.Snippet.PublishedAt,
				Thumbnail:   thumbnail,
			}
			order = append(order, videoID)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return videos, order, nil
}

// fillDetails fetches duration and live status in batches of 50, the API's
// per-request id cap.
func (c *Client) fillDetails(ctx context.Context, videos map[string]*Video, order []string) error {
	for start := 0; start < len(order); start += 50 {
		end := start + 50
		if end > len(order) {
			end = len(order)
		}

		params := url.Values{}
		params.Set("part", "contentDetails,liveStreamingDetails")
		params.Set("id", strings.Join(order[start:end], ","))

		var resp videosResponse
		if err := c.getJSON(ctx, "/videos", params, &resp); err != nil {
			return err
		}

		for _, item := range resp.Items {
			v, ok := videos[item.ID]
			if !ok {
				continue
			}
			duration := item.ContentDetails.Duration
			if duration == "" {
				duration = "PT0S"
			}
			v.Duration = duration
			v.DurationSeconds = ParseDuration(duration)
			v.Type = Classify(v.DurationSeconds, item.LiveStreamingDetails != nil)
		}
	}
	return nil
}
