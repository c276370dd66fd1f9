package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"suggestion-board/configs"
	"suggestion-board/configs/database"
	"suggestion-board/internal/ports/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct horse battery staple"
)

func newTestServer(t *testing.T) *gin.Engine {
	return newTestServerWithDedup(t, "server")
}

func newTestServerWithDedup(t *testing.T, dedup string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	cfg := &configs.Config{
		JWTSecret:         "test-secret",
		JWTExpire:         time.Hour,
		AdminEmail:        testAdminEmail,
		AdminPasswordHash: string(hash),
		VoteDedup:         dedup,
		ChannelHandles:    map[string]string{"cbb": "OfficialChatbotBuilder"},
		RevealClicks:      5,
		RevealWindow:      3 * time.Second,
	}

	return New(cfg, db, nil, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeSuggestion(t *testing.T, w *httptest.ResponseRecorder) models.Suggestion {
	t.Helper()
	var s models.Suggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	return s
}

func decodeSuggestions(t *testing.T, w *httptest.ResponseRecorder) []models.Suggestion {
	t.Helper()
	var s []models.Suggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	return s
}

func adminLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	router := newTestServer(t)
	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/suggestions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/api/v1/admin/suggestions/some-id/status", "", map[string]string{"status": "pending_review"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmissionValidation(t *testing.T) {
	router := newTestServer(t)

	// Missing fields are rejected by binding before the service runs.
	w := doJSON(t, router, http.MethodPost, "/api/v1/suggestions", "", map[string]string{
		"title": "Only a title",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUIStatuses(t *testing.T) {
	router := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/ui/statuses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var descriptors map[string]models.StatusDescriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &descriptors))
	assert.Len(t, descriptors, len(models.AllStatuses))
}

func TestRevealEndpoint(t *testing.T) {
	router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/ui/reveal", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin_link_visible":false`)
}

// TestSuggestionLifecycle walks a suggestion through the full workflow:
// public submission, review, voting, progress, publication and deletion.
func TestSuggestionLifecycle(t *testing.T) {
	router := newTestServer(t)

	// Submit.
	w := doJSON(t, router, http.MethodPost, "/api/v1/suggestions", "", map[string]string{
		"title":           "Best Python tips",
		"description":     "A tour of lesser known Python tricks",
		"requester_name":  "Ada",
		"requester_email": "ada@example.com",
		"channel":         "cbb",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeSuggestion(t, w)
	assert.Equal(t, models.StatusHidden, created.Status)
	assert.Equal(t, 0, created.VotesCount)

	// Not publicly visible while hidden.
	w = doJSON(t, router, http.MethodGet, "/api/v1/suggestions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeSuggestions(t, w))

	token := adminLogin(t, router)

	// Visible to the admin.
	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/suggestions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeSuggestions(t, w), 1)

	statusPath := fmt.Sprintf("/api/v1/admin/suggestions/%s/status", created.ID)

	// hidden -> pending_review -> open_for_voting.
	for _, status := range []models.Status{models.StatusPendingReview, models.StatusOpenForVoting} {
		w = doJSON(t, router, http.MethodPatch, statusPath, token, map[string]string{"status": string(status)})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// Now publicly visible with zero votes.
	w = doJSON(t, router, http.MethodGet, "/api/v1/suggestions", "", nil)
	listed := decodeSuggestions(t, w)
	require.Len(t, listed, 1)
	assert.Equal(t, models.StatusOpenForVoting, listed[0].Status)
	assert.Equal(t, 0, listed[0].VotesCount)

	// Two distinct voters.
	votePath := fmt.Sprintf("/api/v1/suggestions/%s/votes", created.ID)
	for _, email := range []string{"one@example.com", "two@example.com"} {
		w = doJSON(t, router, http.MethodPost, votePath, "", map[string]string{"voter_email": email})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// A repeat voter is rejected and does not change the count.
	w = doJSON(t, router, http.MethodPost, votePath, "", map[string]string{"voter_email": "one@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/suggestions", "", nil)
	listed = decodeSuggestions(t, w)
	require.Len(t, listed, 1)
	assert.Equal(t, 2, listed[0].VotesCount)

	// Voting is closed once in progress.
	w = doJSON(t, router, http.MethodPatch, statusPath, token, map[string]string{"status": string(models.StatusInProgress)})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, votePath, "", map[string]string{"voter_email": "three@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Publishing without a video URL fails and leaves the state alone.
	w = doJSON(t, router, http.MethodPatch, statusPath, token, map[string]string{"status": string(models.StatusPublished)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPatch, statusPath, token, map[string]string{
		"status":    string(models.StatusPublished),
		"video_url": "https://youtube.com/watch?v=abc12345678",
	})
	require.Equal(t, http.StatusOK, w.Code)
	published := decodeSuggestion(t, w)
	require.NotNil(t, published.VideoURL)
	assert.Equal(t, "https://youtube.com/watch?v=abc12345678", *published.VideoURL)

	// Still carries its votes after publication.
	w = doJSON(t, router, http.MethodGet, "/api/v1/suggestions", "", nil)
	listed = decodeSuggestions(t, w)
	require.Len(t, listed, 1)
	assert.Equal(t, models.StatusPublished, listed[0].Status)
	assert.Equal(t, 2, listed[0].VotesCount)

	// Delete cascades and empties the board.
	w = doJSON(t, router, http.MethodDelete, "/api/v1/admin/suggestions/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/suggestions", token, nil)
	assert.Empty(t, decodeSuggestions(t, w))
}

// openSuggestion submits a suggestion and walks it to open_for_voting.
func openSuggestion(t *testing.T, router *gin.Engine, token, title string) models.Suggestion {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/suggestions", "", map[string]string{
		"title":           title,
		"description":     "A description",
		"requester_name":  "Ada",
		"requester_email": "ada@example.com",
		"channel":         "cbb",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeSuggestion(t, w)

	statusPath := fmt.Sprintf("/api/v1/admin/suggestions/%s/status", created.ID)
	for _, status := range []models.Status{models.StatusPendingReview, models.StatusOpenForVoting} {
		w = doJSON(t, router, http.MethodPatch, statusPath, token, map[string]string{"status": string(status)})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	return created
}

func TestClientModeVoteWithoutEmail(t *testing.T) {
	router := newTestServerWithDedup(t, "client")
	token := adminLogin(t, router)
	created := openSuggestion(t, router, token, "Client tracked voting")

	// Client mode votes carry no identity; the server increments blindly.
	votePath := fmt.Sprintf("/api/v1/suggestions/%s/votes", created.ID)
	for i := 0; i < 2; i++ {
		w := doJSON(t, router, http.MethodPost, votePath, "", map[string]string{})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/suggestions", "", nil)
	listed := decodeSuggestions(t, w)
	require.Len(t, listed, 1)
	assert.Equal(t, 2, listed[0].VotesCount)
}

func TestServerModeVoteRequiresEmail(t *testing.T) {
	router := newTestServer(t)
	token := adminLogin(t, router)
	created := openSuggestion(t, router, token, "Server tracked voting")

	votePath := fmt.Sprintf("/api/v1/suggestions/%s/votes", created.ID)

	w := doJSON(t, router, http.MethodPost, votePath, "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A malformed email is still rejected at the binding layer.
	w = doJSON(t, router, http.MethodPost, votePath, "", map[string]string{"voter_email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimilarEndpoint(t *testing.T) {
	router := newTestServer(t)
	token := adminLogin(t, router)

	// Seed a visible suggestion through the API.
	w := doJSON(t, router, http.MethodPost, "/api/v1/suggestions", "", map[string]string{
		"title":           "Building a Chatbot from Scratch",
		"description":     "All the pieces",
		"requester_name":  "Ada",
		"requester_email": "ada@example.com",
		"channel":         "cbb",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeSuggestion(t, w)

	statusPath := fmt.Sprintf("/api/v1/admin/suggestions/%s/status", created.ID)
	for _, status := range []models.Status{models.StatusPendingReview, models.StatusOpenForVoting} {
		w = doJSON(t, router, http.MethodPatch, statusPath, token, map[string]string{"status": string(status)})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/suggestions/similar?title=How+to+build+a+chatbot", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decodeSuggestions(t, w)
	require.Len(t, results, 1)
	assert.Equal(t, created.ID, results[0].ID)

	// Stop-word-only titles return nothing.
	w = doJSON(t, router, http.MethodGet, "/api/v1/suggestions/similar?title=the+a+an", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeSuggestions(t, w))
}
