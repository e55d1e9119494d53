package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := NewClient(context.Background(), Config{
		Token:      "test-token",
		Owner:      "test_owner",
		Name:       "test_repo",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestCreateIssue(t *testing.T) {
	var got struct {
		Title     string   `json:"title"`
		Body      string   `json:"body"`
		Labels    []string `json:"labels"`
		Assignees []string `json:"assignees"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/test_owner/test_repo/issues", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"number": 42, "html_url": "https://github.com/test_owner/test_repo/issues/42"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	created, err := client.CreateIssue(context.Background(), domain.ComposedIssue{
		Title:     "Something broke",
		Body:      "details",
		Labels:    []string{"user-reported", "bug"},
		Assignees: []string{"user1"},
	})

	require.NoError(t, err)
	assert.Equal(t, 42, created.Number)
	assert.Equal(t, "https://github.com/test_owner/test_repo/issues/42", created.URL)

	assert.Equal(t, "Something broke", got.Title)
	assert.Equal(t, "details", got.Body)
	assert.Equal(t, []string{"user-reported", "bug"}, got.Labels)
	assert.Equal(t, []string{"user1"}, got.Assignees)
}

func TestCreateIssue_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "Validation Failed"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	_, err := client.CreateIssue(context.Background(), domain.ComposedIssue{Title: "t"})

	var trackerErr *domain.TrackerError
	require.ErrorAs(t, err, &trackerErr)
	assert.Contains(t, trackerErr.Err.Error(), "Validation Failed")
}

func TestCheckRepository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/test_owner/test_repo", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"full_name": "test_owner/test_repo"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	require.NoError(t, client.CheckRepository(context.Background()))
}

func TestCheckRepository_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	err := client.CheckRepository(context.Background())

	var trackerErr *domain.TrackerError
	require.ErrorAs(t, err, &trackerErr)
}

func TestRepository(t *testing.T) {
	client, err := NewClient(context.Background(), Config{
		Token: "test-token",
		Owner: "test_owner",
		Name:  "test_repo",
	})
	require.NoError(t, err)

	assert.Equal(t, "test_owner/test_repo", client.Repository())
}
