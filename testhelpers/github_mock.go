package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// Login is the authenticated user
	Login string
	// Repos maps repository names owned by Login to their data
	Repos map[string]*github.Repository
	// CreatedRepos records repositories created through the API
	CreatedRepos []*github.Repository
	// FailCreate makes repository creation return a server error
	FailCreate bool

	mu sync.Mutex
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Login: "octocat",
		Repos: make(map[string]*github.Repository),
	}
}

// NewMockGitHubServer creates an httptest server that mocks the repository endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /user", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, &github.User{Login: github.String(config.Login)})
	})

	mux.HandleFunc("POST /user/repos", func(w http.ResponseWriter, r *http.Request) {
		if config.FailCreate {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server Error"})
			return
		}

		var req github.Repository
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		config.mu.Lock()
		defer config.mu.Unlock()

		name := req.GetName()
		if _, ok := config.Repos[name]; ok {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "Repository creation failed.",
				"errors": []map[string]string{{
					"resource": "Repository",
					"code":     "custom",
					"field":    "name",
					"message":  "name already exists on this account",
				}},
			})
			return
		}

		repo := mockRepository(config.Login, name, req.GetDescription(), req.GetPrivate())
		config.Repos[name] = repo
		config.CreatedRepos = append(config.CreatedRepos, repo)
		writeJSON(w, http.StatusCreated, repo)
	})

	mux.HandleFunc("GET /repos/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
		config.mu.Lock()
		defer config.mu.Unlock()

		repo, ok := config.Repos[r.PathValue("repo")]
		if !ok || r.PathValue("owner") != config.Login {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, repo)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// NewMockGitHubClient returns a go-github client pointed at a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) *github.Client {
	t.Helper()

	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL
	return client
}

func mockRepository(owner, name, description string, private bool) *github.Repository {
	return &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(private),
		Owner:       &github.User{Login: github.String(owner)},
		CloneURL:    github.String(fmt.Sprintf("https://github.com/%s/%s.git", owner, name)),
		SSHURL:      github.String(fmt.Sprintf("git@github.com:%s/%s.git", owner, name)),
		HTMLURL:     github.String(fmt.Sprintf("https://github.com/%s/%s", owner, name)),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
