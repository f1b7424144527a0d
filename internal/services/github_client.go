package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GitHubRepo is the subset of the repository payload the import needs
type GitHubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	Homepage    string `json:"homepage"`
	Language    string `json:"language"`
	Fork        bool   `json:"fork"`
}

// GitHubClient fetches public repository data for the import endpoint
type GitHubClient interface {
	ListRepos(ctx context.Context, username string) ([]GitHubRepo, error)
	ListRepoLanguages(ctx context.Context, username, repo string) ([]string, error)
}

// githubHTTPClient talks to the GitHub REST API with an optional
// server-side token for higher rate limits
type githubHTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewGitHubClient creates a GitHub API client
func NewGitHubClient(baseURL, token string) GitHubClient {
	return &githubHTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *githubHTTPClient) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github responded with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}

func (c *githubHTTPClient) ListRepos(ctx context.Context, username string) ([]GitHubRepo, error) {
	url := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", c.baseURL, username)

	var repos []GitHubRepo
	if err := c.get(ctx, url, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *githubHTTPClient) ListRepoLanguages(ctx context.Context, username, repo string) ([]string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/languages", c.baseURL, username, repo)

	var byBytes map[string]int64
	if err := c.get(ctx, url, &byBytes); err != nil {
		return nil, err
	}

	languages := make([]string, 0, len(byBytes))
	for lang := range byBytes {
		languages = append(languages, lang)
	}
	return languages, nil
}
