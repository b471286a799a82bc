package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/observability"
)

const apiBase = "https://api.github.com"

// Repo is the subset of the GitHub repository payload the client exposes.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
	Language    string `json:"language"`
	CreatedAt   string `json:"created_at"`
}

// Client fetches public repository listings from the GitHub API.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
}

// NewClient returns a Client. token may be empty, in which case requests
// are unauthenticated and subject to GitHub's anonymous rate limits.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		baseURL:    apiBase,
	}
}

// Repos returns the user's five oldest public repositories. Results are
// cached per username; a missing GitHub account maps to a NOT_FOUND error.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo
	err := cache.Aside(ctx, cache.GithubKey(username), &repos, cache.GithubTTL, func() error {
		fetched, err := c.fetchRepos(ctx, username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) fetchRepos(ctx context.Context, username string) ([]Repo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devconnect")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.GithubRequests.WithLabelValues("error").Inc()
		return nil, models.NewInternalError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		observability.GithubRequests.WithLabelValues("not_found").Inc()
		return nil, models.NewNotFoundError("No Github profile found")
	case resp.StatusCode != http.StatusOK:
		observability.GithubRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, models.NewInternalError(fmt.Errorf("github: unexpected status %d: %s", resp.StatusCode, body))
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		observability.GithubRequests.WithLabelValues("error").Inc()
		return nil, models.NewInternalError(err)
	}

	observability.GithubRequests.WithLabelValues("ok").Inc()
	return repos, nil
}
