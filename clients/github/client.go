package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fbbackend/clients"
	"fbbackend/core"
	"fbbackend/models"
)

const (
	authorizeURL = "https://github.com/login/oauth/authorize"
	tokenURL     = "https://github.com/login/oauth/access_token"
	apiBaseURL   = "https://api.github.com"

	// Scopes requested on every login
	defaultScopes = "repo,user"
)

// GitHubClient implements the clients.GitHubClient interface
type GitHubClient struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	redirectURI  string

	// Endpoint bases, overridable in tests
	tokenEndpoint string
	apiBase       string
}

// OAuth token response; error fields are populated when the provider
// rejects the exchange even with a 200 status
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	Scope            string `json:"scope"`
	TokenType        string `json:"token_type"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type userResponse struct {
	ID        *int64  `json:"id"`
	Login     *string `json:"login"`
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	AvatarURL string  `json:"avatar_url"`
}

type repoResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
	CloneURL        string  `json:"clone_url"`
	Private         bool    `json:"private"`
	Language        *string `json:"language"`
	StargazersCount int     `json:"stargazers_count"`
	UpdatedAt       string  `json:"updated_at"`
}

type commitResponse struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// NewGitHubClient creates a new GitHub client with the provided OAuth configuration
func NewGitHubClient(clientID, clientSecret, redirectURI string) clients.GitHubClient {
	return &GitHubClient{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		clientID:      clientID,
		clientSecret:  clientSecret,
		redirectURI:   redirectURI,
		tokenEndpoint: tokenURL,
		apiBase:       apiBaseURL,
	}
}

// BuildAuthorizationURL builds the provider authorization URL with the
// configured client id, fixed scope set and redirect URI
func (c *GitHubClient) BuildAuthorizationURL() string {
	params := url.Values{
		"client_id":    {c.clientID},
		"scope":        {defaultScopes},
		"redirect_uri": {c.redirectURI},
	}
	return authorizeURL + "?" + params.Encode()
}

// ExchangeCodeForAccessToken exchanges an OAuth authorization code for an access token
func (c *GitHubClient) ExchangeCodeForAccessToken(
	ctx context.Context,
	code string,
) (*models.GitHubOAuthToken, error) {
	data := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"code":          {code},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		c.tokenEndpoint,
		bytes.NewBufferString(data.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &core.UpstreamAuthError{
			Message: fmt.Sprintf("token exchange failed with status %d", resp.StatusCode),
		}
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// GitHub reports exchange failures with a 200 status and an error field
	if tokenResp.Error != "" {
		msg := tokenResp.ErrorDescription
		if msg == "" {
			msg = tokenResp.Error
		}
		return nil, &core.UpstreamAuthError{Message: msg}
	}

	if tokenResp.AccessToken == "" {
		return nil, &core.UpstreamAuthError{Message: "no access token in response"}
	}

	return &models.GitHubOAuthToken{
		AccessToken: tokenResp.AccessToken,
		Scope:       tokenResp.Scope,
		TokenType:   tokenResp.TokenType,
	}, nil
}

// GetAuthenticatedUser fetches the provider's "current user" profile.
// A missing id or login is fatal for the attempt.
func (c *GitHubClient) GetAuthenticatedUser(
	ctx context.Context,
	accessToken string,
) (*models.GitHubUser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.apiBase+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &core.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to fetch user profile: %s", string(body)),
		}
	}

	var userResp userResponse
	if err := json.NewDecoder(resp.Body).Decode(&userResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if userResp.ID == nil || userResp.Login == nil || *userResp.Login == "" {
		return nil, &core.UpstreamDataError{Message: "user profile missing id or login"}
	}

	return &models.GitHubUser{
		ID:        *userResp.ID,
		Login:     *userResp.Login,
		Email:     userResp.Email,
		Name:      userResp.Name,
		AvatarURL: userResp.AvatarURL,
	}, nil
}

// ListUserRepositories lists the authenticated user's repositories with the
// stored bearer token attached. Single attempt, no retry.
func (c *GitHubClient) ListUserRepositories(
	ctx context.Context,
	accessToken string,
) ([]models.GitHubRepository, error) {
	reqURL := fmt.Sprintf("%s/user/repos?sort=updated&per_page=100", c.apiBase)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &core.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "failed to fetch repositories",
		}
	}

	var repos []repoResponse
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := make([]models.GitHubRepository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, models.GitHubRepository{
			ID:              repo.ID,
			Name:            repo.Name,
			FullName:        repo.FullName,
			Description:     repo.Description,
			HTMLURL:         repo.HTMLURL,
			CloneURL:        repo.CloneURL,
			Private:         repo.Private,
			Language:        repo.Language,
			StargazersCount: repo.StargazersCount,
			UpdatedAt:       repo.UpdatedAt,
		})
	}

	return result, nil
}

// ListRepositoryCommits lists recent commits for owner/repo with the stored
// bearer token attached
func (c *GitHubClient) ListRepositoryCommits(
	ctx context.Context,
	accessToken, owner, repo string,
) ([]models.GitHubCommit, error) {
	reqURL := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=30", c.apiBase, url.PathEscape(owner), url.PathEscape(repo))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commits: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &core.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "failed to fetch commits",
		}
	}

	var commits []commitResponse
	if err := json.NewDecoder(resp.Body).Decode(&commits); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := make([]models.GitHubCommit, 0, len(commits))
	for _, commit := range commits {
		result = append(result, models.GitHubCommit{
			SHA:     commit.SHA,
			Message: commit.Commit.Message,
			Author:  commit.Commit.Author.Name,
			Date:    commit.Commit.Author.Date,
			URL:     commit.HTMLURL,
		})
	}

	return result, nil
}
