package api

import (
	"time"
)

// AuthenticatedUser represents the provider identity returned on a
// successful OAuth callback
type AuthenticatedUser struct {
	GitHubID    int64   `json:"github_id"`
	GitHubLogin string  `json:"github_login"`
	Email       *string `json:"email"`
	Name        *string `json:"name"`
	AvatarURL   string  `json:"avatar_url"`
}

// GitHubAccountSummary represents stored account data returned by the API.
// The access token is never part of any API model.
type GitHubAccountSummary struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	GitHubLogin string `json:"github_login"`
	Scope       string `json:"scope"`
}

// GitHubAccountDetail represents the full stored account summary for the
// user-info endpoint, still without the token
type GitHubAccountDetail struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	GitHubID    int64     `json:"github_id"`
	GitHubLogin string    `json:"github_login"`
	Scope       string    `json:"scope"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuthResponse is the JSON payload for a successful OAuth callback
type AuthResponse struct {
	Success       bool                  `json:"success"`
	Message       string                `json:"message"`
	User          *AuthenticatedUser    `json:"user"`
	GitHubAccount *GitHubAccountSummary `json:"github_account"`
}

// AuthStatusResponse reports whether the OAuth integration is configured
type AuthStatusResponse struct {
	Configured      bool   `json:"configured"`
	ClientIDSet     bool   `json:"client_id_set"`
	ClientSecretSet bool   `json:"client_secret_set"`
	RedirectURI     string `json:"redirect_uri"`
}

// FeedbackResponse is the JSON payload for an accepted feedback submission
type FeedbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      string `json:"id"`
}
