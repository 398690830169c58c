package models

// GitHubOAuthToken is the result of exchanging an authorization code
type GitHubOAuthToken struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	TokenType   string `json:"token_type"`
}

// GitHubUser is the provider's "current user" profile, validated at the
// boundary: ID and Login are required, the rest is optional
type GitHubUser struct {
	ID        int64   `json:"id"`
	Login     string  `json:"login"`
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	AvatarURL string  `json:"avatar_url"`
}

// GitHubRepository is the fixed projection of an upstream repository;
// the full upstream payload is never passed through
type GitHubRepository struct {
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

// GitHubCommit is the fixed projection of an upstream commit
type GitHubCommit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	URL     string `json:"url"`
}
