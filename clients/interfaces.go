package clients

import (
	"context"

	"fbbackend/models"
)

// GitHubClient defines the operations performed against the GitHub OAuth
// provider and its delegated resource API
type GitHubClient interface {
	// BuildAuthorizationURL returns the provider authorization URL for the
	// configured client id, scope set and redirect URI
	BuildAuthorizationURL() string
	// ExchangeCodeForAccessToken exchanges an authorization code for an
	// access token. Codes are single-use; this is never retried.
	ExchangeCodeForAccessToken(ctx context.Context, code string) (*models.GitHubOAuthToken, error)
	// GetAuthenticatedUser fetches the provider's "current user" profile
	// using a fresh access token
	GetAuthenticatedUser(ctx context.Context, accessToken string) (*models.GitHubUser, error)
	// ListUserRepositories lists the authenticated user's repositories,
	// projected down to a fixed field set
	ListUserRepositories(ctx context.Context, accessToken string) ([]models.GitHubRepository, error)
	// ListRepositoryCommits lists recent commits of owner/repo, projected
	// down to a fixed field set
	ListRepositoryCommits(ctx context.Context, accessToken, owner, repo string) ([]models.GitHubCommit, error)
}

// AnthropicClient defines the generative-text calls used for feedback
// classification and analysis
type AnthropicClient interface {
	// ClassifyFeedback asks the model for a strict JSON verdict on the
	// given feedback text
	ClassifyFeedback(ctx context.Context, text string) (*models.FeedbackVerdict, error)
	// AnalyzeFeedback asks the model for a free-form analysis of a
	// persisted feedback item
	AnalyzeFeedback(ctx context.Context, feedback *models.Feedback) (string, error)
}
