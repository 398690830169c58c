package usecases

import (
	"context"

	"github.com/samber/mo"

	"fbbackend/models"
)

// GitHubAuthUseCaseInterface defines the interface for GitHub OAuth
// handshake and delegated API operations
type GitHubAuthUseCaseInterface interface {
	BuildLoginRedirectURL() (string, error)
	HandleOAuthCallback(ctx context.Context, code string) (*models.GitHubAuthResult, error)
	GetStoredAccount(ctx context.Context, githubID int64) (mo.Option[*models.GitHubAccount], error)
	ListUserRepositories(ctx context.Context, githubID int64) ([]models.GitHubRepository, error)
	ListRepositoryCommits(ctx context.Context, githubID int64, repoName string) ([]models.GitHubCommit, error)
}
