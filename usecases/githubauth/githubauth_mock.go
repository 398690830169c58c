package githubauth

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"fbbackend/models"
)

// MockGitHubAuthUseCase is a mock implementation of the GitHubAuthUseCaseInterface
type MockGitHubAuthUseCase struct {
	mock.Mock
}

func (m *MockGitHubAuthUseCase) BuildLoginRedirectURL() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockGitHubAuthUseCase) HandleOAuthCallback(
	ctx context.Context,
	code string,
) (*models.GitHubAuthResult, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GitHubAuthResult), args.Error(1)
}

func (m *MockGitHubAuthUseCase) GetStoredAccount(
	ctx context.Context,
	githubID int64,
) (mo.Option[*models.GitHubAccount], error) {
	args := m.Called(ctx, githubID)
	return args.Get(0).(mo.Option[*models.GitHubAccount]), args.Error(1)
}

func (m *MockGitHubAuthUseCase) ListUserRepositories(
	ctx context.Context,
	githubID int64,
) ([]models.GitHubRepository, error) {
	args := m.Called(ctx, githubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GitHubRepository), args.Error(1)
}

func (m *MockGitHubAuthUseCase) ListRepositoryCommits(
	ctx context.Context,
	githubID int64,
	repoName string,
) ([]models.GitHubCommit, error) {
	args := m.Called(ctx, githubID, repoName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GitHubCommit), args.Error(1)
}
