package githubaccounts

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"fbbackend/models"
)

// MockGitHubAccountsService is a mock implementation of the GitHubAccountsService interface
type MockGitHubAccountsService struct {
	mock.Mock
}

func (m *MockGitHubAccountsService) GetAccountByGitHubID(
	ctx context.Context,
	githubID int64,
) (mo.Option[*models.GitHubAccount], error) {
	args := m.Called(ctx, githubID)
	if args.Get(0) == nil {
		return mo.None[*models.GitHubAccount](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.GitHubAccount]), args.Error(1)
}

func (m *MockGitHubAccountsService) UpsertAccount(
	ctx context.Context,
	githubID int64,
	githubLogin, accessToken, scope string,
	email mo.Option[string],
) (*models.GitHubAccount, error) {
	args := m.Called(ctx, githubID, githubLogin, accessToken, scope, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GitHubAccount), args.Error(1)
}

func (m *MockGitHubAccountsService) GetDecryptedAccessToken(
	ctx context.Context,
	githubID int64,
) (mo.Option[string], error) {
	args := m.Called(ctx, githubID)
	if args.Get(0) == nil {
		return mo.None[string](), args.Error(1)
	}
	return args.Get(0).(mo.Option[string]), args.Error(1)
}
