package github

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fbbackend/models"
)

// MockGitHubClient is a mock implementation of the GitHubClient interface
type MockGitHubClient struct {
	mock.Mock
}

// BuildAuthorizationURL mocks building the provider authorization URL
func (m *MockGitHubClient) BuildAuthorizationURL() string {
	args := m.Called()
	return args.String(0)
}

// ExchangeCodeForAccessToken mocks the OAuth code exchange
func (m *MockGitHubClient) ExchangeCodeForAccessToken(
	ctx context.Context,
	code string,
) (*models.GitHubOAuthToken, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GitHubOAuthToken), args.Error(1)
}

// GetAuthenticatedUser mocks the profile fetch
func (m *MockGitHubClient) GetAuthenticatedUser(
	ctx context.Context,
	accessToken string,
) (*models.GitHubUser, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GitHubUser), args.Error(1)
}

// ListUserRepositories mocks listing the user's repositories
func (m *MockGitHubClient) ListUserRepositories(
	ctx context.Context,
	accessToken string,
) ([]models.GitHubRepository, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GitHubRepository), args.Error(1)
}

// ListRepositoryCommits mocks listing repository commits
func (m *MockGitHubClient) ListRepositoryCommits(
	ctx context.Context,
	accessToken, owner, repo string,
) ([]models.GitHubCommit, error) {
	args := m.Called(ctx, accessToken, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GitHubCommit), args.Error(1)
}
