package githubauth

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fbbackend/clients/github"
	"fbbackend/core"
	"fbbackend/models"
	"fbbackend/services/githubaccounts"
)

func TestBuildLoginRedirectURL(t *testing.T) {
	t.Run("returns configuration error when client id is unset", func(t *testing.T) {
		uc := NewGitHubAuthUseCase(&github.MockGitHubClient{}, &githubaccounts.MockGitHubAccountsService{}, "")

		_, err := uc.BuildLoginRedirectURL()

		var cfgErr *core.ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "GITHUB_CLIENT_ID", cfgErr.Key)
	})

	t.Run("returns the client authorization url", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockClient.On("BuildAuthorizationURL").Return("https://github.com/login/oauth/authorize?client_id=abc")
		uc := NewGitHubAuthUseCase(mockClient, &githubaccounts.MockGitHubAccountsService{}, "abc")

		url, err := uc.BuildLoginRedirectURL()

		assert.NoError(t, err)
		assert.Equal(t, "https://github.com/login/oauth/authorize?client_id=abc", url)
	})
}

func TestHandleOAuthCallback(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges code, fetches profile and upserts the account", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockAccounts := new(githubaccounts.MockGitHubAccountsService)
		uc := NewGitHubAuthUseCase(mockClient, mockAccounts, "abc")

		email := "octo@example.com"
		mockClient.On("ExchangeCodeForAccessToken", ctx, "good-code").Return(
			&models.GitHubOAuthToken{AccessToken: "gho_token", Scope: "repo,user"}, nil)
		mockClient.On("GetAuthenticatedUser", ctx, "gho_token").Return(
			&models.GitHubUser{ID: 42, Login: "octocat", Email: &email}, nil)
		account := &models.GitHubAccount{ID: "gha_1", UserID: "u_1", GitHubID: 42, GitHubLogin: "octocat"}
		mockAccounts.On("UpsertAccount", ctx, int64(42), "octocat", "gho_token", "repo,user", mo.Some(email)).
			Return(account, nil)

		result, err := uc.HandleOAuthCallback(ctx, "good-code")

		assert.NoError(t, err)
		assert.Equal(t, "octocat", result.User.Login)
		assert.Equal(t, account, result.Account)
		mockClient.AssertExpectations(t)
		mockAccounts.AssertExpectations(t)
	})

	t.Run("upserts with no email when the profile has none", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockAccounts := new(githubaccounts.MockGitHubAccountsService)
		uc := NewGitHubAuthUseCase(mockClient, mockAccounts, "abc")

		mockClient.On("ExchangeCodeForAccessToken", ctx, "good-code").Return(
			&models.GitHubOAuthToken{AccessToken: "gho_token", Scope: "repo"}, nil)
		mockClient.On("GetAuthenticatedUser", ctx, "gho_token").Return(
			&models.GitHubUser{ID: 42, Login: "octocat"}, nil)
		mockAccounts.On("UpsertAccount", ctx, int64(42), "octocat", "gho_token", "repo", mo.None[string]()).
			Return(&models.GitHubAccount{ID: "gha_1"}, nil)

		_, err := uc.HandleOAuthCallback(ctx, "good-code")

		assert.NoError(t, err)
		mockAccounts.AssertExpectations(t)
	})

	t.Run("does not upsert when the code exchange fails", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockAccounts := new(githubaccounts.MockGitHubAccountsService)
		uc := NewGitHubAuthUseCase(mockClient, mockAccounts, "abc")

		mockClient.On("ExchangeCodeForAccessToken", ctx, "bad-code").Return(
			nil, &core.UpstreamAuthError{Message: "bad_verification_code"})

		_, err := uc.HandleOAuthCallback(ctx, "bad-code")

		assert.Error(t, err)
		var authErr *core.UpstreamAuthError
		assert.ErrorAs(t, err, &authErr)
		mockAccounts.AssertNotCalled(t, "UpsertAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("does not upsert when the profile fetch fails", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockAccounts := new(githubaccounts.MockGitHubAccountsService)
		uc := NewGitHubAuthUseCase(mockClient, mockAccounts, "abc")

		mockClient.On("ExchangeCodeForAccessToken", ctx, "good-code").Return(
			&models.GitHubOAuthToken{AccessToken: "gho_token"}, nil)
		mockClient.On("GetAuthenticatedUser", ctx, "gho_token").Return(
			nil, &core.UpstreamError{StatusCode: 502, Message: "bad gateway"})

		_, err := uc.HandleOAuthCallback(ctx, "good-code")

		assert.Error(t, err)
		mockAccounts.AssertNotCalled(t, "UpsertAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		uc := NewGitHubAuthUseCase(&github.MockGitHubClient{}, &githubaccounts.MockGitHubAccountsService{}, "abc")

		_, err := uc.HandleOAuthCallback(ctx, "")

		assert.Error(t, err)
	})
}

func TestListUserRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("returns unauthenticated without calling upstream when no token is stored", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockAccounts := new(githubaccounts.MockGitHubAccountsService)
		uc := NewGitHubAuthUseCase(mockClient, mockAccounts, "abc")

		mockAccounts.On("GetDecryptedAccessToken", ctx, int64(42)).Return(mo.None[string](), nil)

		_, err := uc.ListUserRepositories(ctx, 42)

		assert.ErrorIs(t, err, core.ErrUnauthenticated)
		mockClient.AssertNotCalled(t, "ListUserRepositories", mock.Anything, mock.Anything)
	})

	t.Run("lists repositories with the stored token", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockAccounts := new(githubaccounts.MockGitHubAccountsService)
		uc := NewGitHubAuthUseCase(mockClient, mockAccounts, "abc")

		mockAccounts.On("GetDecryptedAccessToken", ctx, int64(42)).Return(mo.Some("gho_token"), nil)
		repos := []models.GitHubRepository{{ID: 1, Name: "repo-one", FullName: "octocat/repo-one"}}
		mockClient.On("ListUserRepositories", ctx, "gho_token").Return(repos, nil)

		got, err := uc.ListUserRepositories(ctx, 42)

		assert.NoError(t, err)
		assert.Equal(t, repos, got)
	})

	t.Run("propagates token resolution failures", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockAccounts := new(githubaccounts.MockGitHubAccountsService)
		uc := NewGitHubAuthUseCase(mockClient, mockAccounts, "abc")

		mockAccounts.On("GetDecryptedAccessToken", ctx, int64(42)).Return(
			mo.None[string](), errors.New("database connection failed"))

		_, err := uc.ListUserRepositories(ctx, 42)

		assert.Error(t, err)
		mockClient.AssertNotCalled(t, "ListUserRepositories", mock.Anything, mock.Anything)
	})
}

func TestListRepositoryCommits(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the owner from the stored login", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockAccounts := new(githubaccounts.MockGitHubAccountsService)
		uc := NewGitHubAuthUseCase(mockClient, mockAccounts, "abc")

		mockAccounts.On("GetDecryptedAccessToken", ctx, int64(42)).Return(mo.Some("gho_token"), nil)
		mockAccounts.On("GetAccountByGitHubID", ctx, int64(42)).Return(
			mo.Some(&models.GitHubAccount{GitHubID: 42, GitHubLogin: "octocat"}), nil)
		commits := []models.GitHubCommit{{SHA: "abc123", Message: "initial commit"}}
		mockClient.On("ListRepositoryCommits", ctx, "gho_token", "octocat", "repo-one").Return(commits, nil)

		got, err := uc.ListRepositoryCommits(ctx, 42, "repo-one")

		assert.NoError(t, err)
		assert.Equal(t, commits, got)
	})

	t.Run("returns unauthenticated when no token is stored", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockAccounts := new(githubaccounts.MockGitHubAccountsService)
		uc := NewGitHubAuthUseCase(mockClient, mockAccounts, "abc")

		mockAccounts.On("GetDecryptedAccessToken", ctx, int64(42)).Return(mo.None[string](), nil)

		_, err := uc.ListRepositoryCommits(ctx, 42, "repo-one")

		assert.ErrorIs(t, err, core.ErrUnauthenticated)
		mockClient.AssertNotCalled(t, "ListRepositoryCommits", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns not found when the account vanished after token lookup", func(t *testing.T) {
		mockClient := new(github.MockGitHubClient)
		mockAccounts := new(githubaccounts.MockGitHubAccountsService)
		uc := NewGitHubAuthUseCase(mockClient, mockAccounts, "abc")

		mockAccounts.On("GetDecryptedAccessToken", ctx, int64(42)).Return(mo.Some("gho_token"), nil)
		mockAccounts.On("GetAccountByGitHubID", ctx, int64(42)).Return(
			mo.None[*models.GitHubAccount](), nil)

		_, err := uc.ListRepositoryCommits(ctx, 42, "repo-one")

		assert.ErrorIs(t, err, core.ErrNotFound)
		mockClient.AssertNotCalled(t, "ListRepositoryCommits", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects empty repository name", func(t *testing.T) {
		uc := NewGitHubAuthUseCase(&github.MockGitHubClient{}, &githubaccounts.MockGitHubAccountsService{}, "abc")

		_, err := uc.ListRepositoryCommits(ctx, 42, "")

		assert.Error(t, err)
	})
}
