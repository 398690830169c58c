package githubauth

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"fbbackend/clients"
	"fbbackend/core"
	"fbbackend/models"
	"fbbackend/services"
)

// GitHubAuthUseCase drives one login attempt through the authorization-code
// flow: exchange the code, fetch the profile, upsert the account. Terminal
// on success or failure - no step is ever retried, since authorization
// codes are single-use.
type GitHubAuthUseCase struct {
	githubClient    clients.GitHubClient
	accountsService services.GitHubAccountsService
	clientID        string
}

func NewGitHubAuthUseCase(
	githubClient clients.GitHubClient,
	accountsService services.GitHubAccountsService,
	clientID string,
) *GitHubAuthUseCase {
	return &GitHubAuthUseCase{
		githubClient:    githubClient,
		accountsService: accountsService,
		clientID:        clientID,
	}
}

// BuildLoginRedirectURL returns the provider authorization URL for step 1
// of the handshake
func (u *GitHubAuthUseCase) BuildLoginRedirectURL() (string, error) {
	if u.clientID == "" {
		return "", &core.ConfigurationError{Key: "GITHUB_CLIENT_ID"}
	}
	return u.githubClient.BuildAuthorizationURL(), nil
}

// HandleOAuthCallback runs steps 2-4 of the handshake. Any failure aborts
// the attempt; the consumed upstream exchange cannot be undone, at most the
// local upsert is skipped.
func (u *GitHubAuthUseCase) HandleOAuthCallback(
	ctx context.Context,
	code string,
) (*models.GitHubAuthResult, error) {
	log.Printf("📋 Starting GitHub OAuth callback")

	if u.clientID == "" {
		return nil, &core.ConfigurationError{Key: "GITHUB_CLIENT_ID"}
	}
	if code == "" {
		return nil, fmt.Errorf("authorization code cannot be empty")
	}

	log.Printf("📋 Step 1: exchanging authorization code for access token")
	token, err := u.githubClient.ExchangeCodeForAccessToken(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	log.Printf("📋 Step 2: fetching GitHub user profile")
	githubUser, err := u.githubClient.GetAuthenticatedUser(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	log.Printf("📋 Fetched profile for user: %s (github_id: %d)", githubUser.Login, githubUser.ID)

	log.Printf("📋 Step 3: upserting account")
	email := mo.None[string]()
	if githubUser.Email != nil && *githubUser.Email != "" {
		email = mo.Some(*githubUser.Email)
	}

	account, err := u.accountsService.UpsertAccount(
		ctx,
		githubUser.ID,
		githubUser.Login,
		token.AccessToken,
		token.Scope,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}

	log.Printf("📋 Completed successfully - authenticated user: %s", githubUser.Login)
	return &models.GitHubAuthResult{User: githubUser, Account: account}, nil
}

// GetStoredAccount returns the stored account summary for a GitHub identity
func (u *GitHubAuthUseCase) GetStoredAccount(
	ctx context.Context,
	githubID int64,
) (mo.Option[*models.GitHubAccount], error) {
	return u.accountsService.GetAccountByGitHubID(ctx, githubID)
}

// ListUserRepositories issues a delegated repository listing with the
// stored token. No stored token means the call is unauthenticated and no
// upstream request is attempted.
func (u *GitHubAuthUseCase) ListUserRepositories(
	ctx context.Context,
	githubID int64,
) ([]models.GitHubRepository, error) {
	log.Printf("📋 Starting to list repositories for github_id: %d", githubID)

	tokenOpt, err := u.accountsService.GetDecryptedAccessToken(ctx, githubID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve access token: %w", err)
	}

	token, found := tokenOpt.Get()
	if !found {
		return nil, core.ErrUnauthenticated
	}

	repos, err := u.githubClient.ListUserRepositories(ctx, token)
	if err != nil {
		return nil, err
	}

	log.Printf("📋 Completed successfully - fetched %d repositories for github_id: %d", len(repos), githubID)
	return repos, nil
}

// ListRepositoryCommits issues a delegated commit listing. Both the stored
// token and the stored login (for the path) are required.
func (u *GitHubAuthUseCase) ListRepositoryCommits(
	ctx context.Context,
	githubID int64,
	repoName string,
) ([]models.GitHubCommit, error) {
	log.Printf("📋 Starting to list commits for repo %q (github_id: %d)", repoName, githubID)

	if repoName == "" {
		return nil, fmt.Errorf("repository name cannot be empty")
	}

	tokenOpt, err := u.accountsService.GetDecryptedAccessToken(ctx, githubID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve access token: %w", err)
	}
	token, found := tokenOpt.Get()
	if !found {
		return nil, core.ErrUnauthenticated
	}

	accountOpt, err := u.accountsService.GetAccountByGitHubID(ctx, githubID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	account, found := accountOpt.Get()
	if !found {
		// A token without an account means the account vanished between
		// the two lookups
		return nil, fmt.Errorf("account for github_id %d: %w", githubID, core.ErrNotFound)
	}

	commits, err := u.githubClient.ListRepositoryCommits(ctx, token, account.GitHubLogin, repoName)
	if err != nil {
		return nil, err
	}

	log.Printf("📋 Completed successfully - fetched %d commits for %s/%s", len(commits), account.GitHubLogin, repoName)
	return commits, nil
}
