package githubaccounts

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"fbbackend/core"
	"fbbackend/crypto"
	"fbbackend/db"
	"fbbackend/models"
	"fbbackend/services"
)

// GitHubAccountsService owns all access to the users and github_accounts
// tables. Access tokens are encrypted before every write and only decrypted
// on demand; the raw token never appears in logs or returned models.
type GitHubAccountsService struct {
	accountsRepo *db.PostgresGitHubAccountsRepository
	usersService services.UsersService
	cipher       *crypto.TokenCipher
	txManager    services.TransactionManager
}

func NewGitHubAccountsService(
	repo *db.PostgresGitHubAccountsRepository,
	usersService services.UsersService,
	cipher *crypto.TokenCipher,
	txManager services.TransactionManager,
) *GitHubAccountsService {
	return &GitHubAccountsService{
		accountsRepo: repo,
		usersService: usersService,
		cipher:       cipher,
		txManager:    txManager,
	}
}

// requireCipher refuses token operations when no encryption key was
// configured; there is no degraded plaintext mode
func (s *GitHubAccountsService) requireCipher() error {
	if s.cipher == nil {
		return &core.ConfigurationError{Key: "TOKEN_ENCRYPTION_KEY"}
	}
	return nil
}

func (s *GitHubAccountsService) GetAccountByGitHubID(
	ctx context.Context,
	githubID int64,
) (mo.Option[*models.GitHubAccount], error) {
	log.Printf("📋 Starting to get GitHub account for github_id: %d", githubID)

	if githubID <= 0 {
		return mo.None[*models.GitHubAccount](), fmt.Errorf("github ID must be positive")
	}

	account, err := s.accountsRepo.GetGitHubAccountByGitHubID(ctx, githubID)
	if err != nil {
		return mo.None[*models.GitHubAccount](), fmt.Errorf("failed to get GitHub account: %w", err)
	}

	if account.IsPresent() {
		log.Printf("📋 Completed successfully - found GitHub account for github_id: %d", githubID)
	} else {
		log.Printf("📋 Completed successfully - no GitHub account for github_id: %d", githubID)
	}

	return account, nil
}

// UpsertAccount is the single idempotency boundary for repeated logins by
// the same GitHub identity: an existing account is updated in place, an
// unseen identity gets a user row (found or created by email) and a fresh
// account row. Runs in a transaction so a failed first login never leaves
// an orphan user row.
func (s *GitHubAccountsService) UpsertAccount(
	ctx context.Context,
	githubID int64,
	githubLogin, accessToken, scope string,
	email mo.Option[string],
) (*models.GitHubAccount, error) {
	log.Printf("📋 Starting to upsert GitHub account for login: %s (github_id: %d)", githubLogin, githubID)

	if githubID <= 0 {
		return nil, fmt.Errorf("github ID must be positive")
	}
	if githubLogin == "" {
		return nil, fmt.Errorf("github login cannot be empty")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("access token cannot be empty")
	}
	if err := s.requireCipher(); err != nil {
		return nil, err
	}

	var result *models.GitHubAccount
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.accountsRepo.GetGitHubAccountByGitHubID(txCtx, githubID)
		if err != nil {
			return fmt.Errorf("failed to look up GitHub account: %w", err)
		}

		if existing.IsPresent() {
			result, err = s.updateAccount(txCtx, githubID, accessToken, scope, mo.Some(githubLogin))
			return err
		}

		user, err := s.usersService.GetOrCreateUser(txCtx, email)
		if err != nil {
			return fmt.Errorf("failed to get or create user: %w", err)
		}

		result, err = s.createAccount(txCtx, user.ID, githubID, githubLogin, accessToken, scope)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📋 Completed successfully - upserted GitHub account with ID: %s", result.ID)
	return result, nil
}

// GetDecryptedAccessToken resolves and decrypts the stored token for a
// GitHub identity. Absent account or empty token is not an error; only a
// cipher failure raises.
func (s *GitHubAccountsService) GetDecryptedAccessToken(
	ctx context.Context,
	githubID int64,
) (mo.Option[string], error) {
	log.Printf("📋 Starting to resolve access token for github_id: %d", githubID)

	if err := s.requireCipher(); err != nil {
		return mo.None[string](), err
	}

	account, err := s.accountsRepo.GetGitHubAccountByGitHubID(ctx, githubID)
	if err != nil {
		return mo.None[string](), fmt.Errorf("failed to get GitHub account: %w", err)
	}

	acc, found := account.Get()
	if !found || acc.AccessToken == "" {
		log.Printf("📋 Completed successfully - no stored token for github_id: %d", githubID)
		return mo.None[string](), nil
	}

	plaintext, err := s.cipher.Decrypt(acc.AccessToken)
	if err != nil {
		return mo.None[string](), fmt.Errorf("failed to decrypt access token: %w", err)
	}

	log.Printf("📋 Completed successfully - resolved access token for github_id: %d", githubID)
	return mo.Some(plaintext), nil
}

// createAccount encrypts the token and inserts a fresh account row.
// Only reachable through UpsertAccount.
func (s *GitHubAccountsService) createAccount(
	ctx context.Context,
	userID string,
	githubID int64,
	githubLogin, accessToken, scope string,
) (*models.GitHubAccount, error) {
	encryptedToken, err := s.cipher.Encrypt(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}

	account := &models.GitHubAccount{
		ID:          core.NewID("gha"),
		UserID:      userID,
		GitHubID:    githubID,
		GitHubLogin: githubLogin,
		AccessToken: encryptedToken,
		Scope:       scope,
	}

	if err := s.accountsRepo.CreateGitHubAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create GitHub account: %w", err)
	}

	log.Printf("📋 Created GitHub account %s for github_id: %d", account.ID, githubID)
	return account, nil
}

// updateAccount re-encrypts the new token and refreshes scope, updated_at
// and (when non-empty) the login. Only reachable through UpsertAccount.
func (s *GitHubAccountsService) updateAccount(
	ctx context.Context,
	githubID int64,
	accessToken, scope string,
	githubLogin mo.Option[string],
) (*models.GitHubAccount, error) {
	encryptedToken, err := s.cipher.Encrypt(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}

	account, err := s.accountsRepo.UpdateGitHubAccount(ctx, githubID, encryptedToken, scope, githubLogin)
	if err != nil {
		return nil, fmt.Errorf("failed to update GitHub account: %w", err)
	}

	log.Printf("📋 Updated GitHub account %s for github_id: %d", account.ID, githubID)
	return account, nil
}
