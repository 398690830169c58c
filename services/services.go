package services

import (
	"context"

	"github.com/samber/mo"

	"fbbackend/models"
)

// UsersService defines the interface for user-related operations
type UsersService interface {
	GetOrCreateUser(ctx context.Context, email mo.Option[string]) (*models.User, error)
}

// GitHubAccountsService defines the interface for GitHub account operations.
// UpsertAccount is the single idempotency boundary for repeated logins;
// callers never call create/update directly.
type GitHubAccountsService interface {
	GetAccountByGitHubID(ctx context.Context, githubID int64) (mo.Option[*models.GitHubAccount], error)
	UpsertAccount(
		ctx context.Context,
		githubID int64,
		githubLogin, accessToken, scope string,
		email mo.Option[string],
	) (*models.GitHubAccount, error)
	GetDecryptedAccessToken(ctx context.Context, githubID int64) (mo.Option[string], error)
}

// FeedbackClassifierService defines the interface for feedback classification.
// It returns verdict-or-error; the fail-open default is the caller's choice.
type FeedbackClassifierService interface {
	Classify(ctx context.Context, text string) (*models.FeedbackVerdict, error)
}

// FeedbackService defines the interface for feedback intake and lookup
type FeedbackService interface {
	SubmitFeedback(ctx context.Context, req models.FeedbackSubmission) (*models.Feedback, error)
	GetFeedback(ctx context.Context, id string) (mo.Option[*models.Feedback], error)
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	BeginTransaction(ctx context.Context) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
}
