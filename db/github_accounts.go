package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	// necessary import to wire up the postgres driver
	_ "github.com/lib/pq"

	"fbbackend/core"
	dbtx "fbbackend/db/tx"
	"fbbackend/models"
)

type PostgresGitHubAccountsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for github_accounts table
var githubAccountsColumns = []string{
	"id",
	"user_id",
	"github_id",
	"github_login",
	"access_token",
	"scope",
	"created_at",
	"updated_at",
}

func NewPostgresGitHubAccountsRepository(db *sqlx.DB, schema string) *PostgresGitHubAccountsRepository {
	return &PostgresGitHubAccountsRepository{db: db, schema: schema}
}

// GetGitHubAccountByGitHubID looks up an account by the external GitHub user
// ID. Absent is not an error.
func (r *PostgresGitHubAccountsRepository) GetGitHubAccountByGitHubID(
	ctx context.Context,
	githubID int64,
) (mo.Option[*models.GitHubAccount], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(githubAccountsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.github_accounts
		WHERE github_id = $1`, columnsStr, r.schema)

	var account models.GitHubAccount
	err := db.GetContext(ctx, &account, query, githubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.GitHubAccount](), nil
		}
		return mo.None[*models.GitHubAccount](), fmt.Errorf("failed to get github account: %w", err)
	}

	return mo.Some(&account), nil
}

// CreateGitHubAccount inserts a new account row. The access token on the
// model must already be ciphertext. created_at and updated_at are set to the
// same timestamp.
func (r *PostgresGitHubAccountsRepository) CreateGitHubAccount(
	ctx context.Context,
	account *models.GitHubAccount,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	insertColumns := []string{
		"id",
		"user_id",
		"github_id",
		"github_login",
		"access_token",
		"scope",
		"created_at",
		"updated_at",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(githubAccountsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.github_accounts (%s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s`, r.schema, columnsStr, returningStr)

	err := db.QueryRowxContext(
		ctx,
		query,
		account.ID,
		account.UserID,
		account.GitHubID,
		account.GitHubLogin,
		account.AccessToken,
		account.Scope,
	).StructScan(account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &core.PersistenceError{Op: "create github account returned no row"}
		}
		return fmt.Errorf("failed to create github account: %w", err)
	}

	return nil
}

// DeleteGitHubAccountByGitHubID removes the account row for the given
// github_id. Returns false when no row matched.
func (r *PostgresGitHubAccountsRepository) DeleteGitHubAccountByGitHubID(
	ctx context.Context,
	githubID int64,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`DELETE FROM %s.github_accounts WHERE github_id = $1`, r.schema)
	result, err := db.ExecContext(ctx, query, githubID)
	if err != nil {
		return false, fmt.Errorf("failed to delete github account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}

// UpdateGitHubAccount refreshes the token ciphertext, scope and updated_at
// for the account with the given github_id. The login is only overwritten
// when a non-empty value is supplied.
func (r *PostgresGitHubAccountsRepository) UpdateGitHubAccount(
	ctx context.Context,
	githubID int64,
	encryptedToken, scope string,
	githubLogin mo.Option[string],
) (*models.GitHubAccount, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(githubAccountsColumns, ", ")

	setClauses := []string{"access_token = $1", "scope = $2", "updated_at = NOW()"}
	args := []interface{}{encryptedToken, scope}

	if login, ok := githubLogin.Get(); ok && login != "" {
		setClauses = append(setClauses, fmt.Sprintf("github_login = $%d", len(args)+1))
		args = append(args, login)
	}

	args = append(args, githubID)
	query := fmt.Sprintf(`
		UPDATE %s.github_accounts
		SET %s
		WHERE github_id = $%d
		RETURNING %s`, r.schema, strings.Join(setClauses, ", "), len(args), returningStr)

	account := &models.GitHubAccount{}
	err := db.QueryRowxContext(ctx, query, args...).StructScan(account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &core.PersistenceError{Op: "update github account returned no row"}
		}
		return nil, fmt.Errorf("failed to update github account: %w", err)
	}

	return account, nil
}
