package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/samber/mo"
	"github.com/stretchr/testify/require"

	"fbbackend/config"
	"fbbackend/core"
	"fbbackend/crypto"
	"fbbackend/db"
	"fbbackend/models"
)

// LoadTestConfig loads configuration for tests from environment variables
func LoadTestConfig() (*config.AppConfig, error) {
	// Try to load environment variables from various possible locations
	_ = godotenv.Load("../.env.test") // From services/ directory
	_ = godotenv.Load(".env.test")    // From root directory
	_ = godotenv.Load()               // Default .env file

	databaseURL := os.Getenv("DB_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}

	databaseSchema := os.Getenv("DB_SCHEMA")
	if databaseSchema == "" {
		return nil, fmt.Errorf("DB_SCHEMA is not set")
	}

	return &config.AppConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
	}, nil
}

// NewTestCipher builds a token cipher with a fresh random key
func NewTestCipher(t *testing.T) *crypto.TokenCipher {
	key, err := crypto.GenerateKey()
	require.NoError(t, err, "Failed to generate test encryption key")

	cipher, err := crypto.NewTokenCipher(key)
	require.NoError(t, err, "Failed to build test token cipher")
	return cipher
}

// CreateTestUser creates a test user with a unique email to avoid constraint violations
func CreateTestUser(t *testing.T, usersRepo *db.PostgresUsersRepository) *models.User {
	email := fmt.Sprintf("test-%s@example.com", uuid.New().String())
	testUser, err := usersRepo.CreateUser(context.Background(), &email)
	require.NoError(t, err, "Failed to create test user")
	return testUser
}

// CreateTestGitHubAccount creates a test GitHub account row linked to the given user
func CreateTestGitHubAccount(
	t *testing.T,
	accountsRepo *db.PostgresGitHubAccountsRepository,
	userID string,
	githubID int64,
	encryptedToken string,
) *models.GitHubAccount {
	account := &models.GitHubAccount{
		ID:          core.NewID("gha"),
		UserID:      userID,
		GitHubID:    githubID,
		GitHubLogin: "test-login-" + uuid.New().String(),
		AccessToken: encryptedToken,
		Scope:       "repo,user",
	}

	err := accountsRepo.CreateGitHubAccount(context.Background(), account)
	require.NoError(t, err, "Failed to create test GitHub account")
	return account
}

// SomeEmail wraps a literal email in an option for test call sites
func SomeEmail(email string) mo.Option[string] {
	return mo.Some(email)
}
