package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type GitHubOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// IsConfigured returns true if all required GitHub OAuth configuration is present
func (c GitHubOAuthConfig) IsConfigured() bool {
	return c.ClientID != "" &&
		c.ClientSecret != ""
	// Note: RedirectURI has a default and is always set
}

type AnthropicConfig struct {
	APIKey string
}

// IsConfigured returns true if the Anthropic API key is present
func (c AnthropicConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type MongoConfig struct {
	URI      string
	Database string
}

// IsConfigured returns true if all required document-store configuration is present
func (c MongoConfig) IsConfigured() bool {
	return c.URI != "" &&
		c.Database != ""
}

type EncryptionConfig struct {
	TokenEncryptionKey string
}

// IsConfigured returns true if the token encryption key is present
func (c EncryptionConfig) IsConfigured() bool {
	return c.TokenEncryptionKey != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	ServerLogsURL      string
	UseStrictConfig    bool // If true, error when any integration is not fully configured

	// Frontend URL to redirect to after a successful login (optional)
	FrontendRedirectURL string

	// Slack webhook for error alerts (optional)
	SlackAlertWebhookURL string

	// Integration configurations (grouped)
	GitHubConfig     GitHubOAuthConfig
	AnthropicConfig  AnthropicConfig
	MongoConfig      MongoConfig
	EncryptionConfig EncryptionConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		// Core configuration
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		ServerLogsURL:      getEnvWithDefault("SERVER_LOGS_URL", ""),
		UseStrictConfig:    getEnvWithDefault("USE_STRICT_CONFIG", "true") == "true",

		FrontendRedirectURL:  os.Getenv("FRONTEND_REDIRECT_URL"),
		SlackAlertWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),

		// GitHub OAuth configuration (optional)
		GitHubConfig: GitHubOAuthConfig{
			ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
			RedirectURI:  getEnvWithDefault("GITHUB_REDIRECT_URI", "http://localhost:8080/auth/github/callback"),
		},

		// Anthropic configuration (optional)
		AnthropicConfig: AnthropicConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
		},

		// Document store configuration (optional)
		MongoConfig: MongoConfig{
			URI:      os.Getenv("MONGO_URI"),
			Database: getEnvWithDefault("MONGO_DB", "feedbackdb"),
		},

		// Token encryption configuration (optional)
		EncryptionConfig: EncryptionConfig{
			TokenEncryptionKey: os.Getenv("TOKEN_ENCRYPTION_KEY"),
		},
	}

	// Log which integrations are configured
	if config.GitHubConfig.IsConfigured() {
		log.Printf("✅ GitHub OAuth configured")
	} else {
		log.Printf("⚠️ GitHub OAuth not configured - login features will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("GitHub OAuth is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.AnthropicConfig.IsConfigured() {
		log.Printf("✅ Anthropic integration configured")
	} else {
		log.Printf("⚠️ Anthropic integration not configured - feedback classification will fail open")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("anthropic integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.MongoConfig.IsConfigured() {
		log.Printf("✅ Document store configured")
	} else {
		log.Printf("⚠️ Document store not configured - feedback intake will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("document store is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.EncryptionConfig.IsConfigured() {
		log.Printf("✅ Token encryption configured")
	} else {
		log.Printf("⚠️ Token encryption not configured - account storage will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("token encryption is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
