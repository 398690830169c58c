package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	anthropicclient "fbbackend/clients/anthropic"
	githubclient "fbbackend/clients/github"
	"fbbackend/config"
	"fbbackend/crypto"
	"fbbackend/db"
	"fbbackend/handlers"
	"fbbackend/middleware"
	"fbbackend/services/classifier"
	"fbbackend/services/feedback"
	"fbbackend/services/githubaccounts"
	"fbbackend/services/txmanager"
	"fbbackend/services/users"
	"fbbackend/usecases/githubauth"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackAlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "fbbackend",
		LogsURL:     cfg.ServerLogsURL,
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	usersRepo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	accountsRepo := db.NewPostgresGitHubAccountsRepository(dbConn, cfg.DatabaseSchema)

	// Initialize transaction manager
	txManager := txmanager.NewTransactionManager(dbConn)

	// Token cipher is nil when no key is configured; account storage then
	// refuses with a configuration error instead of storing plaintext
	var tokenCipher *crypto.TokenCipher
	if cfg.EncryptionConfig.IsConfigured() {
		tokenCipher, err = crypto.NewTokenCipher(cfg.EncryptionConfig.TokenEncryptionKey)
		if err != nil {
			return err
		}
	}

	usersService := users.NewUsersService(usersRepo)
	accountsService := githubaccounts.NewGitHubAccountsService(accountsRepo, usersService, tokenCipher, txManager)

	ghClient := githubclient.NewGitHubClient(
		cfg.GitHubConfig.ClientID,
		cfg.GitHubConfig.ClientSecret,
		cfg.GitHubConfig.RedirectURI,
	)
	authUseCase := githubauth.NewGitHubAuthUseCase(ghClient, accountsService, cfg.GitHubConfig.ClientID)
	authHandler := handlers.NewGitHubAuthHTTPHandler(authUseCase, cfg.GitHubConfig, cfg.FrontendRedirectURL)

	// Create a new router
	router := mux.NewRouter()
	authHandler.SetupEndpoints(router)

	// Feedback intake needs the document store; without it only the auth
	// surface is served
	if cfg.MongoConfig.IsConfigured() {
		mongoDB, err := db.NewMongoConnection(cfg.MongoConfig.URI, cfg.MongoConfig.Database)
		if err != nil {
			if cfg.UseStrictConfig {
				return err
			}
			log.Printf("⚠️ Document store unreachable, feedback intake disabled: %v", err)
		} else {
			anthropicClient := anthropicclient.NewClient(cfg.AnthropicConfig.APIKey)
			classifierService := classifier.NewClassifierService(anthropicClient)
			feedbackRepo := db.NewMongoFeedbackRepository(mongoDB)
			feedbackService := feedback.NewFeedbackService(
				feedbackRepo, classifierService, anthropicClient, alertMiddleware.WrapBackgroundTask)
			feedbackHandler := handlers.NewFeedbackHTTPHandler(feedbackService)
			feedbackHandler.SetupEndpoints(router)
		}
	}

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	log.Printf("✅ Server shut down cleanly")
	return nil
}
