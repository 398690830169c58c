package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"fbbackend/config"
	"fbbackend/core"
	"fbbackend/models/api"
	"fbbackend/usecases"
)

type GitHubAuthHTTPHandler struct {
	useCase             usecases.GitHubAuthUseCaseInterface
	oauthConfig         config.GitHubOAuthConfig
	frontendRedirectURL string
}

func NewGitHubAuthHTTPHandler(
	useCase usecases.GitHubAuthUseCaseInterface,
	oauthConfig config.GitHubOAuthConfig,
	frontendRedirectURL string,
) *GitHubAuthHTTPHandler {
	return &GitHubAuthHTTPHandler{
		useCase:             useCase,
		oauthConfig:         oauthConfig,
		frontendRedirectURL: frontendRedirectURL,
	}
}

// HandleLogin redirects the browser to the provider authorization page
func (h *GitHubAuthHTTPHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔐 GitHub login request received from %s", r.RemoteAddr)

	redirectURL, err := h.useCase.BuildLoginRedirectURL()
	if err != nil {
		log.Printf("❌ Failed to build login redirect URL: %v", err)
		http.Error(w, "github oauth is not configured", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// HandleCallback completes the OAuth handshake. With a frontend redirect URL
// configured the result goes back to the browser as query params, otherwise
// as a JSON payload.
func (h *GitHubAuthHTTPHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔐 GitHub OAuth callback received from %s", r.RemoteAddr)

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		log.Printf("❌ Provider returned error on callback: %s", errParam)
		http.Error(w, fmt.Sprintf("authorization failed: %s", errParam), http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Printf("❌ Callback missing authorization code")
		http.Error(w, "authorization code is required", http.StatusBadRequest)
		return
	}

	result, err := h.useCase.HandleOAuthCallback(r.Context(), code)
	if err != nil {
		log.Printf("❌ OAuth callback failed: %v", err)
		h.writeAuthError(w, err)
		return
	}

	apiUser := api.DomainGitHubUserToAPIAuthenticatedUser(result.User)
	apiAccount := api.DomainAccountToAPIAccountSummary(result.Account)

	if h.frontendRedirectURL != "" {
		h.redirectToFrontend(w, r, apiUser, apiAccount)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.AuthResponse{
		Success:       true,
		Message:       "GitHub authentication successful",
		User:          apiUser,
		GitHubAccount: apiAccount,
	})
}

func (h *GitHubAuthHTTPHandler) redirectToFrontend(
	w http.ResponseWriter,
	r *http.Request,
	user *api.AuthenticatedUser,
	account *api.GitHubAccountSummary,
) {
	params := url.Values{}
	params.Set("success", "true")
	params.Set("github_id", strconv.FormatInt(user.GitHubID, 10))
	params.Set("github_login", user.GitHubLogin)
	params.Set("user_id", account.UserID)
	if user.Email != nil {
		params.Set("email", *user.Email)
	}
	if user.Name != nil {
		params.Set("name", *user.Name)
	}
	if user.AvatarURL != "" {
		params.Set("avatar_url", user.AvatarURL)
	}

	target := h.frontendRedirectURL + "?" + params.Encode()
	http.Redirect(w, r, target, http.StatusFound)
}

// HandleStatus reports whether the OAuth integration is configured. Only
// booleans leave the server, never the secret itself.
func (h *GitHubAuthHTTPHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, api.AuthStatusResponse{
		Configured:      h.oauthConfig.IsConfigured(),
		ClientIDSet:     h.oauthConfig.ClientID != "",
		ClientSecretSet: h.oauthConfig.ClientSecret != "",
		RedirectURI:     h.oauthConfig.RedirectURI,
	})
}

// HandleGetUser returns the stored account summary for a GitHub identity
func (h *GitHubAuthHTTPHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	githubID, ok := h.parseGitHubID(w, r)
	if !ok {
		return
	}

	accountOpt, err := h.useCase.GetStoredAccount(r.Context(), githubID)
	if err != nil {
		log.Printf("❌ Failed to get stored account: %v", err)
		http.Error(w, "failed to get account", http.StatusInternalServerError)
		return
	}

	account, found := accountOpt.Get()
	if !found {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.DomainAccountToAPIAccountDetail(account))
}

// HandleGetUserRepos lists the user's repositories via the stored token
func (h *GitHubAuthHTTPHandler) HandleGetUserRepos(w http.ResponseWriter, r *http.Request) {
	githubID, ok := h.parseGitHubID(w, r)
	if !ok {
		return
	}

	repos, err := h.useCase.ListUserRepositories(r.Context(), githubID)
	if err != nil {
		log.Printf("❌ Failed to list repositories: %v", err)
		h.writeDelegatedCallError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, repos)
}

// HandleGetRepoCommits lists recent commits of one of the user's repositories
func (h *GitHubAuthHTTPHandler) HandleGetRepoCommits(w http.ResponseWriter, r *http.Request) {
	githubID, ok := h.parseGitHubID(w, r)
	if !ok {
		return
	}

	repoName := mux.Vars(r)["repo_name"]
	commits, err := h.useCase.ListRepositoryCommits(r.Context(), githubID, repoName)
	if err != nil {
		log.Printf("❌ Failed to list commits: %v", err)
		h.writeDelegatedCallError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, commits)
}

func (h *GitHubAuthHTTPHandler) parseGitHubID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	githubID, err := strconv.ParseInt(vars["github_id"], 10, 64)
	if err != nil {
		http.Error(w, "github_id must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return githubID, true
}

// writeAuthError maps a failed OAuth handshake to a client response. Error
// details from the crypto and persistence layers stay in the logs.
func (h *GitHubAuthHTTPHandler) writeAuthError(w http.ResponseWriter, err error) {
	var authErr *core.UpstreamAuthError
	var dataErr *core.UpstreamDataError
	var cfgErr *core.ConfigurationError

	switch {
	case errors.As(err, &authErr):
		http.Error(w, "github authorization failed", http.StatusBadRequest)
	case errors.As(err, &dataErr):
		http.Error(w, "github returned an unusable response", http.StatusBadRequest)
	case errors.As(err, &cfgErr):
		http.Error(w, "github oauth is not configured", http.StatusInternalServerError)
	default:
		http.Error(w, "authentication failed", http.StatusInternalServerError)
	}
}

// writeDelegatedCallError maps delegated GitHub API failures. Upstream status
// codes pass through so the caller sees what GitHub said.
func (h *GitHubAuthHTTPHandler) writeDelegatedCallError(w http.ResponseWriter, err error) {
	var upstreamErr *core.UpstreamError

	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		http.Error(w, "user not authenticated or token not found", http.StatusUnauthorized)
	case core.IsNotFoundError(err):
		http.Error(w, "account not found", http.StatusNotFound)
	case errors.As(err, &upstreamErr):
		http.Error(w, "github api request failed", upstreamErr.StatusCode)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// SetupEndpoints registers all GitHub auth routes on the given router
func (h *GitHubAuthHTTPHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering GitHub auth endpoints")

	router.HandleFunc("/auth/github/login", h.HandleLogin).Methods("GET")
	log.Printf("✅ GET /auth/github/login endpoint registered")

	router.HandleFunc("/auth/github/callback", h.HandleCallback).Methods("GET")
	log.Printf("✅ GET /auth/github/callback endpoint registered")

	router.HandleFunc("/auth/github/status", h.HandleStatus).Methods("GET")
	log.Printf("✅ GET /auth/github/status endpoint registered")

	router.HandleFunc("/auth/github/user/{github_id}", h.HandleGetUser).Methods("GET")
	log.Printf("✅ GET /auth/github/user/{github_id} endpoint registered")

	router.HandleFunc("/auth/github/user/{github_id}/repos", h.HandleGetUserRepos).Methods("GET")
	log.Printf("✅ GET /auth/github/user/{github_id}/repos endpoint registered")

	router.HandleFunc("/auth/github/user/{github_id}/repo/{repo_name}/commits", h.HandleGetRepoCommits).
		Methods("GET")
	log.Printf("✅ GET /auth/github/user/{github_id}/repo/{repo_name}/commits endpoint registered")
}

func (h *GitHubAuthHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
