package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fbbackend/config"
	"fbbackend/core"
	"fbbackend/models"
	"fbbackend/models/api"
	"fbbackend/usecases/githubauth"
)

func newAuthTestRouter(uc *githubauth.MockGitHubAuthUseCase, cfg config.GitHubOAuthConfig, frontendURL string) *mux.Router {
	handler := NewGitHubAuthHTTPHandler(uc, cfg, frontendURL)
	router := mux.NewRouter()
	handler.SetupEndpoints(router)
	return router
}

func TestHandleLogin(t *testing.T) {
	t.Run("redirects to the provider authorization url", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		mockUseCase.On("BuildLoginRedirectURL").Return("https://github.com/login/oauth/authorize?client_id=abc", nil)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/login", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://github.com/login/oauth/authorize?client_id=abc", rec.Header().Get("Location"))
	})

	t.Run("returns 500 when oauth is not configured", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		mockUseCase.On("BuildLoginRedirectURL").Return("", &core.ConfigurationError{Key: "GITHUB_CLIENT_ID"})
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/login", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandleCallback(t *testing.T) {
	t.Run("returns 400 when code is missing", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockUseCase.AssertNotCalled(t, "HandleOAuthCallback", mock.Anything, mock.Anything)
	})

	t.Run("returns 400 when the provider reports an error", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?error=access_denied", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockUseCase.AssertNotCalled(t, "HandleOAuthCallback", mock.Anything, mock.Anything)
	})

	t.Run("returns the auth payload as JSON when no frontend redirect is set", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		result := &models.GitHubAuthResult{
			User:    &models.GitHubUser{ID: 42, Login: "octocat"},
			Account: &models.GitHubAccount{ID: "gha_1", UserID: "u_1", GitHubID: 42, GitHubLogin: "octocat", Scope: "repo"},
		}
		mockUseCase.On("HandleOAuthCallback", mock.Anything, "good-code").Return(result, nil)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=good-code", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp api.AuthResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "octocat", resp.User.GitHubLogin)
		assert.Equal(t, "gha_1", resp.GitHubAccount.ID)
		assert.NotContains(t, rec.Body.String(), "access_token")
	})

	t.Run("redirects to the frontend with identity query params", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		result := &models.GitHubAuthResult{
			User:    &models.GitHubUser{ID: 42, Login: "octocat"},
			Account: &models.GitHubAccount{ID: "gha_1", UserID: "u_1", GitHubID: 42},
		}
		mockUseCase.On("HandleOAuthCallback", mock.Anything, "good-code").Return(result, nil)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "https://app.example.com/auth/done")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=good-code", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		location := rec.Header().Get("Location")
		assert.Contains(t, location, "https://app.example.com/auth/done?")
		assert.Contains(t, location, "github_id=42")
		assert.Contains(t, location, "github_login=octocat")
		assert.Contains(t, location, "user_id=u_1")
	})

	t.Run("maps upstream auth errors to 400", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		mockUseCase.On("HandleOAuthCallback", mock.Anything, "bad-code").Return(
			nil, &core.UpstreamAuthError{Message: "bad_verification_code"})
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=bad-code", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotContains(t, rec.Body.String(), "bad_verification_code")
	})
}

func TestHandleStatus(t *testing.T) {
	t.Run("reports configuration booleans without secrets", func(t *testing.T) {
		cfg := config.GitHubOAuthConfig{
			ClientID:     "abc",
			ClientSecret: "shh-secret",
			RedirectURI:  "http://localhost:8080/auth/github/callback",
		}
		router := newAuthTestRouter(new(githubauth.MockGitHubAuthUseCase), cfg, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/status", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp api.AuthStatusResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Configured)
		assert.True(t, resp.ClientIDSet)
		assert.True(t, resp.ClientSecretSet)
		assert.NotContains(t, rec.Body.String(), "shh-secret")
	})
}

func TestHandleGetUser(t *testing.T) {
	t.Run("returns 404 when no account is stored", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		mockUseCase.On("GetStoredAccount", mock.Anything, int64(42)).Return(mo.None[*models.GitHubAccount](), nil)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/user/42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns 400 for a non-integer github id", func(t *testing.T) {
		router := newAuthTestRouter(new(githubauth.MockGitHubAuthUseCase), config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/user/not-a-number", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns the stored account without the token", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		account := &models.GitHubAccount{
			ID: "gha_1", UserID: "u_1", GitHubID: 42, GitHubLogin: "octocat",
			AccessToken: "encrypted-blob", Scope: "repo",
		}
		mockUseCase.On("GetStoredAccount", mock.Anything, int64(42)).Return(mo.Some(account), nil)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/user/42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "octocat")
		assert.NotContains(t, rec.Body.String(), "encrypted-blob")
	})
}

func TestHandleGetUserRepos(t *testing.T) {
	t.Run("returns 401 when no token is stored", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		mockUseCase.On("ListUserRepositories", mock.Anything, int64(42)).Return(nil, core.ErrUnauthenticated)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/user/42/repos", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("passes the upstream status through", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		mockUseCase.On("ListUserRepositories", mock.Anything, int64(42)).Return(
			nil, &core.UpstreamError{StatusCode: http.StatusForbidden, Message: "rate limited"})
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/user/42/repos", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("returns the projected repo list", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		repos := []models.GitHubRepository{{ID: 1, Name: "repo-one", FullName: "octocat/repo-one"}}
		mockUseCase.On("ListUserRepositories", mock.Anything, int64(42)).Return(repos, nil)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/user/42/repos", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "octocat/repo-one")
	})
}

func TestHandleGetRepoCommits(t *testing.T) {
	t.Run("returns commits for the stored identity", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		commits := []models.GitHubCommit{{SHA: "abc123", Message: "initial commit"}}
		mockUseCase.On("ListRepositoryCommits", mock.Anything, int64(42), "repo-one").Return(commits, nil)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/user/42/repo/repo-one/commits", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "abc123")
	})

	t.Run("returns 401 when no token is stored", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		mockUseCase.On("ListRepositoryCommits", mock.Anything, int64(42), "repo-one").Return(
			nil, core.ErrUnauthenticated)
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/user/42/repo/repo-one/commits", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns 404 when the account is gone", func(t *testing.T) {
		mockUseCase := new(githubauth.MockGitHubAuthUseCase)
		mockUseCase.On("ListRepositoryCommits", mock.Anything, int64(42), "repo-one").Return(
			nil, fmt.Errorf("account for github_id 42: %w", core.ErrNotFound))
		router := newAuthTestRouter(mockUseCase, config.GitHubOAuthConfig{}, "")

		req := httptest.NewRequest(http.MethodGet, "/auth/github/user/42/repo/repo-one/commits", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
