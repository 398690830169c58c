package api

import "fbbackend/models"

// DomainAccountToAPIAccountSummary converts a domain GitHubAccount to its
// API summary, dropping the encrypted token
func DomainAccountToAPIAccountSummary(account *models.GitHubAccount) *GitHubAccountSummary {
	if account == nil {
		return nil
	}

	return &GitHubAccountSummary{
		ID:          account.ID,
		UserID:      account.UserID,
		GitHubLogin: account.GitHubLogin,
		Scope:       account.Scope,
	}
}

// DomainAccountToAPIAccountDetail converts a domain GitHubAccount to the
// full stored-account view, still without the token
func DomainAccountToAPIAccountDetail(account *models.GitHubAccount) *GitHubAccountDetail {
	if account == nil {
		return nil
	}

	return &GitHubAccountDetail{
		ID:          account.ID,
		UserID:      account.UserID,
		GitHubID:    account.GitHubID,
		GitHubLogin: account.GitHubLogin,
		Scope:       account.Scope,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}

// DomainGitHubUserToAPIAuthenticatedUser converts a provider profile to the
// callback response identity
func DomainGitHubUserToAPIAuthenticatedUser(user *models.GitHubUser) *AuthenticatedUser {
	if user == nil {
		return nil
	}

	return &AuthenticatedUser{
		GitHubID:    user.ID,
		GitHubLogin: user.Login,
		Email:       user.Email,
		Name:        user.Name,
		AvatarURL:   user.AvatarURL,
	}
}
