package models

// GitHubAuthResult is the outcome of a completed OAuth handshake: the fresh
// provider profile plus the upserted local account. The raw access token is
// not carried here.
type GitHubAuthResult struct {
	User    *GitHubUser
	Account *GitHubAccount
}
