package models

import (
	"time"
)

// GitHubAccount links a user to their GitHub identity. AccessToken always
// holds ciphertext; the raw token is never persisted or serialized.
type GitHubAccount struct {
	ID          string    `db:"id"           json:"id"`
	UserID      string    `db:"user_id"      json:"user_id"`
	GitHubID    int64     `db:"github_id"    json:"github_id"`
	GitHubLogin string    `db:"github_login" json:"github_login"`
	AccessToken string    `db:"access_token" json:"-"`
	Scope       string    `db:"scope"        json:"scope"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}
