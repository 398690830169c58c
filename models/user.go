package models

import (
	"time"
)

type User struct {
	ID        string    `db:"id"         json:"id"`
	Email     *string   `db:"email"      json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
