package users

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"fbbackend/db"
	"fbbackend/models"
)

type UsersService struct {
	usersRepo *db.PostgresUsersRepository
}

func NewUsersService(repo *db.PostgresUsersRepository) *UsersService {
	return &UsersService{usersRepo: repo}
}

// GetOrCreateUser returns the existing user with the given email, or inserts
// a new user when no email matches (or no email was supplied). Look-up then
// insert; concurrent first logins for the same email may race, which is the
// accepted last-writer-wins policy.
func (s *UsersService) GetOrCreateUser(ctx context.Context, email mo.Option[string]) (*models.User, error) {
	log.Printf("📋 Starting to get or create user")

	if emailValue, ok := email.Get(); ok && emailValue != "" {
		existing, err := s.usersRepo.GetUserByEmail(ctx, emailValue)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user by email: %w", err)
		}
		if user, found := existing.Get(); found {
			log.Printf("📋 Completed successfully - found existing user with ID: %s", user.ID)
			return user, nil
		}
	}

	var emailPtr *string
	if emailValue, ok := email.Get(); ok && emailValue != "" {
		emailPtr = &emailValue
	}

	user, err := s.usersRepo.CreateUser(ctx, emailPtr)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("📋 Completed successfully - created user with ID: %s", user.ID)
	return user, nil
}
