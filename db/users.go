package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	// necessary import to wire up the postgres driver
	_ "github.com/lib/pq"

	"fbbackend/core"
	dbtx "fbbackend/db/tx"
	"fbbackend/models"
)

type PostgresUsersRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for users table
var usersColumns = []string{
	"id",
	"email",
	"created_at",
}

func NewPostgresUsersRepository(db *sqlx.DB, schema string) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db, schema: schema}
}

func (r *PostgresUsersRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (mo.Option[*models.User], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(usersColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.users
		WHERE email = $1`, columnsStr, r.schema)

	var user models.User
	err := db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.User](), nil
		}
		return mo.None[*models.User](), fmt.Errorf("failed to get user by email: %w", err)
	}

	return mo.Some(&user), nil
}

func (r *PostgresUsersRepository) CreateUser(
	ctx context.Context,
	email *string,
) (*models.User, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	userID := core.NewID("u")

	columnsStr := strings.Join(usersColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.users (id, email, created_at)
		VALUES ($1, $2, NOW())
		RETURNING %s`, r.schema, columnsStr)

	user := &models.User{}
	err := db.QueryRowxContext(ctx, query, userID, email).StructScan(user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &core.PersistenceError{Op: "create user returned no row"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
