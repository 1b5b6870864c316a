package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mapleridge/teller_app/internal/apperrors"
	"github.com/mapleridge/teller_app/internal/core/domain"
	portsrepo "github.com/mapleridge/teller_app/internal/core/ports/repositories"
	"github.com/mapleridge/teller_app/internal/models"
)

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxUserRepository creates a new repository for user data.
func NewPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (user_id, name, created_at)
		VALUES ($1, $2, $3);
	`
	_, err := r.pool.Exec(ctx, query, user.UserID, user.Name, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user with their account numbers.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, name, created_at
		FROM users
		WHERE user_id = $1;
	`
	var row models.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(&row.UserID, &row.Name, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	numbersQuery := `
		SELECT account_number
		FROM account_owners
		WHERE user_id = $1
		ORDER BY account_number;
	`
	rows, err := r.pool.Query(ctx, numbersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts of user %s: %w", userID, err)
	}
	defer rows.Close()

	accountNumbers := []int64{}
	for rows.Next() {
		var number int64
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("failed to scan account number of user %s: %w", userID, err)
		}
		accountNumbers = append(accountNumbers, number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account numbers of user %s: %w", userID, err)
	}

	return &domain.User{
		UserID:         row.UserID,
		Name:           row.Name,
		AccountNumbers: accountNumbers,
		CreatedAt:      row.CreatedAt,
	}, nil
}
