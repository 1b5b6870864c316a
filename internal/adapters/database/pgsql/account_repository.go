package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/apperrors"
	"github.com/mapleridge/teller_app/internal/core/domain"
	portsrepo "github.com/mapleridge/teller_app/internal/core/ports/repositories"
	"github.com/mapleridge/teller_app/internal/models"
	"github.com/mapleridge/teller_app/internal/utils/mapping"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAccountRepository creates a new repository for account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements the facade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// NextAccountNumber reserves the next number from the account sequence.
func (r *PgxAccountRepository) NextAccountNumber(ctx context.Context) (int64, error) {
	var number int64
	err := r.pool.QueryRow(ctx, `SELECT nextval('account_number_seq');`).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve next account number: %w", err)
	}
	return number, nil
}

// SaveAccount inserts a new account and its initial owner within a DB transaction.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	if len(account.OwnerIDs) == 0 {
		return fmt.Errorf("account %d has no owner: %w", account.AccountNumber, apperrors.ErrValidation)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	row := mapping.AccountToModel(account)
	accountQuery := `
		INSERT INTO accounts (account_number, category, balance, is_joint, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, accountQuery,
		row.AccountNumber,
		row.Category,
		row.Balance,
		row.IsJoint,
		row.IsPrimary,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account %d: %w", account.AccountNumber, err)
	}

	ownerQuery := `
		INSERT INTO account_owners (account_number, user_id)
		VALUES ($1, $2);
	`
	batch := &pgx.Batch{}
	for _, ownerID := range account.OwnerIDs {
		owner := models.AccountOwner{AccountNumber: account.AccountNumber, UserID: ownerID}
		batch.Queue(ownerQuery, owner.AccountNumber, owner.UserID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert owners for account %d: %w", account.AccountNumber, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit account %d: %w", account.AccountNumber, err)
	}
	return nil
}

// FindAccountByNumber retrieves an account with its owners.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	query := `
		SELECT account_number, category, balance, is_joint, is_primary, created_at
		FROM accounts
		WHERE account_number = $1;
	`
	var row models.Account
	err := r.pool.QueryRow(ctx, query, accountNumber).Scan(
		&row.AccountNumber,
		&row.Category,
		&row.Balance,
		&row.IsJoint,
		&row.IsPrimary,
		&row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %d: %w", accountNumber, err)
	}

	ownerIDs, err := r.findOwnerIDs(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	account := mapping.AccountToDomain(row, ownerIDs)
	return &account, nil
}

// FindAccountsByNumbers retrieves several accounts keyed by number. Missing
// numbers are simply absent from the result.
func (r *PgxAccountRepository) FindAccountsByNumbers(ctx context.Context, accountNumbers []int64) (map[int64]domain.Account, error) {
	if len(accountNumbers) == 0 {
		return map[int64]domain.Account{}, nil
	}

	query := `
		SELECT a.account_number, a.category, a.balance, a.is_joint, a.is_primary, a.created_at, o.user_id
		FROM accounts a
		JOIN account_owners o ON o.account_number = a.account_number
		WHERE a.account_number = ANY($1)
		ORDER BY a.account_number, o.user_id;
	`
	rows, err := r.pool.Query(ctx, query, accountNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := map[int64]domain.Account{}
	for rows.Next() {
		var row models.Account
		var ownerID string
		if err := rows.Scan(
			&row.AccountNumber,
			&row.Category,
			&row.Balance,
			&row.IsJoint,
			&row.IsPrimary,
			&row.CreatedAt,
			&ownerID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		if acc, ok := accounts[row.AccountNumber]; ok {
			acc.OwnerIDs = append(acc.OwnerIDs, ownerID)
			accounts[row.AccountNumber] = acc
		} else {
			accounts[row.AccountNumber] = mapping.AccountToDomain(row, []string{ownerID})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListAccountsByOwner retrieves every account the user owns, in account number order.
func (r *PgxAccountRepository) ListAccountsByOwner(ctx context.Context, userID string) ([]domain.Account, error) {
	numbersQuery := `
		SELECT account_number
		FROM account_owners
		WHERE user_id = $1
		ORDER BY account_number;
	`
	rows, err := r.pool.Query(ctx, numbersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	numbers := []int64{}
	for rows.Next() {
		var number int64
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("failed to scan account number for user %s: %w", userID, err)
		}
		numbers = append(numbers, number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account numbers for user %s: %w", userID, err)
	}

	byNumber, err := r.FindAccountsByNumbers(ctx, numbers)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(numbers))
	for _, number := range numbers {
		if acc, ok := byNumber[number]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

// AddOwner attaches another owner and flips the joint flag, both in one transaction.
func (r *PgxAccountRepository) AddOwner(ctx context.Context, accountNumber int64, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO account_owners (account_number, user_id) VALUES ($1, $2);`, accountNumber, userID)
	if err != nil {
		return fmt.Errorf("failed to add owner %s to account %d: %w", userID, accountNumber, err)
	}

	tag, err := tx.Exec(ctx, `UPDATE accounts SET is_joint = TRUE WHERE account_number = $1;`, accountNumber)
	if err != nil {
		return fmt.Errorf("failed to mark account %d joint: %w", accountNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit owner for account %d: %w", accountNumber, err)
	}
	return nil
}

// MarkPrimary flags a chequing account as its owner's default deposit target.
func (r *PgxAccountRepository) MarkPrimary(ctx context.Context, accountNumber int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE accounts SET is_primary = TRUE WHERE account_number = $1;`, accountNumber)
	if err != nil {
		return fmt.Errorf("failed to mark account %d primary: %w", accountNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateBalance overwrites one account's balance.
func (r *PgxAccountRepository) UpdateBalance(ctx context.Context, accountNumber int64, balance decimal.Decimal) error {
	tag, err := r.pool.Exec(ctx, `UPDATE accounts SET balance = $2 WHERE account_number = $1;`, accountNumber, balance)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %d: %w", accountNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) findOwnerIDs(ctx context.Context, accountNumber int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM account_owners WHERE account_number = $1 ORDER BY user_id;`, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query owners of account %d: %w", accountNumber, err)
	}
	defer rows.Close()

	ownerIDs := []string{}
	for rows.Next() {
		var ownerID string
		if err := rows.Scan(&ownerID); err != nil {
			return nil, fmt.Errorf("failed to scan owner of account %d: %w", accountNumber, err)
		}
		ownerIDs = append(ownerIDs, ownerID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating owners of account %d: %w", accountNumber, err)
	}
	return ownerIDs, nil
}
