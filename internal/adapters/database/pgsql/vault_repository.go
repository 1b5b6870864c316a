package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mapleridge/teller_app/internal/core/domain"
	portsrepo "github.com/mapleridge/teller_app/internal/core/ports/repositories"
	"github.com/mapleridge/teller_app/internal/models"
)

const updateVaultBillQuery = `
	UPDATE vault_bills SET bill_count = $2, updated_at = now() WHERE denomination = $1;
`

type PgxVaultRepository struct {
	pool *pgxpool.Pool
}

// NewPgxVaultRepository creates a new repository for the branch vault.
func NewPgxVaultRepository(pool *pgxpool.Pool) portsrepo.VaultRepositoryFacade {
	return &PgxVaultRepository{pool: pool}
}

var _ portsrepo.VaultRepositoryFacade = (*PgxVaultRepository)(nil)

// GetInventory loads the current bill counts. Denominations missing a row are
// treated as empty.
func (r *PgxVaultRepository) GetInventory(ctx context.Context) (domain.CashInventory, error) {
	rows, err := r.pool.Query(ctx, `SELECT denomination, bill_count FROM vault_bills;`)
	if err != nil {
		return domain.CashInventory{}, fmt.Errorf("failed to query vault bills: %w", err)
	}
	defer rows.Close()

	counts := domain.BillCounts{}
	for _, d := range domain.Denominations {
		counts[d] = 0
	}
	for rows.Next() {
		var row models.VaultBill
		if err := rows.Scan(&row.Denomination, &row.BillCount); err != nil {
			return domain.CashInventory{}, fmt.Errorf("failed to scan vault bill row: %w", err)
		}
		counts[domain.Denomination(row.Denomination)] = row.BillCount
	}
	if err := rows.Err(); err != nil {
		return domain.CashInventory{}, fmt.Errorf("error iterating vault bill rows: %w", err)
	}
	return domain.CashInventory{Counts: counts}, nil
}

// SaveInventory overwrites the bill counts, all denominations in one DB
// transaction.
func (r *PgxVaultRepository) SaveInventory(ctx context.Context, inv domain.CashInventory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	batch := &pgx.Batch{}
	for _, d := range domain.Denominations {
		batch.Queue(updateVaultBillQuery, int64(d), inv.Counts[d])
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to persist vault counts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit vault counts: %w", err)
	}
	return nil
}

// SaveAlert records a low-bill alert for the bank manager.
func (r *PgxVaultRepository) SaveAlert(ctx context.Context, alert domain.LowBillAlert) error {
	row := models.VaultAlert{
		AlertID:       alert.AlertID,
		Denominations: make([]int64, 0, len(alert.Denominations)),
		CreatedAt:     alert.CreatedAt,
	}
	for _, d := range alert.Denominations {
		row.Denominations = append(row.Denominations, int64(d))
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO vault_alerts (alert_id, denominations, created_at)
		VALUES ($1, $2, $3);
	`
	_, err := r.pool.Exec(ctx, query, row.AlertID, row.Denominations, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save low bill alert %s: %w", alert.AlertID, err)
	}
	return nil
}
