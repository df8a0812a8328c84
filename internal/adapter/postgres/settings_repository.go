package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"keyword-campaigns/internal/core/domain"
)

// Setting keys in the settings table.
const (
	keyCostPerInstall      = "cost_per_install"
	keyToleranceDifficulty = "tolerance_difficulty"
	keyToleranceRank       = "tolerance_rank"
)

// SettingsRepository persists the per-owner settings as key/value rows.
// Missing rows fall back to the defaults, so an owner who never opened the
// configuration still gets working tolerances.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a new repository instance.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get loads the owner's settings, defaulting anything never saved.
func (r *SettingsRepository) Get(ctx context.Context, ownerID string) (domain.Settings, error) {
	s := domain.DefaultSettings()
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM settings WHERE owner_id = $1`, ownerID)
	if err != nil {
		return s, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			key   string
			value float64
		)
		if err := rows.Scan(&key, &value); err != nil {
			return s, err
		}
		switch key {
		case keyCostPerInstall:
			v := value
			s.CostPerInstall = &v
		case keyToleranceDifficulty:
			s.ToleranceDifficulty = value
		case keyToleranceRank:
			s.ToleranceRank = value
		}
	}
	return s, rows.Err()
}

// Save upserts the three settings in one transaction. A nil cost per
// install deletes the row so Get reports it as unset again.
func (r *SettingsRepository) Save(ctx context.Context, ownerID string, s domain.Settings) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	upsert := `INSERT INTO settings (owner_id, key, value) VALUES ($1, $2, $3)
	           ON CONFLICT (owner_id, key) DO UPDATE SET value = EXCLUDED.value`
	if s.CostPerInstall != nil {
		if _, err = tx.Exec(ctx, upsert, ownerID, keyCostPerInstall, *s.CostPerInstall); err != nil {
			return err
		}
	} else {
		if _, err = tx.Exec(ctx, `DELETE FROM settings WHERE owner_id = $1 AND key = $2`, ownerID, keyCostPerInstall); err != nil {
			return err
		}
	}
	if _, err = tx.Exec(ctx, upsert, ownerID, keyToleranceDifficulty, s.ToleranceDifficulty); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, upsert, ownerID, keyToleranceRank, s.ToleranceRank); err != nil {
		return err
	}
	return nil
}
