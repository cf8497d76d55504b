package infra

import (
	"fmt"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (CHECK constraints, pgcrypto for gen_random_uuid on older
// PostgreSQL versions).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return nil, fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates all tables and applies the constraint
// patches. Also used by integration tests against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Base{},
		&model.EquipmentType{},
		&model.User{},
		&model.Balance{},
		&model.Purchase{},
		&model.Transfer{},
		&model.Assignment{},
		&model.AuditLog{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches adds database-level backstops for the invariants the
// application already enforces under row locks. The guards make the
// constraints idempotent so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Non-negative balances: the last line of defense if any write path
		// ever bypasses the guarded-update repository methods.
		{"balances non-negative check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_balances_non_negative') THEN
    ALTER TABLE balances ADD CONSTRAINT chk_balances_non_negative CHECK (current_balance >= 0);
  END IF;
END $$`},
		{"purchases positive quantity check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_purchases_positive_qty') THEN
    ALTER TABLE purchases ADD CONSTRAINT chk_purchases_positive_qty CHECK (quantity > 0);
  END IF;
END $$`},
		{"transfers positive quantity check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_transfers_positive_qty') THEN
    ALTER TABLE transfers ADD CONSTRAINT chk_transfers_positive_qty CHECK (quantity > 0);
  END IF;
END $$`},
		{"transfers distinct bases check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_transfers_distinct_bases') THEN
    ALTER TABLE transfers ADD CONSTRAINT chk_transfers_distinct_bases CHECK (from_base_id <> to_base_id);
  END IF;
END $$`},
		{"transfers valid status check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_transfers_status') THEN
    ALTER TABLE transfers ADD CONSTRAINT chk_transfers_status
      CHECK (status IN ('pending', 'completed', 'cancelled'));
  END IF;
END $$`},
		{"assignments positive quantity check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_assignments_positive_qty') THEN
    ALTER TABLE assignments ADD CONSTRAINT chk_assignments_positive_qty CHECK (quantity > 0);
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
