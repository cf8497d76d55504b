package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound normalizes gorm.ErrRecordNotFound across repositories.
	ErrNotFound = gorm.ErrRecordNotFound

	// ErrNegativeBalance is returned by BalanceRepository.ApplyDeltaTx when
	// the delta would drive current_balance below zero. Callers pre-check
	// under lock; this is the defense-in-depth backstop.
	ErrNegativeBalance = errors.New("balance would go negative")

	// ErrDuplicate maps Postgres unique violations (SQLSTATE 23505).
	ErrDuplicate = errors.New("duplicate record")
)

// Postgres SQLSTATE codes we classify explicitly.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// classify converts driver-level Postgres errors into the package's sentinel
// errors so services never have to inspect SQLSTATEs themselves. A check
// violation on balances means the non-negativity backstop fired.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgCheckViolation:
			return ErrNegativeBalance
		}
	}
	return err
}
