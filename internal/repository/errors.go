package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// Uniqueness checks in the services are check-then-act without a wrapping
// transaction, so two concurrent writes can both pass the check. The unique
// indexes are the last line of defense; their violations must surface as
// the same conflict error the check would have produced.
var uniqueViolationMessages = map[string]string{
	"accounts_email_key":         "email already in use",
	"accounts_cpf_key":           "cpf already in use",
	"doctors_license_number_key": "license number already in use",
	"doctors_account_id_key":     "doctor already registered for account",
}

// translateError maps driver-level unique violations to conflict errors.
// Everything else passes through untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if msg, ok := uniqueViolationMessages[pgErr.ConstraintName]; ok {
			return apperrors.NewConflict(msg, nil)
		}
		return apperrors.NewConflict("value already in use", map[string]any{"constraint": pgErr.ConstraintName})
	}
	return err
}
