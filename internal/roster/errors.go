package roster

import "errors"

// Error kinds surfaced across the engine's public boundary. Callers test
// with errors.Is; the concrete cause is carried in the wrapped message.
var (
	// ErrStoreUnavailable means the data layer could not be reached. No
	// cache mutation has happened.
	ErrStoreUnavailable = errors.New("Datenbank nicht erreichbar")

	// ErrSchemaMissing means a required table or column is absent.
	ErrSchemaMissing = errors.New("Datenbankschema unvollständig")

	// ErrConstraintViolation means a uniqueness or foreign-key constraint
	// failed. For wish-free and password-reset requests this is treated as
	// an idempotent "already present".
	ErrConstraintViolation = errors.New("Datensatz existiert bereits")

	// ErrValidation covers malformed dates, unknown codes and out-of-range
	// months.
	ErrValidation = errors.New("ungültige Eingabe")

	// ErrLockedTarget means a write targeted a locked month or a locked day.
	ErrLockedTarget = errors.New("Ziel ist gesperrt")

	// ErrIntegrity means the store write succeeded but the caches could not
	// be fully reconciled; the month should be reloaded.
	ErrIntegrity = errors.New("Caches inkonsistent, Monat neu laden")
)
