package store

import "errors"

// Domain errors. Callers match them with [errors.Is].
var (
	// ErrEntityVersionNotFound is returned when a record has never been written.
	ErrEntityVersionNotFound = errors.New("entity version not found")

	// ErrConflictNotFound is returned for unknown conflict ids and for
	// conflicts owned by another user.
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrConflictAlreadyResolved is returned when resolving a conflict twice.
	ErrConflictAlreadyResolved = errors.New("conflict already resolved")

	// ErrDeviceNotFound is returned when no metadata exists for a device.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrRecordNotFound is the item-level failure of an update or delete
	// aimed at a record the server does not hold.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordAlreadyExists is the item-level failure of a create for an
	// id that is already taken.
	ErrRecordAlreadyExists = errors.New("record already exists")

	// ErrOutboxChangeNotFound is returned when no local change carries a conflict id.
	ErrOutboxChangeNotFound = errors.New("outbox change not found")

	// ErrUnknownEntityType is returned when an entity type has no backing table.
	ErrUnknownEntityType = errors.New("unknown entity type")
)

// Low-level database errors. Repositories wrap the driver error with one of
// these so the service layer can tell infrastructure failures apart.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
