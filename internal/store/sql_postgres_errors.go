package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells transient database failures from permanent ones.
type ErrorClassification int

const (
	// NonRetryable errors are caused by the statement or its data
	// (constraint violations, bad input, syntax). Retrying cannot help.
	NonRetryable ErrorClassification = iota

	// Retryable errors are caused by the database or the connection
	// (connection loss, serialization failure, deadlock, shutdown).
	Retryable
)

// PostgresErrorClassifier classifies pgx errors by SQLSTATE.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify returns [NonRetryable] for nil, non-PostgreSQL and unlisted errors.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}

	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps a SQLSTATE code to a classification.
//
// Retryable: class 08 (connection), class 40 (rollback, serialization,
// deadlock), class 53 (insufficient resources) and 57P01-57P03 (shutdown).
// Everything else is NonRetryable.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch {
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsTransactionRollback(pgErr.Code),
		pgerrcode.IsInsufficientResources(pgErr.Code):
		return Retryable
	}

	switch pgErr.Code {
	case pgerrcode.AdminShutdown,
		pgerrcode.CrashShutdown,
		pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// isInvalidTextRepresentation reports whether PostgreSQL rejected a parameter
// that does not parse as its column type, such as a malformed UUID.
func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}
