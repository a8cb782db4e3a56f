// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

// changeStorage is the default implementation of [ChangeStorage].
//
// Every write runs in one transaction that locks the entity version row,
// compares it with the version the device based its change on, writes the
// backing table and advances the version. Two devices racing on the same
// record therefore serialize on the version row; the loser sees a conflict.
type changeStorage struct {
	*DB
	now func() time.Time
}

func NewChangeStorage(db *DB) ChangeStorage {
	return &changeStorage{DB: db, now: time.Now}
}

// itemFailure aborts the transaction of an item the store rejected.
// It never escapes ApplyChange.
type itemFailure struct {
	err error
}

func (f *itemFailure) Error() string { return f.err.Error() }
func (f *itemFailure) Unwrap() error { return f.err }

// errLostRace aborts a transaction whose conditional version update matched
// no row because another writer got there first.
var errLostRace = errors.New("entity version changed concurrently")

// ApplyChange applies one push item.
//
// Outcomes:
//   - stored version greater than item.Version: conflict, nothing written;
//   - write accepted: synced, version becomes item.Version+1;
//   - write rejected by the store (missing record, duplicate id, bad data): failed.
//
// A client version ahead of the stored one is accepted as is.
func (s *changeStorage) ApplyChange(ctx context.Context, item models.SyncItem) (ApplyResult, error) {
	log := logger.FromContext(ctx)

	table, err := tableFor(item.EntityType)
	if err != nil {
		return ApplyResult{Status: models.ItemStatusFailed, ErrorMessage: err.Error()}, nil
	}

	var result ApplyResult
	err = s.WithTx(ctx, nil, func(ctx context.Context, tx DBTX) error {
		current, exists, err := lockVersion(ctx, tx, item.Key())
		if err != nil {
			return err
		}

		if exists && current > item.Version {
			data, err := readRecordData(ctx, tx, table, item.EntityID)
			if err != nil {
				return err
			}
			result = ApplyResult{Status: models.ItemStatusConflict, Version: current, ServerData: data}
			return nil
		}

		now := s.now().UTC()
		if err := s.writeRecord(ctx, tx, table, item, now); err != nil {
			return err
		}

		next := item.Version + 1
		if err := advanceVersion(ctx, tx, item, exists, current, next, now); err != nil {
			return err
		}

		result = ApplyResult{Status: models.ItemStatusSynced, Version: next}
		return nil
	})

	var failure *itemFailure
	switch {
	case err == nil:
		return result, nil

	case errors.As(err, &failure):
		log.Warn().
			Err(failure.err).
			Str("func", "changeStorage.ApplyChange").
			Str("entity", item.Key().String()).
			Str("operation", string(item.Operation)).
			Msg("change rejected")
		return ApplyResult{Status: models.ItemStatusFailed, ErrorMessage: failure.Error()}, nil

	case errors.Is(err, errLostRace):
		version, data, err := s.readServerState(ctx, table, item.Key())
		if err != nil {
			log.Err(err).
				Str("func", "changeStorage.ApplyChange").
				Str("entity", item.Key().String()).
				Msg("failed to read server state after lost race")
			return ApplyResult{}, err
		}
		return ApplyResult{Status: models.ItemStatusConflict, Version: version, ServerData: data}, nil

	default:
		log.Err(err).
			Str("func", "changeStorage.ApplyChange").
			Str("entity", item.Key().String()).
			Msg("failed to apply change")
		return ApplyResult{}, err
	}
}

func (s *changeStorage) writeRecord(ctx context.Context, tx DBTX, table string, item models.SyncItem, now time.Time) error {
	entityType := item.EntityType.String()

	switch item.Operation {
	case models.OperationCreate:
		if _, err := tx.ExecContext(ctx, insertRecordQuery(table), item.EntityID, []byte(item.Data), now); err != nil {
			return s.writeError(err)
		}
		if _, err := tx.ExecContext(ctx, removeTombstone, entityType, item.EntityID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

	case models.OperationUpdate:
		res, err := tx.ExecContext(ctx, updateRecordQuery(table), []byte(item.Data), now, item.EntityID)
		if err != nil {
			return s.writeError(err)
		}
		if err := requireRow(res); err != nil {
			return err
		}

	case models.OperationDelete:
		res, err := tx.ExecContext(ctx, deleteRecordQuery(table), item.EntityID)
		if err != nil {
			return s.writeError(err)
		}
		if err := requireRow(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsertTombstone, entityType, item.EntityID, item.UserID, now); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

	default:
		return &itemFailure{err: fmt.Errorf("unsupported operation %q", item.Operation)}
	}

	return nil
}

// writeError turns a rejected statement into an item failure and keeps
// everything else an infrastructure error.
func (s *changeStorage) writeError(err error) error {
	if isUniqueViolation(err) {
		return &itemFailure{err: ErrRecordAlreadyExists}
	}
	if s.rejectedByStore(err) {
		return &itemFailure{err: err}
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return &itemFailure{err: ErrRecordNotFound}
	}
	return nil
}

// advanceVersion moves the version row to next, guarded on the value read
// under lock. A row created concurrently after the lock read shows up as
// zero affected rows and is reported as errLostRace.
func advanceVersion(ctx context.Context, tx DBTX, item models.SyncItem, exists bool, current, next int64, now time.Time) error {
	hash := ""
	if item.Operation != models.OperationDelete {
		hash = utils.Fingerprint(item.Data)
	}

	var (
		res sql.Result
		err error
	)
	if exists {
		res, err = tx.ExecContext(ctx, advanceEntityVersion,
			next, hash, item.UserID, now, item.EntityType.String(), item.EntityID, current)
	} else {
		res, err = tx.ExecContext(ctx, insertEntityVersion,
			item.EntityType.String(), item.EntityID, next, hash, item.UserID, now)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return errLostRace
	}

	return nil
}

// ResolveConflict settles an open conflict owned by change.UserID.
//
// The final version is the greatest of the two contending versions and the
// currently stored one, so a resolution never moves a record backwards.
// A nil FinalData deletes the record and leaves a tombstone.
func (s *changeStorage) ResolveConflict(ctx context.Context, change ResolveChange) (models.ResolvedConflict, error) {
	log := logger.FromContext(ctx)

	var resolved models.ResolvedConflict
	err := s.WithTx(ctx, nil, func(ctx context.Context, tx DBTX) error {
		var (
			c          models.Conflict
			entityType string
		)
		err := tx.QueryRowContext(ctx, lockConflict, change.ConflictID).
			Scan(&entityType, &c.EntityID, &c.LocalVersion, &c.ServerVersion, &c.UserID, &c.Resolved)
		// ids are UUIDs, a malformed one cannot exist
		if errors.Is(err, sql.ErrNoRows) || isInvalidTextRepresentation(err) {
			return ErrConflictNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if c.UserID != change.UserID {
			return ErrConflictNotFound
		}
		if c.Resolved {
			return ErrConflictAlreadyResolved
		}

		c.ID = change.ConflictID
		c.EntityType = models.EntityType(entityType)
		table, err := tableFor(c.EntityType)
		if err != nil {
			return err
		}

		current, _, err := lockVersion(ctx, tx, c.Key())
		if err != nil {
			return err
		}
		finalVersion := max(c.LocalVersion, c.ServerVersion, current)
		now := s.now().UTC()

		hash := ""
		if change.FinalData == nil {
			if _, err := tx.ExecContext(ctx, deleteRecordQuery(table), c.EntityID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if _, err := tx.ExecContext(ctx, upsertTombstone, entityType, c.EntityID, change.UserID, now); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		} else {
			hash = utils.Fingerprint(change.FinalData)
			if _, err := tx.ExecContext(ctx, upsertRecordQuery(table), c.EntityID, []byte(change.FinalData), now); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if _, err := tx.ExecContext(ctx, removeTombstone, entityType, c.EntityID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		if _, err := tx.ExecContext(ctx, upsertEntityVersion,
			entityType, c.EntityID, finalVersion, hash, change.UserID, now); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		res, err := tx.ExecContext(ctx, markConflictResolved, string(change.Resolution), now, change.ConflictID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		} else if n == 0 {
			return ErrConflictAlreadyResolved
		}

		resolution := change.Resolution
		c.Resolved = true
		c.Resolution = &resolution
		c.ResolvedAt = &now

		resolved = models.ResolvedConflict{
			Conflict:     c,
			FinalData:    change.FinalData,
			FinalVersion: finalVersion,
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrConflictNotFound) && !errors.Is(err, ErrConflictAlreadyResolved) {
			log.Err(err).
				Str("func", "changeStorage.ResolveConflict").
				Str("conflict_id", change.ConflictID).
				Msg("failed to resolve conflict")
		}
		return models.ResolvedConflict{}, err
	}

	return resolved, nil
}

// readServerState reads the committed version and payload outside any transaction.
func (s *changeStorage) readServerState(ctx context.Context, table string, key models.EntityKey) (int64, json.RawMessage, error) {
	var version int64
	err := s.DB.QueryRowContext(ctx, selectVersion, key.EntityType.String(), key.EntityID).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	data, err := readRecordData(ctx, s.DB, table, key.EntityID)
	if err != nil {
		return 0, nil, err
	}

	return version, data, nil
}

// lockVersion reads the stored version FOR UPDATE. exists is false for
// records that were never written.
func lockVersion(ctx context.Context, tx DBTX, key models.EntityKey) (version int64, exists bool, err error) {
	err = tx.QueryRowContext(ctx, lockEntityVersion, key.EntityType.String(), key.EntityID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return version, true, nil
}

// readRecordData returns nil when the record does not exist.
func readRecordData(ctx context.Context, q DBTX, table, id string) (json.RawMessage, error) {
	var data []byte
	err := q.QueryRowContext(ctx, selectRecordDataQuery(table), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return data, nil
}
