package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type deviceRepository struct {
	*DB
}

func NewDeviceRepository(db *DB) DeviceRepository {
	return &deviceRepository{DB: db}
}

// TouchDevice upserts the device row. A blank AppVersion keeps the stored one.
func (r *deviceRepository) TouchDevice(ctx context.Context, device models.Device) error {
	_, err := r.DB.ExecContext(ctx, upsertDevice, device.UserID, device.DeviceID, device.AppVersion, nullTime(device.LastSyncAt))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "deviceRepository.TouchDevice").
			Int64("user_id", device.UserID).
			Str("device_id", device.DeviceID).
			Msg("failed to upsert device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetDevice returns [ErrDeviceNotFound] for devices that never synced.
func (r *deviceRepository) GetDevice(ctx context.Context, userID int64, deviceID string) (models.Device, error) {
	var (
		d          models.Device
		appVersion sql.NullString
		lastSyncAt sql.NullTime
	)

	err := r.DB.QueryRowContext(ctx, selectDevice, userID, deviceID).
		Scan(&d.UserID, &d.DeviceID, &appVersion, &lastSyncAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Device{}, ErrDeviceNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "deviceRepository.GetDevice").
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Msg("failed to read device")
		return models.Device{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	d.AppVersion = appVersion.String
	if lastSyncAt.Valid {
		at := lastSyncAt.Time
		d.LastSyncAt = &at
	}

	return d, nil
}
