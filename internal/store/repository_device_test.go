package store

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/models"
)

func TestDeviceRepository_TouchDevice(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewDeviceRepository(newDBFromSQL(db))

	at := testNow
	mock.ExpectExec(q(upsertDevice)).
		WithArgs(int64(7), "tab-1", "1.4.0", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.TouchDevice(testContext(), models.Device{UserID: 7, DeviceID: "tab-1", AppVersion: "1.4.0", LastSyncAt: &at})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_TouchDevice_ExecError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewDeviceRepository(newDBFromSQL(db))

	mock.ExpectExec(q(upsertDevice)).WillReturnError(errors.New("boom"))

	err := repo.TouchDevice(testContext(), models.Device{UserID: 7, DeviceID: "tab-1"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestDeviceRepository_GetDevice(t *testing.T) {
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		err     error
		want    models.Device
		wantErr error
	}{
		{
			name: "found",
			rows: sqlmock.NewRows([]string{"user_id", "device_id", "app_version", "last_sync_at"}).
				AddRow(int64(7), "tab-1", "1.4.0", testNow),
			want: models.Device{UserID: 7, DeviceID: "tab-1", AppVersion: "1.4.0", LastSyncAt: &testNow},
		},
		{
			name: "never synced",
			rows: sqlmock.NewRows([]string{"user_id", "device_id", "app_version", "last_sync_at"}).
				AddRow(int64(7), "tab-1", nil, nil),
			want: models.Device{UserID: 7, DeviceID: "tab-1"},
		},
		{
			name:    "query error",
			err:     errors.New("connection reset"),
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewDeviceRepository(newDBFromSQL(db))

			exp := mock.ExpectQuery(q(selectDevice)).WithArgs(int64(7), "tab-1")
			if tt.rows != nil {
				exp.WillReturnRows(tt.rows)
			} else {
				exp.WillReturnError(tt.err)
			}

			got, err := repo.GetDevice(testContext(), 7, "tab-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeviceRepository_GetDevice_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewDeviceRepository(newDBFromSQL(db))

	mock.ExpectQuery(q(selectDevice)).
		WithArgs(int64(7), "tab-9").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "device_id", "app_version", "last_sync_at"}))

	_, err := repo.GetDevice(testContext(), 7, "tab-9")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestEntityVersionRepository_GetEntityVersion(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEntityVersionRepository(newDBFromSQL(db))
	key := models.EntityKey{EntityType: models.EntityPatient, EntityID: "p-1"}

	mock.ExpectQuery(q(selectEntityVersion)).
		WithArgs("patient", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{"entity_type", "entity_id", "version", "content_hash", "updated_by", "updated_at"}).
			AddRow("patient", "p-1", int64(4), "abc", int64(7), testNow))

	got, err := repo.GetEntityVersion(testContext(), key)
	require.NoError(t, err)
	assert.Equal(t, models.EntityVersion{
		EntityType: models.EntityPatient, EntityID: "p-1", Version: 4,
		ContentHash: "abc", UpdatedBy: 7, UpdatedAt: testNow,
	}, got)

	mock.ExpectQuery(q(selectEntityVersion)).
		WithArgs("patient", "p-2").
		WillReturnRows(sqlmock.NewRows([]string{"entity_type", "entity_id", "version", "content_hash", "updated_by", "updated_at"}))

	_, err = repo.GetEntityVersion(testContext(), models.EntityKey{EntityType: models.EntityPatient, EntityID: "p-2"})
	assert.ErrorIs(t, err, ErrEntityVersionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
