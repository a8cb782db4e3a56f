// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// no expectations: goose's first query fails
	err = Migrate(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	err := Migrate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")

	err = MigrateClient(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestEmbeddedMigrations(t *testing.T) {
	server, err := fs.Glob(serverMigrations, "*.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, server)

	client, err := fs.Glob(clientMigrations, "client/*.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, client)
}
