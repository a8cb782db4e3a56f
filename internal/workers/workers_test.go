// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
)

// orderWorker appends its id to a shared log on Run and Stop.
type orderWorker struct {
	id  int
	log *[]string
}

func (o *orderWorker) Run()  { *o.log = append(*o.log, "run", string(rune('0'+o.id))) }
func (o *orderWorker) Stop() { *o.log = append(*o.log, "stop", string(rune('0'+o.id))) }

func TestWorkers_RunAndStopOrder(t *testing.T) {
	var log []string
	ws := &Workers{workers: []Worker{
		&orderWorker{id: 1, log: &log},
		&orderWorker{id: 2, log: &log},
		&orderWorker{id: 3, log: &log},
	}}

	ws.Run()
	ws.Stop()

	assert.Equal(t, []string{
		"run", "1", "run", "2", "run", "3",
		"stop", "3", "stop", "2", "stop", "1",
	}, log)
}

func TestWorkers_Empty(t *testing.T) {
	ws := &Workers{}

	// no workers is not an error
	ws.Run()
	ws.Stop()
}

func TestNewServerWorkers(t *testing.T) {
	services := &service.Services{SyncService: nil}

	ws, err := NewServerWorkers(services, config.Workers{CleanupSchedule: "@daily", CleanupDaysOld: 30}, logger.Nop())
	require.NoError(t, err)
	assert.Len(t, ws.workers, 1)

	_, err = NewServerWorkers(services, config.Workers{CleanupSchedule: "whenever", CleanupDaysOld: 30}, logger.Nop())
	assert.Error(t, err)
}

func TestNewClientWorkers(t *testing.T) {
	ws := NewClientWorkers(&service.ClientServices{}, config.ClientWorkers{SyncInterval: time.Minute}, logger.Nop())
	assert.Len(t, ws.workers, 1)
}
