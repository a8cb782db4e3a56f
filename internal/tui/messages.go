package tui

import "github.com/MKhiriev/go-field-sync/models"

type conflictsLoadedMsg struct {
	conflicts []models.Conflict
	err       error
}

type syncDoneMsg struct {
	report models.SyncReport
	err    error
}

type resolvedMsg struct {
	resolved models.ResolvedConflict
	err      error
}

type copiedMsg struct {
	text string
	err  error
}
