package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/models"
)

var errMergedDataNotObject = errors.New("merged data must be a JSON object")

type screen int

const (
	screenList screen = iota
	screenDetail
	screenEditor
)

// conflictItem adapts a conflict to the list delegate.
type conflictItem struct {
	conflict models.Conflict
}

func (i conflictItem) Title() string {
	return fmt.Sprintf("%s  (%s)", i.conflict.Key(), i.conflict.Operation)
}

func (i conflictItem) Description() string {
	desc := fmt.Sprintf("local v%d | server v%d", i.conflict.LocalVersion, i.conflict.ServerVersion)
	if i.conflict.DeviceID != "" {
		desc += " | " + i.conflict.DeviceID
	}
	return desc
}

func (i conflictItem) FilterValue() string {
	return i.conflict.Key().String() + " " + i.conflict.ID
}

type conflictsModel struct {
	ctx  context.Context
	sync service.ClientSyncService
	copy func(string) error

	screen   screen
	list     list.Model
	spinner  spinner.Model
	editor   textarea.Model
	selected models.Conflict

	editStrategy models.Resolution
	pending      models.Resolution

	loading bool
	syncing bool
	busy    bool
	status  string
	errMsg  string
	width   int
}

func newConflictsModel(ctx context.Context, sync service.ClientSyncService, copyFn func(string) error) conflictsModel {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Open conflicts"
	l.SetShowHelp(false)
	l.SetStatusBarItemName("conflict", "conflicts")
	l.KeyMap.Quit.SetEnabled(false)

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	editor := textarea.New()
	editor.CharLimit = 0
	editor.ShowLineNumbers = false
	editor.SetWidth(76)
	editor.SetHeight(12)

	return conflictsModel{
		ctx:     ctx,
		sync:    sync,
		copy:    copyFn,
		list:    l,
		spinner: s,
		editor:  editor,
		loading: true,
	}
}

func (m conflictsModel) Init() tea.Cmd {
	return m.cmdLoad()
}

func (m conflictsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width-4, msg.Height-6)
		m.editor.SetWidth(max(msg.Width-8, 20))
		return m, nil
	case conflictsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.conflicts))
		for i, c := range msg.conflicts {
			items[i] = conflictItem{conflict: c}
		}
		return m, m.list.SetItems(items)
	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("synced: pushed %d, pulled %d, new conflicts %d",
			msg.report.Pushed, msg.report.Pulled, msg.report.Conflicts)
		if msg.report.PushError != "" {
			m.errMsg = "push failed: " + msg.report.PushError
		}
		m.loading = true
		return m, m.cmdLoad()
	case resolvedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("conflict %s resolved at version %d", msg.resolved.Conflict.ID, msg.resolved.FinalVersion)
		m.screen = screenList
		m.loading = true
		return m, m.cmdLoad()
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = "copied " + msg.text
		return m, nil
	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.errMsg != "" {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.errMsg = ""
			}
			return m, nil
		}
		if m.pending != "" {
			return m.updateConfirm(msg)
		}
	}

	switch m.screen {
	case screenDetail:
		return m.updateDetail(msg)
	case screenEditor:
		return m.updateEditor(msg)
	default:
		return m.updateList(msg)
	}
}

func (m conflictsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(keyMsg, keys.quit):
			return m, tea.Quit
		case key.Matches(keyMsg, keys.enter):
			item, ok := m.list.SelectedItem().(conflictItem)
			if !ok {
				return m, nil
			}
			m.selected = item.conflict
			m.status = ""
			m.screen = screenDetail
			return m, nil
		case key.Matches(keyMsg, keys.reload):
			m.loading = true
			return m, m.cmdLoad()
		case key.Matches(keyMsg, keys.sync):
			if m.syncing {
				return m, nil
			}
			m.syncing = true
			return m, tea.Batch(m.spinner.Tick, m.cmdSync())
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m conflictsModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.busy {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.screen = screenList
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.localWins):
		m.pending = models.ResolutionLocalWins
	case key.Matches(keyMsg, keys.serverWins):
		m.pending = models.ResolutionServerWins
	case key.Matches(keyMsg, keys.merge):
		seed := m.selected.LocalData
		if len(seed) == 0 {
			seed = m.selected.ServerData
		}
		return m.openEditor(models.ResolutionMerge, seed)
	case key.Matches(keyMsg, keys.manual):
		return m.openEditor(models.ResolutionManual, m.selected.ServerData)
	case key.Matches(keyMsg, keys.copy):
		return m, m.cmdCopy(m.selected.ID)
	}

	return m, nil
}

func (m conflictsModel) openEditor(strategy models.Resolution, seed json.RawMessage) (tea.Model, tea.Cmd) {
	value := "{}"
	if len(bytes.TrimSpace(seed)) > 0 {
		value = prettyJSON(seed)
	}

	m.editStrategy = strategy
	m.editor.SetValue(value)
	m.screen = screenEditor
	cmd := m.editor.Focus()
	return m, cmd
}

func (m conflictsModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.editor.Blur()
			m.screen = screenDetail
			return m, nil
		case key.Matches(keyMsg, keys.submit):
			if m.busy {
				return m, nil
			}
			data := json.RawMessage(strings.TrimSpace(m.editor.Value()))
			if !isJSONObject(data) {
				m.errMsg = errMergedDataNotObject.Error()
				return m, nil
			}
			m.busy = true
			return m, m.cmdResolve(m.selected.ID, m.editStrategy, data)
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m conflictsModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		resolution := m.pending
		m.pending = ""
		m.busy = true
		return m, m.cmdResolve(m.selected.ID, resolution, nil)
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.pending = ""
	}
	return m, nil
}

func (m conflictsModel) View() string {
	var body string
	switch {
	case m.errMsg != "":
		body = overlayBoxStyle.Render(errorStyle.Render("Error") + "\n\n" + m.errMsg + "\n\n" + renderHelp("enter/esc close"))
	case m.pending != "":
		body = overlayBoxStyle.Render(fmt.Sprintf("Resolve %s with %s?\nThe choice is final.\n\n", m.selected.Key(), m.pending) +
			renderHelp("y yes", "n no"))
	case m.screen == screenDetail:
		body = m.viewDetail()
	case m.screen == screenEditor:
		body = m.viewEditor()
	default:
		body = m.viewList()
	}

	return appStyle.Render(body)
}

func (m conflictsModel) viewList() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading conflicts...\n\n")
	}
	b.WriteString(m.list.View())
	b.WriteString("\n")
	if m.syncing {
		b.WriteString(m.spinner.View() + " syncing\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(renderHelp("enter open", "/ filter", "r reload", "s sync", "q quit"))

	return b.String()
}

func (m conflictsModel) viewDetail() string {
	c := m.selected

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s", c.Key(), c.Operation)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("conflict %s from %s at %s", c.ID, orUnknown(c.DeviceID), c.CreatedAt.Format("2006-01-02 15:04:05"))))
	b.WriteString("\n")
	if c.CurrentVersion > c.ServerVersion {
		b.WriteString(errorStyle.Render(fmt.Sprintf("record moved on to v%d since detection", c.CurrentVersion)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	width := 0
	if m.width > 0 {
		width = max((m.width-10)/2, 20)
	}
	local := prettyJSON(c.LocalData)
	if c.Operation == models.OperationDelete {
		local = "(delete)"
	}
	b.WriteString(sideBySide(
		pane(versionLabel("local", c.LocalVersion), local, width),
		pane(versionLabel("server", c.ServerVersion), prettyJSON(c.ServerData), width),
	))
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString("Resolving...\n")
	}
	b.WriteString(renderHelp("l local wins", "s server wins", "m merge", "e manual", "c copy id", "esc back"))

	return b.String()
}

func (m conflictsModel) viewEditor() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", m.editStrategy, m.selected.Key())))
	b.WriteString("\n\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n\n")
	if m.busy {
		b.WriteString("Resolving...\n")
	}
	b.WriteString(renderHelp("ctrl+s resolve", "esc cancel"))
	return b.String()
}

func (m conflictsModel) cmdLoad() tea.Cmd {
	ctx, svc := m.ctx, m.sync
	return func() tea.Msg {
		conflicts, err := svc.Conflicts(ctx)
		return conflictsLoadedMsg{conflicts: conflicts, err: err}
	}
}

func (m conflictsModel) cmdSync() tea.Cmd {
	ctx, svc := m.ctx, m.sync
	return func() tea.Msg {
		report, err := svc.Sync(ctx)
		return syncDoneMsg{report: report, err: err}
	}
}

func (m conflictsModel) cmdResolve(conflictID string, resolution models.Resolution, merged json.RawMessage) tea.Cmd {
	ctx, svc := m.ctx, m.sync
	return func() tea.Msg {
		resolved, err := svc.ResolveConflict(ctx, conflictID, resolution, merged)
		return resolvedMsg{resolved: resolved, err: err}
	}
}

func (m conflictsModel) cmdCopy(text string) tea.Cmd {
	copyFn := m.copy
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{text: text}
	}
}

func isJSONObject(data json.RawMessage) bool {
	return len(data) > 0 && data[0] == '{' && json.Valid(data)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown device"
	}
	return s
}
