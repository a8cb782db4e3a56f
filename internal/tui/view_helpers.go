package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// prettyJSON indents a payload for display. Invalid JSON is shown as is.
func prettyJSON(data json.RawMessage) string {
	if len(bytes.TrimSpace(data)) == 0 {
		return "(none)"
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}

func pane(title, body string, width int) string {
	style := paneStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(titleStyle.Render(title) + "\n\n" + body)
}

func sideBySide(left, right string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func renderHelp(bindings ...string) string {
	return helpStyle.Render(strings.Join(bindings, "  "))
}

func versionLabel(side string, version int64) string {
	return fmt.Sprintf("%s v%d", side, version)
}
