package ui

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
	appver "github.com/open-cli-collective/opencli-mcp/internal/version"
)

func (m model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	b := &strings.Builder{}
	fmt.Fprintf(b, "\n  %s %s\n\n", AccentBold().Render("opencli-mcp"), MutedStyle().Render(appver.AppVersion))

	headers := []string{"TOOL", "BIN", "VERSION", "LATEST", "NOTE"}
	rows := make([][]string, 0, len(m.order))
	for _, id := range m.order {
		rows = append(rows, m.rowFor(id))
	}

	widths := columnWidths(headers, rows)
	b.WriteString("  " + styledRow(headers, widths, true) + "\n")
	b.WriteString("  " + headerRule(widths) + "\n")
	for i, id := range m.order {
		line := paddedRow(rows[i], widths)
		st, ok := m.rows[id]
		switch {
		case !ok:
			line = MutedStyle().Render(line)
		case !st.Installed:
			line = badStyle().Render(line)
		case st.Latest != "" && tools.IsNewer(st.Latest, st.Version):
			line = warnStyle().Render(line)
		default:
			line = textStyle().Render(line)
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.pending > 0:
		fmt.Fprintf(b, "  %s checking %d tool(s)...\n", m.sp.View(), m.pending)
	case m.busy:
		fmt.Fprintf(b, "  %s %s\n", m.sp.View(), m.notice)
	case m.notice != "":
		fmt.Fprintf(b, "  %s\n", okStyle().Render(m.notice))
	default:
		fmt.Fprintf(b, "  %s\n", MutedStyle().Render("refreshed "+m.updatedAt.Format("15:04:05")))
	}

	b.WriteString("\n  " + secondaryStyle().Render("r refresh · u update · i install missing · q quit") + "\n")
	return b.String()
}

// headerRule draws the divider between the header and the status rows,
// spanning every column plus the two-space gaps.
func headerRule(widths []int) string {
	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return ruleStyle().Render(strings.Repeat("─", total))
}

func (m model) rowFor(id tools.ToolID) []string {
	st, ok := m.rows[id]
	if !ok {
		return []string{string(id), "…", "", "", m.notes[id]}
	}
	installed := "×"
	if st.Installed {
		installed = "✓"
	}
	note := m.notes[id]
	if note == "" && !st.Installed {
		note = "not installed"
	}
	if note == "" && st.Latest != "" && tools.IsNewer(st.Latest, st.Version) {
		note = "update available"
	}
	return []string{string(id), installed, st.Version, st.Latest, note}
}

// columnWidths sizes each column to its widest cell, display-width aware.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i := 0; i < len(widths) && i < len(r); i++ {
			if w := runewidth.StringWidth(r[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func paddedRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		var c string
		if i < len(cells) {
			c = cells[i]
		}
		parts[i] = c + strings.Repeat(" ", widths[i]-runewidth.StringWidth(c))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func styledRow(cells []string, widths []int, bold bool) string {
	row := paddedRow(cells, widths)
	if bold {
		return AccentBold().Render(row)
	}
	return row
}
