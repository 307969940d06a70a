package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt string
	Selected  bool
	Editing   bool
	EditView  string
}

type TaskListData struct {
	Filter       string
	Rows         []TaskRowData
	QuickAddView string
	Capturing    bool
	EmptyMessage string
}

type StatsData struct {
	Total     int
	Completed int
	Pending   int
}

func RenderTabs(active string) string {
	var b strings.Builder
	for i, name := range []string{"all", "completed", "pending"} {
		label := fmt.Sprintf("[%d] %s", i+1, name)
		if name == active {
			b.WriteString(activeTab.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	return b.String()
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	if data.Capturing {
		b.WriteString(data.QuickAddView + "\n\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString(data.EmptyMessage)
		return strings.TrimRight(b.String(), "\n")
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(row) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTaskRow(row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = cursorStyle.Render(">")
	}
	checkbox := "[ ]"
	if row.Completed {
		checkbox = "[x]"
	}
	if row.Editing {
		return fmt.Sprintf("%s %s %s", cursor, checkbox, row.EditView)
	}
	text := row.Text
	if row.Completed {
		text = doneTextStyle.Render(text)
	}
	if row.CreatedAt != "" {
		return fmt.Sprintf("%s %s %s  %s", cursor, checkbox, text, footerStyle.Render(row.CreatedAt))
	}
	return fmt.Sprintf("%s %s %s", cursor, checkbox, text)
}

func RenderStatsLine(data StatsData) string {
	return fmt.Sprintf("%d total · %d completed · %d pending", data.Total, data.Completed, data.Pending)
}

// EmptyMessage returns the placeholder shown when a filter view has no rows.
func EmptyMessage(filter string) string {
	switch filter {
	case "completed":
		return "No completed tasks yet."
	case "pending":
		return "Nothing pending. All caught up."
	default:
		return "No tasks yet. Press [a] to add one."
	}
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

const helpMarkdown = `# tudu

## Views
- **1 / 2 / 3** — all, completed, pending

## Tasks
- **a** — add a task (enter to save, esc to cancel)
- **j / k** or arrows — move selection
- **space / x** — toggle completion
- **e** — edit the selected task
- **d** — delete the selected task
- **C** — clear all completed tasks

## Other
- **/** — command palette (add, filter, clear, help)
- **?** — toggle this help
- **q** — quit
`

func RenderHelp() string {
	return RenderMarkdown(helpMarkdown)
}
