package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"tudu/internal/model"
	"tudu/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		if m.Capturing {
			return m.handleCaptureKey(typed), nil
		}
		if m.EditingID != "" {
			return m.handleEditKey(typed), nil
		}

		switch typed.String() {
		case m.Keys.All:
			m.CurrentFilter = model.FilterAll
			m.clampCursor()
			return m, nil
		case m.Keys.Completed:
			m.CurrentFilter = model.FilterCompleted
			m.clampCursor()
			return m, nil
		case m.Keys.Pending:
			m.CurrentFilter = model.FilterPending
			m.clampCursor()
			return m, nil
		case m.Keys.Add:
			m.Capturing = true
			m.quickAddInput.Focus()
			m.quickAddInput.SetValue("")
			m.Status = StatusBar{Text: "adding task", IsError: false}
			return m, nil
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleListKey(typed), nil

	case SwitchFilterMsg:
		if typed.Filter.IsValid() {
			m.CurrentFilter = typed.Filter
			m.clampCursor()
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	var body string
	if m.HelpVisible {
		body = views.RenderHelp()
	} else {
		body = views.RenderTaskList(m.taskListData())
	}

	status := m.Status.Text
	if m.Palette.Active {
		status = views.RenderCommandPalette(true, m.commandInput.Value())
	}

	notification := ""
	if n := len(m.Notifications); n > 0 {
		last := m.Notifications[n-1]
		notification = views.RenderNotification(last.Level, last.Title+" — "+last.Body)
	}

	stats := m.store.Stats()
	return views.RenderApp(views.AppData{
		Header:       "tudu",
		Tabs:         views.RenderTabs(string(m.CurrentFilter)),
		Body:         body,
		StatusLine:   status,
		Footer:       views.RenderStatsLine(views.StatsData(stats)) + "   [a]dd [space]toggle [e]dit [d]elete [C]lear [?]help [q]uit",
		Notification: notification,
	})
}

func (m Model) taskListData() views.TaskListData {
	tasks := m.visibleTasks()
	rows := make([]views.TaskRowData, 0, len(tasks))
	for i, t := range tasks {
		row := views.TaskRowData{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: t.Created().Format("Jan 2 15:04"),
			Selected:  i == m.Cursor,
		}
		if t.ID == m.EditingID {
			row.Editing = true
			row.EditView = m.editInput.View()
		}
		rows = append(rows, row)
	}
	return views.TaskListData{
		Filter:       string(m.CurrentFilter),
		Rows:         rows,
		QuickAddView: m.quickAddInput.View(),
		Capturing:    m.Capturing,
		EmptyMessage: views.EmptyMessage(string(m.CurrentFilter)),
	}
}
