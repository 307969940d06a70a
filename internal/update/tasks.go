package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tudu/internal/store"
)

func (m Model) handleCaptureKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Capturing = false
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "add cancelled", IsError: false}
		return m
	case "enter":
		m = m.addTask(m.quickAddInput.Value())
		m.quickAddInput.SetValue("")
		return m
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.EditingID = ""
		m.editInput.Blur()
		m.Status = StatusBar{Text: "edit cancelled", IsError: false}
		return m
	case "enter":
		m = m.commitEdit(m.editInput.Value())
		return m
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	tasks := m.visibleTasks()
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(tasks)-1 {
			m.Cursor++
		}
	case " ", "x":
		if m.Cursor < len(tasks) {
			m = m.toggleTask(tasks[m.Cursor].ID)
		}
	case "e":
		if m.Cursor < len(tasks) {
			task := tasks[m.Cursor]
			m.EditingID = task.ID
			m.editInput.SetValue(task.Text)
			m.editInput.Focus()
			m.editInput.CursorEnd()
			m.Status = StatusBar{Text: "editing task", IsError: false}
		}
	case "d":
		if m.Cursor < len(tasks) {
			m = m.deleteTask(tasks[m.Cursor].ID)
		}
	case "C":
		m = m.clearCompleted()
	}
	return m
}

// The dispatch helpers below call collectWarnings last so a persistence
// warning raised during the operation wins the status line.

func (m Model) addTask(text string) Model {
	task, err := m.store.Add(context.Background(), text)
	if err != nil {
		if errors.Is(err, store.ErrEmptyText) {
			m.Status = StatusBar{Text: "task text cannot be empty", IsError: true}
		} else {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		return m
	}
	m.Capturing = false
	m.quickAddInput.Blur()
	m.Cursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Text), IsError: false}
	m.collectWarnings()
	return m
}

func (m Model) toggleTask(id string) Model {
	if err := m.store.Toggle(context.Background(), id); err != nil {
		m.Status = StatusBar{Text: "task not found", IsError: true}
		return m
	}
	m.clampCursor()
	m.Status = StatusBar{Text: "toggled", IsError: false}
	m.collectWarnings()
	return m
}

func (m Model) commitEdit(text string) Model {
	err := m.store.UpdateText(context.Background(), m.EditingID, text)
	if errors.Is(err, store.ErrEmptyText) {
		m.Status = StatusBar{Text: "task text cannot be empty", IsError: true}
		return m
	}
	m.EditingID = ""
	m.editInput.Blur()
	switch {
	case errors.Is(err, store.ErrNotFound):
		m.Status = StatusBar{Text: "task not found", IsError: true}
	case err != nil:
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	default:
		m.Status = StatusBar{Text: "saved", IsError: false}
		m.collectWarnings()
	}
	return m
}

func (m Model) deleteTask(id string) Model {
	if err := m.store.Delete(context.Background(), id); err != nil {
		m.Status = StatusBar{Text: "task not found", IsError: true}
		return m
	}
	m.clampCursor()
	m.Status = StatusBar{Text: "deleted", IsError: false}
	m.collectWarnings()
	return m
}

func (m Model) clearCompleted() Model {
	removed := m.store.ClearCompleted(context.Background())
	m.clampCursor()
	if removed == 0 {
		m.Status = StatusBar{Text: "no completed tasks to clear", IsError: false}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("cleared %d completed task(s)", removed), IsError: false}
	}
	m.collectWarnings()
	return m
}
