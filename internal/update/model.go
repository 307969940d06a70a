// Package update implements the interactive terminal UI. It is a pure
// consumer of the task store: every user intent dispatches into a store
// operation and the next render re-reads the store's derived views.
package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"tudu/internal/config"
	"tudu/internal/model"
	"tudu/internal/store"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	All       string
	Completed string
	Pending   string
	Add       string
	Palette   string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// DesktopNotifier mirrors warnings to the desktop when enabled.
type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// notificationSink collects warnings the store emits during a dispatch so
// the following render can surface them. The store calls Warn
// synchronously on the UI goroutine.
type notificationSink struct {
	pending []Notification
}

func (s *notificationSink) Warn(title, body string) {
	s.pending = append(s.pending, Notification{Title: title, Body: body, Level: "warning", At: time.Now()})
}

func (s *notificationSink) drain() []Notification {
	out := s.pending
	s.pending = nil
	return out
}

type SwitchFilterMsg struct {
	Filter model.Filter
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type Model struct {
	CurrentFilter  model.Filter
	Cursor         int
	Capturing      bool
	EditingID      string
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Notifications  []Notification
	DesktopEnabled bool
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	store    *store.Store
	notifier DesktopNotifier
	sink     *notificationSink

	quickAddInput textinput.Model
	editInput     textinput.Model
	commandInput  textinput.Model
}

func NewModel(s *store.Store) Model {
	m := Model{
		CurrentFilter: model.FilterAll,
		store:         s,
		notifier:      NoopDesktopNotifier{},
		sink:          &notificationSink{},
		Keys: GlobalKeyMap{
			All:       "1",
			Completed: "2",
			Pending:   "3",
			Add:       "a",
			Palette:   "/",
			Help:      "?",
			Quit:      "q",
		},
	}

	m.quickAddInput = textinput.New()
	m.quickAddInput.Placeholder = "What needs doing?"
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 48

	m.editInput = textinput.New()
	m.editInput.CharLimit = 256
	m.editInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add ... | filter ... | clear | help"
	m.commandInput.Width = 48

	if s != nil {
		s.SetNotifier(m.sink)
	}
	return m
}

func NewModelWithConfig(s *store.Store, notifier DesktopNotifier, cfg config.Config) Model {
	m := NewModel(s)
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	if f, err := model.ParseFilter(cfg.DefaultFilter); err == nil {
		m.CurrentFilter = f
	}
	return m
}

func (m Model) visibleTasks() []model.Task {
	if m.store == nil {
		return nil
	}
	return m.store.Filtered(m.CurrentFilter)
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if n == 0 {
		m.Cursor = 0
		return
	}
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// collectWarnings moves store warnings raised during the last dispatch
// onto the model and mirrors them to the desktop notifier.
func (m *Model) collectWarnings() {
	for _, n := range m.sink.drain() {
		m.Notifications = append(m.Notifications, n)
		m.Status = StatusBar{Text: n.Title, IsError: true}
		if m.DesktopEnabled {
			_ = m.notifier.Send(n)
		}
	}
}
