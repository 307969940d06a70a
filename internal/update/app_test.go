package update

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tudu/internal/model"
	"tudu/internal/storage"
	"tudu/internal/store"
)

func newTestModel(t *testing.T) (Model, *store.Store) {
	t.Helper()
	s, err := store.New(context.Background(), storage.NewMemoryKV())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewModel(s), s
}

func keyRunes(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.CurrentFilter != model.FilterAll {
		t.Fatalf("expected default filter %q, got %q", model.FilterAll, m.CurrentFilter)
	}
	if m.Keys.Quit != "q" || m.Keys.Add != "a" {
		t.Fatalf("unexpected keymap: %+v", m.Keys)
	}
}

func TestFilterKeysSwitchView(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyRunes("2"))
	next := updated.(Model)
	if next.CurrentFilter != model.FilterCompleted {
		t.Fatalf("expected completed view, got %q", next.CurrentFilter)
	}

	updated, _ = next.Update(keyRunes("3"))
	next = updated.(Model)
	if next.CurrentFilter != model.FilterPending {
		t.Fatalf("expected pending view, got %q", next.CurrentFilter)
	}
}

func TestQuickAddFlow(t *testing.T) {
	m, s := newTestModel(t)

	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	if !next.Capturing {
		t.Fatal("expected capture mode after add key")
	}

	for _, r := range "Buy milk" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Capturing {
		t.Fatal("expected capture mode off after enter")
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("expected task persisted via store, got %+v", tasks)
	}
}

func TestQuickAddRejectsEmptyText(t *testing.T) {
	m, s := newTestModel(t)

	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if !next.Status.IsError || !strings.Contains(next.Status.Text, "empty") {
		t.Fatalf("expected validation status, got %+v", next.Status)
	}
	if len(s.Tasks()) != 0 {
		t.Fatalf("store must stay empty, got %+v", s.Tasks())
	}
}

func TestToggleAndDeleteKeys(t *testing.T) {
	m, s := newTestModel(t)
	ctx := context.Background()
	if _, err := s.Add(ctx, "Buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, _ := m.Update(keyRunes("x"))
	next := updated.(Model)
	if !s.Tasks()[0].Completed {
		t.Fatal("expected toggle to complete the task")
	}

	updated, _ = next.Update(keyRunes("d"))
	next = updated.(Model)
	if len(s.Tasks()) != 0 {
		t.Fatalf("expected task deleted, got %+v", s.Tasks())
	}
	if next.Status.IsError {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}
}

func TestClearCompletedKey(t *testing.T) {
	m, s := newTestModel(t)
	ctx := context.Background()
	task, _ := s.Add(ctx, "done")
	if _, err := s.Add(ctx, "open"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Toggle(ctx, task.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	updated, _ := m.Update(keyRunes("C"))
	next := updated.(Model)
	if len(s.Tasks()) != 1 || s.Tasks()[0].Text != "open" {
		t.Fatalf("expected only open task to remain, got %+v", s.Tasks())
	}
	if !strings.Contains(next.Status.Text, "1") {
		t.Fatalf("expected removal count in status, got %+v", next.Status)
	}
}

func TestEditFlow(t *testing.T) {
	m, s := newTestModel(t)
	ctx := context.Background()
	if _, err := s.Add(ctx, "Buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, _ := m.Update(keyRunes("e"))
	next := updated.(Model)
	if next.EditingID == "" {
		t.Fatal("expected edit mode")
	}

	next.editInput.SetValue("Buy oat milk")
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.EditingID != "" {
		t.Fatal("expected edit mode off after enter")
	}
	if got := s.Tasks()[0].Text; got != "Buy oat milk" {
		t.Fatalf("expected edited text, got %q", got)
	}
}

func TestPaletteAddCommand(t *testing.T) {
	m, s := newTestModel(t)

	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette active")
	}

	next.commandInput.SetValue("add Walk dog")
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Palette.Active {
		t.Fatal("expected palette closed after enter")
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Walk dog" {
		t.Fatalf("expected palette add to reach the store, got %+v", tasks)
	}
}

func TestPaletteFilterCommand(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	next.commandInput.SetValue("filter pending")
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.CurrentFilter != model.FilterPending {
		t.Fatalf("expected pending filter, got %q", next.CurrentFilter)
	}
}

func TestSwitchFilterMsgIgnoresInvalid(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(SwitchFilterMsg{Filter: model.FilterCompleted})
	next := updated.(Model)
	if next.CurrentFilter != model.FilterCompleted {
		t.Fatalf("expected completed filter, got %q", next.CurrentFilter)
	}

	updated, _ = next.Update(SwitchFilterMsg{Filter: model.Filter("bogus")})
	next = updated.(Model)
	if next.CurrentFilter != model.FilterCompleted {
		t.Fatalf("expected filter unchanged for invalid value, got %q", next.CurrentFilter)
	}
}

func TestStatusAndErrorMsgs(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	boom := errors.New("boom")
	updated, _ = next.Update(AppErrorMsg{Err: boom})
	next = updated.(Model)
	if next.LastError == nil || !next.Status.IsError {
		t.Fatalf("expected error surfaced: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got %+v", next.Status)
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(keyRunes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

type failingKV struct {
	*storage.MemoryKV
}

func (f *failingKV) Set(context.Context, string, json.RawMessage) error {
	return errors.New("quota exceeded")
}

func TestWriteFailureSurfacesNotification(t *testing.T) {
	kv := &failingKV{MemoryKV: storage.NewMemoryKV()}
	s, err := store.New(context.Background(), kv)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	m := NewModel(s)

	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	for _, r := range "Buy milk" {
		updated, _ = next.Update(keyRunes(string(r)))
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if len(s.Tasks()) != 1 {
		t.Fatal("mutation must survive the write failure")
	}
	if len(next.Notifications) != 1 {
		t.Fatalf("expected one notification, got %+v", next.Notifications)
	}
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}
