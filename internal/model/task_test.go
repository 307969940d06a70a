package model

import (
	"errors"
	"testing"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:        "task-1",
		Text:      "Write model validation",
		CreatedAt: 1760000000000,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		task Task
		want string
	}{
		{"missing id", Task{Text: "x", CreatedAt: 1}, "model: task id is required"},
		{"blank text", Task{ID: "task-1", Text: "   ", CreatedAt: 1}, "model: task text is required"},
		{"zero createdAt", Task{ID: "task-1", Text: "x"}, "model: task createdAt is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.task.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tc.want {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFilterMatches(t *testing.T) {
	done := Task{ID: "a", Text: "done", Completed: true, CreatedAt: 1}
	open := Task{ID: "b", Text: "open", CreatedAt: 2}

	if !FilterAll.Matches(done) || !FilterAll.Matches(open) {
		t.Fatal("FilterAll should match every task")
	}
	if !FilterCompleted.Matches(done) || FilterCompleted.Matches(open) {
		t.Fatal("FilterCompleted should match only completed tasks")
	}
	if !FilterPending.Matches(open) || FilterPending.Matches(done) {
		t.Fatal("FilterPending should match only pending tasks")
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("  Pending ")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if f != FilterPending {
		t.Fatalf("expected %q, got %q", FilterPending, f)
	}

	if _, err := ParseFilter("urgent"); err == nil || !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got: %v", err)
	}
}

func TestCreatedUsesMilliseconds(t *testing.T) {
	task := Task{ID: "a", Text: "x", CreatedAt: 1760000000000}
	if got := task.Created().UnixMilli(); got != task.CreatedAt {
		t.Fatalf("expected %d, got %d", task.CreatedAt, got)
	}
}
