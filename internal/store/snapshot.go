package store

import (
	"encoding/json"
	"fmt"

	"tudu/internal/model"
)

// snapshotTask mirrors the stored wire shape with pointer fields so that
// missing keys are distinguishable from zero values. A type mismatch
// fails the unmarshal outright; a missing field leaves the pointer nil.
type snapshotTask struct {
	ID        *string  `json:"id"`
	Text      *string  `json:"text"`
	Completed *bool    `json:"completed"`
	CreatedAt *float64 `json:"createdAt"`
}

// decodeSnapshot adopts a persisted snapshot all-or-nothing: the payload
// must be a JSON array and every element must carry a string id, string
// text, boolean completed, and numeric createdAt.
func decodeSnapshot(raw json.RawMessage) ([]model.Task, error) {
	var records []snapshotTask
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("snapshot is not a task array: %w", err)
	}
	tasks := make([]model.Task, 0, len(records))
	for i, rec := range records {
		if rec.ID == nil || rec.Text == nil || rec.Completed == nil || rec.CreatedAt == nil {
			return nil, fmt.Errorf("snapshot element %d is missing required fields", i)
		}
		task := model.Task{
			ID:        *rec.ID,
			Text:      *rec.Text,
			Completed: *rec.Completed,
			CreatedAt: int64(*rec.CreatedAt),
		}
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("snapshot element %d: %w", i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func encodeSnapshot(tasks []model.Task) (json.RawMessage, error) {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
