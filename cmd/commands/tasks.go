package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"tudu/internal/model"
	"tudu/internal/store"
)

func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		ArgsUsage: "<text>",
		Action:    runAdd,
	}
}

func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "View to show: all, completed or pending",
				Value:   "all",
			},
		},
		Action: runList,
	}
}

func NewDoneCommand() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Toggle a task's completion",
		ArgsUsage: "<id>",
		Action:    runDone,
	}
}

func NewEditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Replace a task's text",
		ArgsUsage: "<id> <text>",
		Action:    runEdit,
	}
}

func NewRmCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task",
		ArgsUsage: "<id>",
		Action:    runRm,
	}
}

func NewClearCommand() *cli.Command {
	return &cli.Command{
		Name:   "clear",
		Usage:  "Remove all completed tasks",
		Action: runClear,
	}
}

func runAdd(ctx context.Context, cmd *cli.Command) error {
	text := strings.Join(cmd.Args().Slice(), " ")
	s, _, cleanup, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	task, err := s.Add(ctx, text)
	if err != nil {
		if errors.Is(err, store.ErrEmptyText) {
			return fmt.Errorf("task text cannot be empty")
		}
		return err
	}
	fmt.Printf("added %s  %s\n", shortID(task.ID), task.Text)
	return nil
}

func runList(ctx context.Context, cmd *cli.Command) error {
	filter, err := model.ParseFilter(cmd.String("filter"))
	if err != nil {
		return fmt.Errorf("unknown filter %q: use all, completed or pending", cmd.String("filter"))
	}

	s, _, cleanup, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	tasks := s.Filtered(filter)
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tCREATED\tTEXT")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\n",
			shortID(t.ID),
			done,
			t.Created().Format("2006-01-02 15:04"),
			t.Text,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats := s.Stats()
	fmt.Printf("\n%d total, %d completed, %d pending\n", stats.Total, stats.Completed, stats.Pending)
	return nil
}

func runDone(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("usage: tudu done <id>")
	}
	s, _, cleanup, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	full, err := resolveID(s, id)
	if err != nil {
		return err
	}
	if err := s.Toggle(ctx, full); err != nil {
		return err
	}
	fmt.Printf("toggled %s\n", shortID(full))
	return nil
}

func runEdit(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	text := strings.Join(cmd.Args().Tail(), " ")
	if id == "" || strings.TrimSpace(text) == "" {
		return fmt.Errorf("usage: tudu edit <id> <text>")
	}
	s, _, cleanup, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	full, err := resolveID(s, id)
	if err != nil {
		return err
	}
	if err := s.UpdateText(ctx, full, text); err != nil {
		if errors.Is(err, store.ErrEmptyText) {
			return fmt.Errorf("task text cannot be empty")
		}
		return err
	}
	fmt.Printf("updated %s\n", shortID(full))
	return nil
}

func runRm(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("usage: tudu rm <id>")
	}
	s, _, cleanup, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	full, err := resolveID(s, id)
	if err != nil {
		return err
	}
	if err := s.Delete(ctx, full); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", shortID(full))
	return nil
}

func runClear(ctx context.Context, cmd *cli.Command) error {
	s, _, cleanup, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	removed := s.ClearCompleted(ctx)
	fmt.Printf("cleared %d completed task(s)\n", removed)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID expands an id prefix to the full task id. An exact match wins;
// an ambiguous prefix is an error.
func resolveID(s *store.Store, prefix string) (string, error) {
	matches := make([]string, 0, 1)
	for _, t := range s.Tasks() {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task with id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
