package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sandeepkv93/zentask/internal/model"
)

const ExportFileName = "tasks.json"

// Offerer hands a finished export to the user, e.g. by saving it as a file.
// It returns where the content ended up.
type Offerer interface {
	Offer(ctx context.Context, name string, content []byte) (string, error)
}

// DirOfferer saves offered files into Dir.
type DirOfferer struct {
	Dir string
}

func (o DirOfferer) Offer(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := o.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ExportTasks encodes the full collection as a pretty-printed JSON array.
func ExportTasks(tasks []model.Task) ([]byte, error) {
	return encodeTasks(tasks, "  ")
}

// Export encodes tasks and offers them as tasks.json.
func (g *Gateway) Export(ctx context.Context, offerer Offerer, tasks []model.Task) (string, error) {
	payload, err := ExportTasks(tasks)
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	location, err := offerer.Offer(ctx, ExportFileName, payload)
	if err != nil {
		return "", fmt.Errorf("offer export: %w", err)
	}
	g.logger.Info("tasks exported", "count", len(tasks), "location", location)
	return location, nil
}

// ImportTasks decodes an exported file. The value must be a JSON array and
// every element an object with "id" and "title" keys; nothing else is checked.
// Non-string field values are kept as their JSON text.
func ImportTasks(raw []byte) ([]model.Task, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &FormatError{Reason: "not valid JSON", Err: err}
	}
	items, ok := decoded.([]any)
	if !ok {
		return nil, &FormatError{Reason: "expected a JSON array of tasks"}
	}

	tasks := make([]model.Task, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, &FormatError{Reason: fmt.Sprintf("element %d is not an object", i)}
		}
		_, hasID := fields["id"]
		_, hasTitle := fields["title"]
		if !hasID || !hasTitle {
			return nil, &FormatError{Reason: fmt.Sprintf("element %d is missing id or title", i)}
		}
		tasks = append(tasks, model.Task{
			ID:          stringField(fields, "id"),
			Title:       stringField(fields, "title"),
			Description: stringField(fields, "description"),
			DueDate:     stringField(fields, "dueDate"),
			Priority:    model.Priority(stringField(fields, "priority")),
			Status:      model.Status(stringField(fields, "status")),
		})
	}
	return tasks, nil
}

// IsFormatError reports whether err rejects an import.
func IsFormatError(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
