package persistence

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/storage"
)

type failingStore struct {
	getErr error
	setErr error
}

func (f failingStore) Get(context.Context, string) (string, error) { return "", f.getErr }
func (f failingStore) Set(context.Context, string, string) error   { return f.setErr }
func (f failingStore) Close() error                                { return nil }

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Ship <release> & notes", Description: "Tag v1.0 and publish", DueDate: "2024-08-15", Priority: model.PriorityHigh, Status: model.StatusInProgress},
		{ID: "2", Title: "Plan sprint", Description: "", DueDate: "2024-08-10", Priority: model.PriorityLow, Status: model.StatusToDo},
	}
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoadTasksSeedsDefaultsWhenAbsent(t *testing.T) {
	gw := NewGateway(storage.NewMemoryStore(), nil, DefaultTasks())
	tasks := gw.LoadTasks(context.Background())
	require.Len(t, tasks, 4)
	assert.Equal(t, "Setup Project", tasks[0].Title)
	assert.Equal(t, model.StatusCompleted, tasks[0].Status)
}

func TestLoadTasksFallsBackOnCorruptValue(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), TasksKey, "{oops"))

	var logs bytes.Buffer
	gw := NewGateway(store, newTestLogger(&logs), DefaultTasks())
	tasks := gw.LoadTasks(context.Background())

	assert.Equal(t, DefaultTasks(), tasks)
	assert.Contains(t, logs.String(), "failed to load stored value")
}

func TestLoadTasksFallsBackOnNullAndStoreError(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), TasksKey, "null"))
	assert.Len(t, NewGateway(store, nil, DefaultTasks()).LoadTasks(context.Background()), 4)

	broken := NewGateway(failingStore{getErr: errors.New("disk gone")}, nil, DefaultTasks())
	assert.Len(t, broken.LoadTasks(context.Background()), 4)
}

func TestSaveThenLoadTasks(t *testing.T) {
	store := storage.NewMemoryStore()
	gw := NewGateway(store, nil, DefaultTasks())
	require.NoError(t, gw.SaveTasks(context.Background(), sampleTasks()))

	raw, err := store.Get(context.Background(), TasksKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"status":"In Progress"`)
	assert.Contains(t, raw, `<release> & notes`)

	assert.Equal(t, sampleTasks(), gw.LoadTasks(context.Background()))
}

func TestSaveEmptyCollectionStaysEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	gw := NewGateway(store, nil, DefaultTasks())
	require.NoError(t, gw.SaveTasks(context.Background(), nil))

	raw, err := store.Get(context.Background(), TasksKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
	assert.Empty(t, gw.LoadTasks(context.Background()))
}

func TestSaveTasksReportsWriteError(t *testing.T) {
	var logs bytes.Buffer
	cause := errors.New("quota exceeded")
	gw := NewGateway(failingStore{setErr: cause}, newTestLogger(&logs), nil)

	err := gw.SaveTasks(context.Background(), sampleTasks())
	var writeErr *PersistenceWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, TasksKey, writeErr.Key)
	assert.Contains(t, logs.String(), "failed to save tasks")
}

func TestThemeRoundTrip(t *testing.T) {
	gw := NewGateway(storage.NewMemoryStore(), nil, nil)
	ctx := context.Background()
	assert.Equal(t, model.ThemeLight, gw.LoadTheme(ctx))

	require.NoError(t, gw.SaveTheme(ctx, model.ThemeDark))
	assert.Equal(t, model.ThemeDark, gw.LoadTheme(ctx))

	require.NoError(t, gw.SaveTheme(ctx, model.Theme("sepia")))
	assert.Equal(t, model.ThemeLight, gw.LoadTheme(ctx))

	broken := NewGateway(failingStore{getErr: errors.New("boom"), setErr: errors.New("boom")}, nil, nil)
	assert.Equal(t, model.ThemeLight, broken.LoadTheme(ctx))
	assert.Error(t, broken.SaveTheme(ctx, model.ThemeDark))
}

func TestExportGolden(t *testing.T) {
	g := goldie.New(t)

	payload, err := ExportTasks(sampleTasks())
	require.NoError(t, err)
	g.Assert(t, "export_two_tasks", payload)

	empty, err := ExportTasks(nil)
	require.NoError(t, err)
	g.Assert(t, "export_empty", empty)
}

func TestExportImportRoundTrip(t *testing.T) {
	cases := map[string][]model.Task{
		"empty":    {},
		"sample":   sampleTasks(),
		"defaults": DefaultTasks(),
	}
	for name, tasks := range cases {
		t.Run(name, func(t *testing.T) {
			payload, err := ExportTasks(tasks)
			require.NoError(t, err)
			got, err := ImportTasks(payload)
			require.NoError(t, err)
			assert.Equal(t, tasks, got)
		})
	}
}

func TestImportRejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"object":         `{"id":"1"}`,
		"not json":       `tasks, please`,
		"missing title":  `[{"id":"1"}]`,
		"missing id":     `[{"title":"x"}]`,
		"scalar element": `[{"id":"1","title":"a"}, 7]`,
		"null":           `null`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ImportTasks([]byte(raw))
			require.Error(t, err)
			assert.True(t, IsFormatError(err), "expected FormatError, got %v", err)
		})
	}
}

func TestImportIsPermissive(t *testing.T) {
	got, err := ImportTasks([]byte(`[{"id": 7, "title": "Legacy", "priority": "Urgent", "extra": true}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "7", got[0].ID)
	assert.Equal(t, "Legacy", got[0].Title)
	assert.Equal(t, model.Priority("Urgent"), got[0].Priority)
	assert.Empty(t, got[0].Description)
}

func TestExportOffersTasksFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	gw := NewGateway(storage.NewMemoryStore(), nil, nil)

	location, err := gw.Export(context.Background(), DirOfferer{Dir: dir}, sampleTasks())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ExportFileName), location)

	raw, err := os.ReadFile(location)
	require.NoError(t, err)
	imported, err := ImportTasks(raw)
	require.NoError(t, err)
	assert.Equal(t, sampleTasks(), imported)
}
