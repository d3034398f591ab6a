package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/view"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"search login", TypeSearch},
		{"status in-progress", TypeStatus},
		{"priority high", TypePriority},
		{"sort priority", TypeSort},
		{"export", TypeExport},
		{"import ~/Downloads/tasks.json", TypeImport},
		{"theme dark", TypeTheme},
		{"/clear", TypeClear},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/add  Ship the   release ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Title != "Ship the release" {
		t.Fatalf("unexpected title: %q", cmd.Add.Title)
	}

	cmd, err = Parse("status completed")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Status.Filter != view.StatusFilter(model.StatusCompleted) {
		t.Fatalf("unexpected status filter: %q", cmd.Status.Filter)
	}

	cmd, err = Parse("priority all")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Priority.Filter != view.All {
		t.Fatalf("unexpected priority filter: %q", cmd.Priority.Filter)
	}

	cmd, err = Parse("sort due")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Sort.Key != view.SortByDueDate {
		t.Fatalf("unexpected sort key: %q", cmd.Sort.Key)
	}

	cmd, err = Parse("search")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Search.Text != "" {
		t.Fatalf("bare search should clear, got %q", cmd.Search.Text)
	}

	cmd, err = Parse("theme")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Theme.Theme != "" {
		t.Fatalf("bare theme should toggle, got %q", cmd.Theme.Theme)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	inputs := []string{"add", "add   ", "status later", "priority urgent", "sort", "sort title", "import", "theme solarized"}
	for _, in := range inputs {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("clear")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
