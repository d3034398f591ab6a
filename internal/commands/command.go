package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/view"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeSearch   Type = "search"
	TypeStatus   Type = "status"
	TypePriority Type = "priority"
	TypeSort     Type = "sort"
	TypeExport   Type = "export"
	TypeImport   Type = "import"
	TypeTheme    Type = "theme"
	TypeClear    Type = "clear"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

type SearchArgs struct {
	Text string
}

type StatusArgs struct {
	Filter view.StatusFilter
}

type PriorityArgs struct {
	Filter view.PriorityFilter
}

type SortArgs struct {
	Key view.SortKey
}

type ExportArgs struct {
	Dir string
}

type ImportArgs struct {
	Path string
}

// ThemeArgs.Theme is empty when the command should toggle.
type ThemeArgs struct {
	Theme model.Theme
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Search   *SearchArgs
	Status   *StatusArgs
	Priority *PriorityArgs
	Sort     *SortArgs
	Export   *ExportArgs
	Import   *ImportArgs
	Theme    *ThemeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	rest := strings.TrimSpace(strings.Join(args, " "))

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Text: rest}}, nil
	case TypeStatus:
		return parseStatus(input, rest)
	case TypePriority:
		return parsePriority(input, rest)
	case TypeSort:
		return parseSort(input, rest)
	case TypeExport:
		return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Dir: rest}}, nil
	case TypeImport:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "import requires a file path"}
		}
		return Command{Type: TypeImport, Raw: input, Import: &ImportArgs{Path: rest}}, nil
	case TypeTheme:
		return parseTheme(input, rest)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw, title string) (Command, error) {
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseStatus(raw, arg string) (Command, error) {
	filter, err := view.ParseStatusFilter(arg)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("status expects all, todo, in-progress or completed, got %q", arg)}
	}
	return Command{Type: TypeStatus, Raw: raw, Status: &StatusArgs{Filter: filter}}, nil
}

func parsePriority(raw, arg string) (Command, error) {
	filter, err := view.ParsePriorityFilter(arg)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("priority expects all, low, medium or high, got %q", arg)}
	}
	return Command{Type: TypePriority, Raw: raw, Priority: &PriorityArgs{Filter: filter}}, nil
}

func parseSort(raw, arg string) (Command, error) {
	if arg == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sort requires due or priority"}
	}
	key, err := view.ParseSortKey(arg)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("sort expects due or priority, got %q", arg)}
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Key: key}}, nil
}

func parseTheme(raw, arg string) (Command, error) {
	switch strings.ToLower(arg) {
	case "", "toggle":
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{}}, nil
	case string(model.ThemeDark), string(model.ThemeLight):
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: model.ParseTheme(arg)}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("theme expects dark or light, got %q", arg)}
	}
}
