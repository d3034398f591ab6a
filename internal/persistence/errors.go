package persistence

import "fmt"

// PersistenceReadError reports an unreadable or corrupt stored value. Loaders
// recover from it with defaults.
type PersistenceReadError struct {
	Key string
	Err error
}

func (e *PersistenceReadError) Error() string {
	return fmt.Sprintf("persistence: read %q: %v", e.Key, e.Err)
}

func (e *PersistenceReadError) Unwrap() error { return e.Err }

// PersistenceWriteError reports a failed durability write. The in-memory
// collection stays authoritative.
type PersistenceWriteError struct {
	Key string
	Err error
}

func (e *PersistenceWriteError) Error() string {
	return fmt.Sprintf("persistence: write %q: %v", e.Key, e.Err)
}

func (e *PersistenceWriteError) Unwrap() error { return e.Err }

// FormatError rejects an import that is not a JSON array of objects carrying
// id and title.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("persistence: invalid import format: %s: %v", e.Reason, e.Err)
	}
	return "persistence: invalid import format: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }
