package tabs

import "fmt"

// ValidationError reports a label (or icon) that may not enter a collection.
type ValidationError struct {
	Label  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid label %q: %s", e.Label, e.Reason)
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IndexError reports an insertion index outside [0, Len].
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid index: %d (must be between 0 and %d)", e.Index, e.Len)
}

// ConflictError reports a tab whose id is already present in the collection.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tab already present: %s", e.ID)
}

func notFound(id string) error {
	return &NotFoundError{Kind: "tab", ID: id}
}
