// Package task holds the to-do record model and the helpers that operate on
// already-loaded task lists.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the dd/mm/yy layout used for CreationDate.
const DateLayout = "02/01/06"

// DefaultTitle is shown and saved when the user leaves the title blank.
const DefaultTitle = "TO-DO"

// validate caches struct metadata across calls.
var validate = validator.New()

// Task is a single persisted to-do item.
type Task struct {
	ID           int64  `json:"id"`
	Title        string `json:"title,omitempty"`
	Content      string `json:"content"`
	CreationDate string `json:"creationDate"` // dd/mm/yy, never changes after creation
	Completed    bool   `json:"completed"`
}

// DisplayTitle returns the title, or DefaultTitle when none was saved.
func (t Task) DisplayTitle() string {
	return TitleOrDefault(t.Title)
}

// NewTask carries the fields a caller supplies when creating a task.
// The store never generates ids; they come from the user flow or the import.
type NewTask struct {
	ID           int64  `validate:"min=0"`
	CreationDate string
	Content      string
	Completed    bool
}

// Validate checks the creation invariants enforced by the store.
func (n NewTask) Validate() error {
	if err := validate.Struct(n); err != nil {
		return fmt.Errorf("invalid task %d: %w", n.ID, err)
	}
	return nil
}

// ChangeKind enumerates the mutations UpdateTask understands.
type ChangeKind int

const (
	// ChangeToggleCompletion flips the completion flag.
	ChangeToggleCompletion ChangeKind = iota
	// ChangeContent overwrites title and content together.
	ChangeContent
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeToggleCompletion:
		return "toggle_completion"
	case ChangeContent:
		return "set_content"
	default:
		return fmt.Sprintf("change(%d)", int(k))
	}
}

// Change describes one update applied to a stored task.
type Change struct {
	Kind    ChangeKind
	Title   string
	Content string
}

// ToggleCompletion returns a change that flips Completed.
func ToggleCompletion() Change {
	return Change{Kind: ChangeToggleCompletion}
}

// SetContent returns a change that overwrites both title and content.
func SetContent(title, content string) Change {
	return Change{Kind: ChangeContent, Title: title, Content: content}
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// TitleOrDefault trims title and falls back to DefaultTitle when it is blank.
func TitleOrDefault(title string) string {
	if strings.TrimSpace(title) == "" {
		return DefaultTitle
	}
	return title
}
