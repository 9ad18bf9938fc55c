package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/tasknest/internal/task"
)

// Checkbox returns the completion marker for a task.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// RenderTaskList renders tasks as a table fitting in width cells.
func RenderTaskList(tasks []task.Task, width int) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render(" No tasks yet. Add one with `tasknest add`.") + "\n"
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			Checkbox(t.Completed),
			strconv.FormatInt(t.ID, 10),
			t.DisplayTitle(),
			firstLine(t.Content),
			t.CreationDate,
		})
	}

	table := &Table{
		Headers: []string{"", "ID", "Title", "Content", "Created"},
		Rows:    rows,
		// Leave room for the fixed-size columns and the gaps between them.
		MaxWidth: max(12, (width-30)/2),
		RowStyle: func(r int) lipgloss.Style {
			if tasks[r].Completed {
				return StyleDone
			}
			return StyleText
		},
	}

	var sb strings.Builder
	sb.WriteString(table.Render())
	sb.WriteString(StyleSubtle.Render(fmt.Sprintf(" %d task(s), %d done", len(tasks), countDone(tasks))) + "\n")
	return sb.String()
}

// RenderTask renders one task as a card.
func RenderTask(t task.Task, width int) string {
	title := StyleTitle.Render(t.DisplayTitle())
	if t.Completed {
		title = StyleDone.Render(t.DisplayTitle())
	}

	meta := StyleSubtle.Render(fmt.Sprintf("#%d  %s  %s", t.ID, t.CreationDate, Checkbox(t.Completed)))
	body := t.Content
	if body == "" {
		body = StyleSubtle.Render("(no content)")
	}

	style := StyleCard
	if width > 4 {
		style = style.Width(min(width-2, 80))
	}
	return style.Render(title+"\n"+meta+"\n\n"+body) + "\n"
}

// RenderError renders a classified error with its category as the title.
func RenderError(message, category string) string {
	return StyleErrorBox.Render(StyleError.Bold(true).Render(category)+"\n"+message) + "\n"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func countDone(tasks []task.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
