package task

import "strings"

// Filter returns the tasks whose title or content contains query.
// Matching is case-sensitive. An empty query is not a filter: the input is
// returned as-is and callers should treat that as the unfiltered list.
func Filter(tasks []Task, query string) []Task {
	if query == "" {
		return tasks
	}

	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(t.Title, query) || strings.Contains(t.Content, query) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
