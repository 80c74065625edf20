package service

import (
	"strings"

	"github.com/batch26/keepsake/internal/model"
)

// FilterStudents keeps students carrying the filter tag whose name or major
// contains query, case-insensitively. "All Majors" or an empty filter, and
// an empty query, match everyone.
func FilterStudents(students []*model.Student, filter, query string) []*model.Student {
	query = strings.ToLower(query)
	out := make([]*model.Student, 0, len(students))
	for _, s := range students {
		if filter != "" && filter != model.FilterAllMajors && !s.HasTag(filter) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(s.Name), query) &&
			!strings.Contains(strings.ToLower(s.Major), query) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterMedia keeps items tagged with filter. "All Memories" or an empty
// filter returns every item.
func FilterMedia(items []*model.VaultItem, filter string) []*model.VaultItem {
	if filter == "" || filter == model.FilterAllMemories {
		return items
	}
	out := make([]*model.VaultItem, 0, len(items))
	for _, item := range items {
		if item.Tags.Contains(filter) {
			out = append(out, item)
		}
	}
	return out
}
