package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/seed"
)

func names(students []*model.Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.Name)
	}
	return out
}

func TestFilterStudents(t *testing.T) {
	students := seed.Students()

	tests := []struct {
		name   string
		filter string
		query  string
		want   []string
	}{
		{"all majors", model.FilterAllMajors, "", names(students)},
		{"empty filter", "", "", names(students)},
		{"arts", "Arts", "", []string{"Marcus Chen", "Maya Brooks", "Aisha Patel"}},
		{"engineering", "Engineering", "", []string{"Marcus Chen", "David Kim", "Tom Baker"}},
		{"query by name", model.FilterAllMajors, "MAYA", []string{"Maya Brooks"}},
		{"query by major", model.FilterAllMajors, "bio", []string{"Sarah Johnson"}},
		{"filter and query", "Science", "psych", []string{"Elena Rodriguez"}},
		{"filter excludes query match", "Business", "tom", []string{}},
		{"unknown tag", "Law", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterStudents(students, tt.filter, tt.query)))
		})
	}
}

func TestFilterMedia(t *testing.T) {
	items := seed.Media()

	assert.Len(t, FilterMedia(items, model.FilterAllMemories), 7)
	assert.Len(t, FilterMedia(items, ""), 7)

	convocation := FilterMedia(items, "Convocation")
	assert.Len(t, convocation, 3)
	for _, item := range convocation {
		assert.True(t, item.Tags.Contains("Convocation"))
	}

	videos := FilterMedia(items, "Videos")
	assert.Len(t, videos, 1)
	assert.True(t, videos[0].IsVideo())

	assert.Empty(t, FilterMedia(items, "Senior"))
}
