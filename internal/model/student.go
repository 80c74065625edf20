package model

import "time"

const (
	FilterAllMajors = "All Majors"

	// TagStudent is assigned to profiles saved from the dashboard.
	TagStudent = "Student"
)

// MajorFilters are the yearbook filter chips. Anything but FilterAllMajors matches a tag.
var MajorFilters = []string{FilterAllMajors, "Engineering", "Arts", "Science", "Business"}

type Student struct {
	ID      string     `db:"id" json:"id"`
	Name    string     `db:"name" json:"name"`
	Major   string     `db:"major" json:"major"`
	Quote   string     `db:"quote" json:"quote"`
	Image   string     `db:"image" json:"image"`
	Tags    StringList `db:"tags" json:"tags"`
	Socials `json:"socials"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

type Socials struct {
	LinkedIn  string `db:"linkedin" json:"linkedin,omitempty"`
	Instagram string `db:"instagram" json:"instagram,omitempty"`
	Twitter   string `db:"twitter" json:"twitter,omitempty"`
}

func (s Socials) Empty() bool {
	return s.LinkedIn == "" && s.Instagram == "" && s.Twitter == ""
}

func (s *Student) HasTag(tag string) bool {
	return s.Tags.Contains(tag)
}

// Clone returns a deep copy so callers never share the tag slice with a store.
func (s *Student) Clone() *Student {
	c := *s
	c.Tags = s.Tags.Clone()
	return &c
}
