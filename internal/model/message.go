package model

import "time"

type PaperStyle string

const (
	Paper1 PaperStyle = "paper-1"
	Paper2 PaperStyle = "paper-2"
	Paper3 PaperStyle = "paper-3"
	Paper4 PaperStyle = "paper-4"
)

var PaperStyles = []PaperStyle{Paper1, Paper2, Paper3, Paper4}

func (p PaperStyle) Valid() bool {
	switch p {
	case Paper1, Paper2, Paper3, Paper4:
		return true
	}
	return false
}

// WallMessage is a sticky note on the message wall.
// Rotation and TapeRotation are CSS angles like "-2.15deg".
type WallMessage struct {
	ID           string     `db:"id" json:"id"`
	Text         string     `db:"text" json:"text"`
	Author       string     `db:"author" json:"author"`
	Major        string     `db:"major" json:"major,omitempty"`
	Date         string     `db:"date" json:"date"`
	Style        PaperStyle `db:"style" json:"style"`
	Rotation     string     `db:"rotation" json:"rotation"`
	TapeRotation string     `db:"tape_rotation" json:"tape_rotation"`
	Image        string     `db:"image" json:"image,omitempty"`
	Tags         StringList `db:"tags" json:"tags,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"-"`
}

// NewWallMessage is the caller-supplied part of a post.
type NewWallMessage struct {
	Text   string
	Author string
	Style  PaperStyle
	Major  string
}

func (m *WallMessage) Clone() *WallMessage {
	c := *m
	c.Tags = m.Tags.Clone()
	return &c
}
