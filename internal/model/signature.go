package model

import "time"

// Signature is one guestbook entry on a student's yearbook page.
type Signature struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	Text      string    `db:"text" json:"text"`
	Author    string    `db:"author" json:"author"`
	Date      string    `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
