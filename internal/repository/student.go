package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/batch26/keepsake/internal/model"
)

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) ByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.GetContext(ctx, &student, `SELECT * FROM students WHERE id = $1`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentRepository) All(ctx context.Context) ([]*model.Student, error) {
	students := []*model.Student{}
	err := r.db.SelectContext(ctx, &students, `SELECT * FROM students ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return students, nil
}

// Upsert replaces every field but created_at when the id already exists.
func (r *studentRepository) Upsert(ctx context.Context, student *model.Student) error {
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.CreatedAt = student.CreatedAt.UTC()
	student.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO students (id, name, major, quote, image, tags, linkedin, instagram, twitter, created_at, updated_at)
		VALUES (:id, :name, :major, :quote, :image, :tags, :linkedin, :instagram, :twitter, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			major = excluded.major,
			quote = excluded.quote,
			image = excluded.image,
			tags = excluded.tags,
			linkedin = excluded.linkedin,
			instagram = excluded.instagram,
			twitter = excluded.twitter,
			updated_at = excluded.updated_at
	`, student)

	return err
}
