package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/batch26/keepsake/internal/model"
)

type signatureRepository struct {
	db *sqlx.DB
}

func NewSignatureRepository(db *sqlx.DB) SignatureRepository {
	return &signatureRepository{db: db}
}

func (r *signatureRepository) ByStudent(ctx context.Context, studentID string) ([]*model.Signature, error) {
	signatures := []*model.Signature{}
	err := r.db.SelectContext(ctx, &signatures, `
		SELECT * FROM signatures WHERE student_id = $1 ORDER BY created_at ASC
	`, studentID)
	if err != nil {
		return nil, err
	}
	return signatures, nil
}

func (r *signatureRepository) Create(ctx context.Context, signature *model.Signature) error {
	if signature.CreatedAt.IsZero() {
		signature.CreatedAt = time.Now()
	}
	// Stored as text by sqlite; a single zone keeps ORDER BY chronological.
	signature.CreatedAt = signature.CreatedAt.UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO signatures (id, student_id, text, author, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, signature.ID, signature.StudentID, signature.Text, signature.Author, signature.Date, signature.CreatedAt)

	return err
}
