package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/seed"
)

var (
	ErrStudentNotFound = errors.New("student not found")
)

type StudentRepository interface {
	ByID(ctx context.Context, id string) (*model.Student, error)
	All(ctx context.Context) ([]*model.Student, error)
	Upsert(ctx context.Context, student *model.Student) error
}

type MessageRepository interface {
	// All returns the wall newest first.
	All(ctx context.Context) ([]*model.WallMessage, error)
	Create(ctx context.Context, message *model.WallMessage) error
}

type MediaRepository interface {
	// All returns the vault newest first.
	All(ctx context.Context) ([]*model.VaultItem, error)
	Create(ctx context.Context, item *model.VaultItem) error
}

type SignatureRepository interface {
	// ByStudent returns a student's guestbook in the order it was signed.
	ByStudent(ctx context.Context, studentID string) ([]*model.Signature, error)
	Create(ctx context.Context, signature *model.Signature) error
}

// Repositories groups the four content collections behind one backend.
type Repositories struct {
	Students   StudentRepository
	Messages   MessageRepository
	Media      MediaRepository
	Signatures SignatureRepository
}

func NewMemoryRepositories(store *MemoryStore) *Repositories {
	return &Repositories{
		Students:   &memoryStudents{store: store},
		Messages:   &memoryMessages{store: store},
		Media:      &memoryMedia{store: store},
		Signatures: &memorySignatures{store: store},
	}
}

func NewSQLRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Students:   NewStudentRepository(db),
		Messages:   NewMessageRepository(db),
		Media:      NewMediaRepository(db),
		Signatures: NewSignatureRepository(db),
	}
}

// SeedIfEmpty fills each empty collection with the starting content.
// Collections that already hold data are left alone.
func SeedIfEmpty(ctx context.Context, repos *Repositories) error {
	students, err := repos.Students.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if len(students) == 0 {
		for _, s := range seed.Students() {
			err = repos.Students.Upsert(ctx, s)
			if err != nil {
				return fmt.Errorf("failed to seed student %s: %w", s.ID, err)
			}
		}
		slog.Info("seeded students")
	}

	messages, err := repos.Messages.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to count messages: %w", err)
	}
	if len(messages) == 0 {
		for _, m := range seed.Messages() {
			err = repos.Messages.Create(ctx, m)
			if err != nil {
				return fmt.Errorf("failed to seed message %s: %w", m.ID, err)
			}
		}
		slog.Info("seeded wall messages")
	}

	media, err := repos.Media.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to count media: %w", err)
	}
	if len(media) == 0 {
		for _, item := range seed.Media() {
			err = repos.Media.Create(ctx, item)
			if err != nil {
				return fmt.Errorf("failed to seed media %s: %w", item.ID, err)
			}
		}
		slog.Info("seeded vault media")
	}

	return nil
}
