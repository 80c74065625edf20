package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/batch26/keepsake/internal/latency"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/repository"
	"github.com/batch26/keepsake/internal/validation"
)

const AnonymousAuthor = "Anonymous"

type YearbookService struct {
	students   repository.StudentRepository
	signatures repository.SignatureRepository
	latency    latency.Policy
	entropy    entropy
}

func NewYearbookService(students repository.StudentRepository, signatures repository.SignatureRepository, policy latency.Policy) *YearbookService {
	return &YearbookService{
		students:   students,
		signatures: signatures,
		latency:    policy,
		entropy:    defaultEntropy(),
	}
}

// Profile returns the student with id, or nil when there is none.
func (s *YearbookService) Profile(ctx context.Context, id string) (*model.Student, error) {
	err := latency.Wait(ctx, s.latency, latency.OpGetProfile)
	if err != nil {
		return nil, err
	}

	student, err := s.students.ByID(ctx, id)
	if errors.Is(err, repository.ErrStudentNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return student, nil
}

// UpdateProfile inserts or replaces the profile with the same id.
func (s *YearbookService) UpdateProfile(ctx context.Context, student *model.Student) (*model.Student, error) {
	err := validation.ValidateProfile(student)
	if err != nil {
		return nil, err
	}

	err = latency.Wait(ctx, s.latency, latency.OpUpdateProfile)
	if err != nil {
		return nil, err
	}

	stored := student.Clone()
	stored.Name = strings.TrimSpace(stored.Name)
	err = s.students.Upsert(ctx, stored)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return stored, nil
}

func (s *YearbookService) Students(ctx context.Context) ([]*model.Student, error) {
	err := latency.Wait(ctx, s.latency, latency.OpListStudents)
	if err != nil {
		return nil, err
	}

	students, err := s.students.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// Signatures returns the guestbook of a student, oldest first.
func (s *YearbookService) Signatures(ctx context.Context, studentID string) ([]*model.Signature, error) {
	err := latency.Wait(ctx, s.latency, latency.OpListSignatures)
	if err != nil {
		return nil, err
	}

	signatures, err := s.signatures.ByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list signatures: %w", err)
	}
	return signatures, nil
}

// Sign appends a guestbook entry. A blank author signs as Anonymous.
func (s *YearbookService) Sign(ctx context.Context, studentID, text, author string) (*model.Signature, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, errors.New("student id is required")
	}
	err := validation.ValidateSignature(text)
	if err != nil {
		return nil, err
	}

	err = latency.Wait(ctx, s.latency, latency.OpSignGuestbook)
	if err != nil {
		return nil, err
	}

	author = strings.TrimSpace(author)
	if author == "" {
		author = AnonymousAuthor
	}

	signature := &model.Signature{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Text:      strings.TrimSpace(text),
		Author:    author,
		Date:      s.entropy.today(),
		CreatedAt: s.entropy.now(),
	}

	err = s.signatures.Create(ctx, signature)
	if err != nil {
		return nil, fmt.Errorf("failed to sign yearbook: %w", err)
	}
	return signature, nil
}
