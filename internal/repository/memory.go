package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/seed"
)

// MemoryStore holds every collection in process memory. Each operation runs
// under one lock, so concurrent writers are last-write-wins and readers
// never observe a partial update. Contents are lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	students   []*model.Student
	messages   []*model.WallMessage
	media      []*model.VaultItem
	signatures map[string][]*model.Signature
}

// NewMemoryStore returns a store holding the seed content.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.Reset()
	return s
}

// Reset restores the seed content and drops every signature.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.students = seed.Students()
	s.messages = seed.Messages()
	s.media = seed.Media()
	s.signatures = make(map[string][]*model.Signature)
}

type memoryStudents struct {
	store *MemoryStore
}

func (r *memoryStudents) ByID(ctx context.Context, id string) (*model.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.students {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return nil, ErrStudentNotFound
}

func (r *memoryStudents) All(ctx context.Context) ([]*model.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*model.Student, 0, len(r.store.students))
	for _, s := range r.store.students {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (r *memoryStudents) Upsert(ctx context.Context, student *model.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored := student.Clone()
	i := slices.IndexFunc(r.store.students, func(s *model.Student) bool {
		return s.ID == student.ID
	})
	if i >= 0 {
		stored.CreatedAt = r.store.students[i].CreatedAt
		r.store.students[i] = stored
		return nil
	}
	r.store.students = append(r.store.students, stored)
	return nil
}

type memoryMessages struct {
	store *MemoryStore
}

func (r *memoryMessages) All(ctx context.Context) ([]*model.WallMessage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*model.WallMessage, 0, len(r.store.messages))
	for _, m := range r.store.messages {
		out = append(out, m.Clone())
	}
	return out, nil
}

func (r *memoryMessages) Create(ctx context.Context, message *model.WallMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.messages = slices.Insert(r.store.messages, 0, message.Clone())
	return nil
}

type memoryMedia struct {
	store *MemoryStore
}

func (r *memoryMedia) All(ctx context.Context) ([]*model.VaultItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*model.VaultItem, 0, len(r.store.media))
	for _, item := range r.store.media {
		out = append(out, item.Clone())
	}
	return out, nil
}

func (r *memoryMedia) Create(ctx context.Context, item *model.VaultItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.media = slices.Insert(r.store.media, 0, item.Clone())
	return nil
}

type memorySignatures struct {
	store *MemoryStore
}

func (r *memorySignatures) ByStudent(ctx context.Context, studentID string) ([]*model.Signature, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries := r.store.signatures[studentID]
	out := make([]*model.Signature, 0, len(entries))
	for _, sig := range entries {
		c := *sig
		out = append(out, &c)
	}
	return out, nil
}

func (r *memorySignatures) Create(ctx context.Context, signature *model.Signature) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c := *signature
	r.store.signatures[signature.StudentID] = append(r.store.signatures[signature.StudentID], &c)
	return nil
}
