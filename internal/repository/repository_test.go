package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/db"
	"github.com/batch26/keepsake/internal/model"
)

// backends runs fn against a seeded memory store and a seeded, migrated
// in-memory sqlite database so both implementations keep the same contract.
func backends(t *testing.T, fn func(t *testing.T, repos *Repositories)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryRepositories(NewMemoryStore()))
	})

	t.Run("sqlite", func(t *testing.T) {
		ctx := context.Background()
		conn, err := db.Init("sqlite", ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close(conn) })
		require.NoError(t, db.RunMigrations(ctx, conn.DB, "sqlite"))

		repos := NewSQLRepositories(conn)
		require.NoError(t, SeedIfEmpty(ctx, repos))
		fn(t, repos)
	})
}

func TestStudents(t *testing.T) {
	backends(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()

		all, err := repos.Students.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 8)
		assert.Equal(t, "Elena Rodriguez", all[0].Name)
		assert.Equal(t, "Tom Baker", all[7].Name)
		assert.Equal(t, model.StringList{"Arts", "Engineering"}, all[1].Tags)
		assert.Equal(t, "#", all[3].Twitter)

		_, err = repos.Students.ByID(ctx, "missing")
		require.ErrorIs(t, err, ErrStudentNotFound)

		updated := all[0]
		updated.Quote = "Still has the pens."
		require.NoError(t, repos.Students.Upsert(ctx, updated))

		got, err := repos.Students.ByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Still has the pens.", got.Quote)

		all, err = repos.Students.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 8, "upsert of an existing id must not add a row")
		assert.Equal(t, "1", all[0].ID)

		fresh := &model.Student{ID: "u-42", Name: "Ada", Major: "Maths", Tags: model.StringList{model.TagStudent}}
		require.NoError(t, repos.Students.Upsert(ctx, fresh))
		all, err = repos.Students.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 9)
		assert.Equal(t, "u-42", all[8].ID)
	})
}

func TestMessagesNewestFirst(t *testing.T) {
	backends(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()

		all, err := repos.Messages.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "1", all[0].ID)
		assert.Equal(t, model.StringList{"#Memories", "#PizzaLords"}, all[3].Tags)

		msg := &model.WallMessage{
			ID:           "new",
			Text:         "See you at the reunion",
			Author:       "Anonymous",
			Date:         "2026-05-02",
			Style:        model.Paper3,
			Rotation:     "1.50deg",
			TapeRotation: "-0.25deg",
			CreatedAt:    time.Now(),
		}
		require.NoError(t, repos.Messages.Create(ctx, msg))

		all, err = repos.Messages.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 5)
		assert.Equal(t, "new", all[0].ID)
		assert.Equal(t, model.Paper3, all[0].Style)
		assert.Empty(t, all[0].Tags)
	})
}

func TestMediaNewestFirst(t *testing.T) {
	backends(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()

		item := &model.VaultItem{
			ID:        "upload",
			Type:      model.MediaTypeVideo,
			Src:       "/blobs/vault/upload.mp4",
			Date:      "2026-05-02",
			Tags:      model.StringList{model.TagUserUpload},
			Aspect:    model.AspectSquare,
			CreatedAt: time.Now(),
		}
		require.NoError(t, repos.Media.Create(ctx, item))

		all, err := repos.Media.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 8)
		assert.Equal(t, "upload", all[0].ID)
		assert.True(t, all[0].IsVideo())
		assert.Equal(t, "1", all[1].ID)
	})
}

func TestSignaturesAppendOrder(t *testing.T) {
	backends(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()

		empty, err := repos.Signatures.ByStudent(ctx, "3")
		require.NoError(t, err)
		assert.Empty(t, empty)

		base := time.Now()
		for i := range 3 {
			require.NoError(t, repos.Signatures.Create(ctx, &model.Signature{
				ID:        fmt.Sprintf("sig-%d", i),
				StudentID: "3",
				Text:      fmt.Sprintf("note %d", i),
				Author:    "Anonymous",
				Date:      "2026-05-02",
				CreatedAt: base.Add(time.Duration(i) * time.Second),
			}))
		}

		sigs, err := repos.Signatures.ByStudent(ctx, "3")
		require.NoError(t, err)
		require.Len(t, sigs, 3)
		for i, sig := range sigs {
			assert.Equal(t, fmt.Sprintf("sig-%d", i), sig.ID)
		}

		other, err := repos.Signatures.ByStudent(ctx, "4")
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	require.NoError(t, SeedIfEmpty(ctx, repos))
	all, err := repos.Students.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestMemoryListsAreCopies(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	students, err := repos.Students.All(ctx)
	require.NoError(t, err)
	students[0].Name = "mutated"
	students[0].Tags[0] = "mutated"

	again, err := repos.Students.ByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Elena Rodriguez", again.Name)
	assert.Equal(t, model.StringList{"Science"}, again.Tags)
}

func TestMemoryReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repos := NewMemoryRepositories(store)

	require.NoError(t, repos.Messages.Create(ctx, &model.WallMessage{ID: "x", Style: model.Paper1}))
	require.NoError(t, repos.Signatures.Create(ctx, &model.Signature{ID: "s", StudentID: "1"}))
	require.NoError(t, repos.Students.Upsert(ctx, &model.Student{ID: "new"}))

	store.Reset()

	msgs, err := repos.Messages.All(ctx)
	require.NoError(t, err)
	assert.Len(t, msgs, 4)
	sigs, err := repos.Signatures.ByStudent(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, sigs)
	students, err := repos.Students.All(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 8)
}

func TestMemoryConcurrentUpsertsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repos.Students.Upsert(ctx, &model.Student{ID: "race", Name: fmt.Sprintf("writer %d", i)})
		}()
	}
	wg.Wait()

	all, err := repos.Students.All(ctx)
	require.NoError(t, err)
	count := 0
	for _, s := range all {
		if s.ID == "race" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
