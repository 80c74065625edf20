package service

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/latency"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/storage"
)

func TestProfileMissingIsNil(t *testing.T) {
	f := newFixture()
	student, err := f.yearbook.Profile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, student)
}

func TestUpdateProfileUpserts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	profile := &model.Student{
		ID:    "u-1",
		Name:  "Ada",
		Major: "Maths",
		Quote: "Numbers all the way down.",
		Image: "https://api.dicebear.com/7.x/avataaars/svg?seed=Ada",
		Tags:  model.StringList{model.TagStudent},
	}
	saved, err := f.yearbook.UpdateProfile(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "Ada", saved.Name)

	got, err := f.yearbook.Profile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Maths", got.Major)

	profile.Major = "Physics"
	_, err = f.yearbook.UpdateProfile(ctx, profile)
	require.NoError(t, err)

	all, err := f.yearbook.Students(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 9)
	assert.Equal(t, "Physics", all[8].Major)
}

func TestUpdateProfileValidation(t *testing.T) {
	_, err := newFixture().yearbook.UpdateProfile(context.Background(), &model.Student{ID: "u-1"})
	require.EqualError(t, err, "name is required")
}

func TestStudentsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	all, err := f.yearbook.Students(ctx)
	require.NoError(t, err)
	all[0].Name = "changed"

	fresh, err := f.yearbook.Students(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 8)
	assert.Equal(t, "Elena Rodriguez", fresh[0].Name)
}

func TestSignAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.yearbook.entropy = fixedEntropy(0, 0)

	first, err := f.yearbook.Sign(ctx, "2", "Design is never done!", "")
	require.NoError(t, err)
	assert.Equal(t, AnonymousAuthor, first.Author)
	assert.Equal(t, "2026-05-20", first.Date)
	assert.Equal(t, "2", first.StudentID)

	second, err := f.yearbook.Sign(ctx, "2", "See you in Lisbon", "Ada")
	require.NoError(t, err)

	sigs, err := f.yearbook.Signatures(ctx, "2")
	require.NoError(t, err)
	require.Len(t, sigs, 2)
	assert.Equal(t, first.ID, sigs[0].ID)
	assert.Equal(t, second.ID, sigs[1].ID)

	none, err := f.yearbook.Signatures(ctx, "3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSignRejectsBlank(t *testing.T) {
	_, err := newFixture().yearbook.Sign(context.Background(), "2", "   ", "Ada")
	require.Error(t, err)
}

func TestPostPrependsWithRotation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.wall.entropy = fixedEntropy(0, 2)

	msg, err := f.wall.Post(ctx, model.NewWallMessage{Text: "  We made it!  ", Author: "Ada", Major: model.TagStudent})
	require.NoError(t, err)
	assert.Equal(t, "We made it!", msg.Text)
	assert.Equal(t, model.Paper3, msg.Style)
	assert.Equal(t, "-3.00deg", msg.Rotation)
	assert.Equal(t, "-5.00deg", msg.TapeRotation)
	assert.Equal(t, "2026-05-20", msg.Date)
	assert.Equal(t, model.TagStudent, msg.Major)

	all, err := f.wall.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, msg.ID, all[0].ID)
}

func TestPostRotationRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for range 50 {
		msg, err := f.wall.Post(ctx, model.NewWallMessage{Text: "hi", Style: model.Paper1})
		require.NoError(t, err)
		assert.Equal(t, AnonymousAuthor, msg.Author)

		rot, err := strconv.ParseFloat(strings.TrimSuffix(msg.Rotation, "deg"), 64)
		require.NoError(t, err)
		tape, err := strconv.ParseFloat(strings.TrimSuffix(msg.TapeRotation, "deg"), 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rot, -3.0)
		assert.LessOrEqual(t, rot, 3.0)
		assert.GreaterOrEqual(t, tape, -5.0)
		assert.LessOrEqual(t, tape, 5.0)
	}
}

func TestPostRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.wall.Post(ctx, model.NewWallMessage{Text: ""})
	require.Error(t, err)

	_, err = f.wall.Post(ctx, model.NewWallMessage{Text: "hi", Style: "paper-7"})
	require.Error(t, err)

	all, err := f.wall.Messages(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4, "rejected posts never reach the store")
}

func TestPostCancelledBeforeMutation(t *testing.T) {
	f := newFixture()
	f.wall.latency = latency.Fixed(map[latency.Op]time.Duration{latency.OpPostMessage: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.wall.Post(ctx, model.NewWallMessage{Text: "late"})
	require.ErrorIs(t, err, context.Canceled)

	f.wall.latency = latency.None()
	all, err := f.wall.Messages(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.vault.entropy = fixedEntropy(0, 0)
	user := IdentityForEmail("ada@example.com")

	item, err := f.vault.Upload(ctx, Upload{
		Filename:    "Party.PNG",
		ContentType: "image/png",
		Size:        int64(len(pngBytes)),
		Body:        bytes.NewReader(pngBytes),
		Caption:     "Grad party",
	}, user)
	require.NoError(t, err)

	assert.Equal(t, model.MediaTypeImage, item.Type)
	assert.Equal(t, "Grad party", item.Alt)
	assert.Equal(t, "Grad party", item.Caption)
	assert.Equal(t, model.StringList{model.TagUserUpload}, item.Tags)
	assert.Equal(t, model.AspectSquare, item.Aspect)
	assert.Equal(t, "2026-05-20", item.Date)
	assert.True(t, strings.HasPrefix(item.Src, storage.BlobPrefix+"vault/"))
	assert.True(t, strings.HasSuffix(item.Src, ".png"))

	obj, err := f.blobs.Open(ctx, strings.TrimPrefix(item.Src, storage.BlobPrefix))
	require.NoError(t, err)
	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	all, err := f.vault.Media(ctx)
	require.NoError(t, err)
	require.Len(t, all, 8)
	assert.Equal(t, item.ID, all[0].ID)
}

func TestUploadVideoByDeclaredType(t *testing.T) {
	mp4 := []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")
	item, err := newFixture().vault.Upload(context.Background(), Upload{
		Filename:    "lecture.mp4",
		ContentType: "video/mp4",
		Size:        int64(len(mp4)),
		Body:        bytes.NewReader(mp4),
		Caption:     "The last lecture",
	}, IdentityForEmail("ada@example.com"))
	require.NoError(t, err)
	assert.True(t, item.IsVideo())
}

func TestUploadQuickTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	mov := []byte("\x00\x00\x00\x14ftypqt  \x00\x00\x00\x00qt  ")

	item, err := f.vault.Upload(ctx, Upload{
		Filename:    "clip.mov",
		ContentType: "video/quicktime",
		Size:        int64(len(mov)),
		Body:        bytes.NewReader(mov),
		Caption:     "Cap toss",
	}, IdentityForEmail("ada@example.com"))
	require.NoError(t, err)
	assert.True(t, item.IsVideo())
	assert.True(t, strings.HasSuffix(item.Src, ".mov"))

	obj, err := f.blobs.Open(ctx, strings.TrimPrefix(item.Src, storage.BlobPrefix))
	require.NoError(t, err)
	assert.Equal(t, "video/quicktime", obj.ContentType)
}

func TestUploadRequiresUser(t *testing.T) {
	_, err := newFixture().vault.Upload(context.Background(), Upload{
		Filename: "a.png",
		Size:     int64(len(pngBytes)),
		Body:     bytes.NewReader(pngBytes),
	}, nil)
	require.ErrorIs(t, err, ErrSignInRequired)
}

func TestUploadRejectsNonMedia(t *testing.T) {
	f := newFixture()
	_, err := f.vault.Upload(context.Background(), Upload{
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Size:        5,
		Body:        strings.NewReader("hello"),
	}, IdentityForEmail("ada@example.com"))
	require.Error(t, err)

	all, err := f.vault.Media(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestWallAuthor(t *testing.T) {
	ada := &model.User{ID: "u-1", Name: "ada"}

	tests := []struct {
		name      string
		typed     string
		anonymous bool
		user      *model.User
		author    string
		major     string
	}{
		{"blank", "  ", false, nil, AnonymousAuthor, ""},
		{"typed", " Grace ", false, nil, "Grace", ""},
		{"own name", "ada", false, ada, "ada", model.TagStudent},
		{"other name", "Grace", false, ada, "Grace", ""},
		{"anonymous wins", "ada", true, ada, AnonymousAuthor, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			author, major := WallAuthor(tt.typed, tt.anonymous, tt.user)
			assert.Equal(t, tt.author, author)
			assert.Equal(t, tt.major, major)
		})
	}
}

func TestSitemap(t *testing.T) {
	s := NewSitemapService("https://batch26.example/")
	s.entropy = fixedEntropy(0, 0)

	out, err := s.GenerateSitemap()
	require.NoError(t, err)
	xml := string(out)
	assert.True(t, strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xml, "<loc>https://batch26.example/</loc>")
	assert.Contains(t, xml, "<loc>https://batch26.example/wall</loc>")
	assert.Contains(t, xml, "<lastmod>2026-05-20</lastmod>")
	assert.Equal(t, 5, strings.Count(xml, "<url>"))

	assert.Contains(t, string(s.RobotsTxt()), "Sitemap: https://batch26.example/sitemap.xml")
}
