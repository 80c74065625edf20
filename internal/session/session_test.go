package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:        "u-1",
		Email:     "ada@example.com",
		Name:      "ada",
		AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=ada@example.com",
	}
}

func exerciseSlot(t *testing.T, slot Slot) {
	t.Helper()
	ctx := context.Background()

	user, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, slot.Save(ctx, testUser()))

	user, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testUser(), user)

	require.NoError(t, slot.Clear(ctx))
	require.NoError(t, slot.Clear(ctx))

	user, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestMemorySlot(t *testing.T) {
	exerciseSlot(t, NewMemory())
}

func TestMemorySlotReturnsCopies(t *testing.T) {
	ctx := context.Background()
	slot := NewMemory()
	require.NoError(t, slot.Save(ctx, testUser()))

	user, err := slot.Load(ctx)
	require.NoError(t, err)
	user.Name = "changed"

	again, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada", again.Name)
}

func TestMemorySlotCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, NewMemory().Save(ctx, testUser()), context.Canceled)
}

func TestFileSlot(t *testing.T) {
	exerciseSlot(t, NewFile(filepath.Join(t.TempDir(), "nested", "session.json")))
}

func TestFileSlotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, NewFile(path).Save(ctx, testUser()))

	user, err := NewFile(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testUser(), user)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), Key)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileSlotCorruptIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	user, err := NewFile(path).Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCookieSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewCookieStore("test-secret", time.Hour, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	slot := store.Slot(rec, req)
	require.NoError(t, slot.Save(ctx, testUser()))

	// Visible within the same request.
	user, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testUser(), user)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, Key, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	next := httptest.NewRequest(http.MethodGet, "/wall", nil)
	next.AddCookie(cookies[0])
	user, err = store.Slot(httptest.NewRecorder(), next).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testUser(), user)
}

func TestCookieSlotRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()

	rec := httptest.NewRecorder()
	require.NoError(t, NewCookieStore("other", time.Hour, false).
		Slot(rec, httptest.NewRequest(http.MethodGet, "/", nil)).
		Save(ctx, testUser()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	out := httptest.NewRecorder()

	user, err := NewCookieStore("test-secret", time.Hour, false).Slot(out, req).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	cleared := out.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
}

func TestCookieSlotClear(t *testing.T) {
	ctx := context.Background()
	store := NewCookieStore("test-secret", time.Hour, true)

	rec := httptest.NewRecorder()
	slot := store.Slot(rec, httptest.NewRequest(http.MethodPost, "/auth/signout", nil))
	require.NoError(t, slot.Clear(ctx))

	user, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Secure)
}

func TestRedisSlot(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx := context.Background()
	store := NewRedisStore(NewRedisClient(mr.Addr(), "", 0), time.Minute, false)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Ping(ctx))

	rec := httptest.NewRecorder()
	slot := store.Slot(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	exerciseSlot(t, slot)

	require.NoError(t, slot.Save(ctx, testUser()))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	sid := cookies[len(cookies)-1]
	assert.Equal(t, SIDCookie, sid.Name)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(sid)
	user, err := store.Slot(httptest.NewRecorder(), next).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testUser(), user)

	key := redisKey(sid.Value)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(2 * time.Minute)
	user, err = store.Slot(httptest.NewRecorder(), next).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, user, "expired sessions read as empty")
}
