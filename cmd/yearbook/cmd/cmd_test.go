package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/app"
	"github.com/batch26/keepsake/internal/config"
	"github.com/batch26/keepsake/internal/session"
)

func newEnv(t *testing.T) *Env {
	t.Helper()
	a, err := app.NewHeadless(context.Background(), &config.Config{
		AppEnv:              "test",
		AppName:             "Batch '26",
		ContentPath:         "../../../content",
		DataBackend:         config.DataBackendMemory,
		Latency:             config.LatencyNone,
		SignupFailureMarker: "error",
		SigninFailureEmail:  "fail@test.com",
		StorageDriver:       config.StorageDriverMemory,
		MaxUploadSize:       1 << 20,
	})
	require.NoError(t, err)
	return &Env{App: a, Slot: session.NewMemory()}
}

// run executes one invocation against env and returns stdout.
func run(t *testing.T, env *Env, stdin string, args ...string) (string, error) {
	t.Helper()
	root := Root(func(context.Context) (*Env, error) { return env, nil })

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAuthFlow(t *testing.T) {
	env := newEnv(t)

	out, err := run(t, env, "", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not signed in\n", out)

	out, err = run(t, env, "hunter2\n", "signup", "--email", "ada@example.com", "--name", "Ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed up as Ada <ada@example.com>")

	out, err = run(t, env, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada <ada@example.com>")

	out, err = run(t, env, "", "signout")
	require.NoError(t, err)
	assert.Equal(t, "Signed out\n", out)

	_, err = run(t, env, "", "signin", "--email", "fail@test.com", "--password", "x")
	assert.EqualError(t, err, "Invalid credentials")

	out, err = run(t, env, "", "signin", "--email", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as alice <alice>")

	out, err = run(t, env, "", "signin", "--email", "ada@example.com", "--password", "x")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as ada <ada@example.com>")
}

func TestStudents(t *testing.T) {
	env := newEnv(t)

	out, err := run(t, env, "", "students", "--search", "marcus")
	require.NoError(t, err)
	assert.Contains(t, out, "Marcus Chen")
	assert.NotContains(t, out, "Elena Rodriguez")

	out, err = run(t, env, "", "students", "--filter", "Science")
	require.NoError(t, err)
	assert.Contains(t, out, "Elena Rodriguez")

	out, err = run(t, env, "", "profile", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Elena Rodriguez")
	assert.Contains(t, out, "Psychology")

	_, err = run(t, env, "", "profile", "404")
	assert.ErrorContains(t, err, "no student")
}

func TestGuestbook(t *testing.T) {
	env := newEnv(t)

	out, err := run(t, env, "", "guestbook", "1")
	require.NoError(t, err)
	assert.Equal(t, "No signatures yet\n", out)

	out, err = run(t, env, "", "sign", "1", "Stay", "golden")
	require.NoError(t, err)
	assert.Equal(t, "Signed as Anonymous\n", out)

	_, err = run(t, env, "", "signin", "--email", "ada@example.com", "--password", "x")
	require.NoError(t, err)
	_, err = run(t, env, "", "sign", "1", "See you soon")
	require.NoError(t, err)

	out, err = run(t, env, "", "guestbook", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Anonymous: Stay golden")
	assert.Contains(t, out, "ada: See you soon")
}

func TestWall(t *testing.T) {
	env := newEnv(t)

	out, err := run(t, env, "", "post", "Hello", "wall")
	require.NoError(t, err)
	assert.Contains(t, out, "Pinned as Anonymous")

	_, err = run(t, env, "", "signin", "--email", "ada@example.com", "--password", "x")
	require.NoError(t, err)

	out, err = run(t, env, "", "post", "Signed note")
	require.NoError(t, err)
	assert.Contains(t, out, "Pinned as ada")

	out, err = run(t, env, "", "post", "--anonymous", "Secret note")
	require.NoError(t, err)
	assert.Contains(t, out, "Pinned as Anonymous")

	out, err = run(t, env, "", "messages")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Secret note\n"))
	assert.Contains(t, out, "by ada (Student)")
	assert.Contains(t, out, "Hello wall")
}

func TestUpload(t *testing.T) {
	env := newEnv(t)

	file := filepath.Join(t.TempDir(), "party.png")
	require.NoError(t, os.WriteFile(file, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01"), 0o600))

	_, err := run(t, env, "", "upload", file)
	assert.EqualError(t, err, "sign in to upload memories")

	_, err = run(t, env, "", "signin", "--email", "ada@example.com", "--password", "x")
	require.NoError(t, err)

	out, err := run(t, env, "", "upload", "--caption", "Prom night", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved image /blobs/vault/")

	out, err = run(t, env, "", "media", "--filter", "User Upload")
	require.NoError(t, err)
	assert.Contains(t, out, "Prom night")
}

func TestTimeline(t *testing.T) {
	env := newEnv(t)

	out, err := run(t, env, "", "timeline")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "2022  The First Hello", lines[0])
}

func TestReadLine(t *testing.T) {
	line, err := readLine(strings.NewReader("secret\r\nignored"))
	require.NoError(t, err)
	assert.Equal(t, "secret", line)

	line, err = readLine(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", line)
}

func TestMigrateNeedsSQL(t *testing.T) {
	_, err := run(t, newEnv(t), "", "migrate", "down")
	assert.ErrorIs(t, err, errNoDatabase)
}

func TestMigrateDownSQL(t *testing.T) {
	a, err := app.NewHeadless(context.Background(), &config.Config{
		AppEnv:        "test",
		ContentPath:   "../../../content",
		DataBackend:   config.DataBackendSQL,
		DBDriver:      "sqlite",
		DBConnection:  ":memory:",
		Latency:       config.LatencyNone,
		StorageDriver: config.StorageDriverMemory,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })
	env := &Env{App: a, Slot: session.NewMemory()}

	out, err := run(t, env, "", "students", "--search", "elena")
	require.NoError(t, err)
	assert.Contains(t, out, "Elena Rodriguez")

	out, err = run(t, env, "", "migrate", "down")
	require.NoError(t, err)
	assert.Equal(t, "Rolled back one migration\n", out)
}
