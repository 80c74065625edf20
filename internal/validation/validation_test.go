package validation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/model"
)

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("ada@example.com"))
	require.Error(t, ValidateEmail(""))
	require.Error(t, ValidateEmail("not-an-email"))
	require.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.io"))
}

func TestNormalizeEmail(t *testing.T) {
	addr, err := NormalizeEmail("Bob <bob@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", addr)

	_, err = NormalizeEmail("not-an-email")
	require.EqualError(t, err, "invalid email address format")
}

func TestLooseEmail(t *testing.T) {
	addr, err := LooseEmail("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", addr)

	addr, err = LooseEmail("Bob <bob@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", addr)

	_, err = LooseEmail("")
	require.EqualError(t, err, "email address is required")
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("x"))
	require.EqualError(t, ValidatePassword(""), "password is required")
}

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("Ada Lovelace"))
	require.EqualError(t, ValidateName("   "), "name is required")
	require.Error(t, ValidateName(strings.Repeat("é", 101)))
	require.NoError(t, ValidateName(strings.Repeat("é", 100)))
}

func TestValidateMessage(t *testing.T) {
	require.NoError(t, ValidateMessage("hello", model.Paper2))
	require.Error(t, ValidateMessage(" ", model.Paper2))
	require.Error(t, ValidateMessage(strings.Repeat("a", MaxMessageLength+1), model.Paper2))
	require.Error(t, ValidateMessage("hello", model.PaperStyle("paper-9")))
}

func TestValidateSignature(t *testing.T) {
	require.NoError(t, ValidateSignature("Stay golden"))
	require.Error(t, ValidateSignature(""))
	require.Error(t, ValidateSignature(strings.Repeat("a", MaxSignatureLength+1)))
}

func TestValidateProfile(t *testing.T) {
	valid := &model.Student{
		ID:      "u-1",
		Name:    "Ada",
		Socials: model.Socials{LinkedIn: "#", Twitter: "https://x.com/ada"},
	}
	require.NoError(t, ValidateProfile(valid))

	require.Error(t, ValidateProfile(nil))
	require.Error(t, ValidateProfile(&model.Student{Name: "Ada"}))
	require.Error(t, ValidateProfile(&model.Student{ID: "u-1"}))

	bad := *valid
	bad.Instagram = "javascript:alert(1)"
	err := ValidateProfile(&bad)
	require.ErrorContains(t, err, "instagram")
	assert.True(t, IsInvalid(err), "wrapped link errors stay recognisable")
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestValidateFileImage(t *testing.T) {
	ct, err := ValidateFile("photo.png", int64(len(pngHeader)), bytes.NewReader(pngHeader), MediaConstraints(25<<20)...)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
}

func TestValidateFileVideo(t *testing.T) {
	// ISO base media header with an mp4 brand.
	mp4 := []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")
	ct, err := ValidateFile("clip.mp4", int64(len(mp4)), bytes.NewReader(mp4), MediaConstraints(25<<20)...)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", ct)
}

func TestValidateFileRejects(t *testing.T) {
	_, err := ValidateFile("notes.txt", 5, strings.NewReader("hello"), MediaConstraints(25<<20)...)
	require.ErrorContains(t, err, "invalid file type")

	_, err = ValidateFile("photo.txt", int64(len(pngHeader)), bytes.NewReader(pngHeader), MediaConstraints(25<<20)...)
	require.ErrorContains(t, err, "invalid file extension")

	_, err = ValidateFile("photo.png", 26<<20, bytes.NewReader(pngHeader), MediaConstraints(25<<20)...)
	require.ErrorContains(t, err, "file too large")

	_, err = ValidateFile("photo.png", 1, bytes.NewReader(pngHeader))
	require.Error(t, err)
}

func TestValidateDeclaredFile(t *testing.T) {
	mov := []byte("\x00\x00\x00\x14ftypqt  \x00\x00\x00\x00qt  ")

	_, err := ValidateFile("clip.mov", int64(len(mov)), bytes.NewReader(mov), MediaConstraints(25<<20)...)
	require.ErrorContains(t, err, "application/octet-stream")

	ct, err := ValidateDeclaredFile("clip.mov", int64(len(mov)), bytes.NewReader(mov), "video/quicktime", MediaConstraints(25<<20)...)
	require.NoError(t, err)
	assert.Equal(t, "video/quicktime", ct)

	// Arbitrary bytes sniff as text but the declared video type holds.
	raw := []byte("not a real header")
	ct, err = ValidateDeclaredFile("clip.mp4", int64(len(raw)), bytes.NewReader(raw), "video/mp4", MediaConstraints(25<<20)...)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", ct)

	// Recognised content beats the declaration.
	ct, err = ValidateDeclaredFile("photo.png", int64(len(pngHeader)), bytes.NewReader(pngHeader), "video/mp4", MediaConstraints(25<<20)...)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	_, err = ValidateDeclaredFile("page.mov", 20, strings.NewReader("<html><body></body>"), "video/quicktime", MediaConstraints(25<<20)...)
	require.ErrorContains(t, err, "invalid file type")

	_, err = ValidateDeclaredFile("notes.txt", 5, strings.NewReader("hello"), "text/plain", MediaConstraints(25<<20)...)
	require.ErrorContains(t, err, "invalid file type")
}

func TestValidateFileRewinds(t *testing.T) {
	r := bytes.NewReader(pngHeader)
	_, err := ValidateFile("photo.png", int64(len(pngHeader)), r, MediaConstraints(1<<20)...)
	require.NoError(t, err)
	assert.Equal(t, int64(len(pngHeader)), int64(r.Len()))
}

func TestIsInvalid(t *testing.T) {
	assert.True(t, IsInvalid(ValidateSignature("")))
	assert.False(t, IsInvalid(nil))
	assert.False(t, IsInvalid(bytes.ErrTooLarge))
}
