package upload

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilehub/internal/storage"
)

type formFile struct {
	field    string
	filename string
	mime     string
	data     []byte
}

func buildForm(t *testing.T, files ...formFile) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			`form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		header.Set("Content-Type", file.mime)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func TestImagesAcceptsMatchingMIMEAndExtension(t *testing.T) {
	intake := NewIntake(nil)
	form := buildForm(t,
		formFile{FieldProfileImage, "me.jpg", "image/jpeg", []byte("jpeg-bytes")},
		formFile{FieldCoverImage, "banner.PNG", "image/png", []byte("png-bytes")},
	)

	profile, cover, err := intake.Images(context.Background(), form)
	require.NoError(t, err)

	require.NotNil(t, profile)
	assert.Equal(t, []byte("jpeg-bytes"), profile.Data)
	assert.Equal(t, "image/jpeg", profile.MIME)
	assert.Empty(t, profile.Name)

	require.NotNil(t, cover)
	assert.Equal(t, "image/png", cover.MIME)
}

func TestImagesBothPartsOptional(t *testing.T) {
	intake := NewIntake(nil)

	profile, cover, err := intake.Images(context.Background(), buildForm(t))
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.Nil(t, cover)

	profile, cover, err = intake.Images(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.Nil(t, cover)
}

func TestImagesRejectsUnsupportedTypes(t *testing.T) {
	intake := NewIntake(nil)

	cases := []struct {
		name     string
		filename string
		mime     string
	}{
		{"plain text", "x.txt", "text/plain"},
		{"good extension wrong mime", "x.png", "text/plain"},
		{"good mime wrong extension", "x.txt", "image/png"},
		{"pdf", "doc.pdf", "application/pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := buildForm(t, formFile{FieldProfileImage, tc.filename, tc.mime, []byte("data")})
			_, _, err := intake.Images(context.Background(), form)
			require.ErrorIs(t, err, ErrUnsupportedFileType)
		})
	}
}

func TestImagesDoesNotInspectContent(t *testing.T) {
	// A spoofed MIME/extension pair passes: acceptance checks the two
	// declared signals only, never the bytes.
	intake := NewIntake(nil)
	form := buildForm(t, formFile{FieldProfileImage, "x.jpg", "image/jpeg", []byte("definitely not a jpeg")})

	profile, _, err := intake.Images(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, []byte("definitely not a jpeg"), profile.Data)
}

func TestImagesRejectsMultipleFilesPerField(t *testing.T) {
	intake := NewIntake(nil)
	form := buildForm(t,
		formFile{FieldProfileImage, "a.jpg", "image/jpeg", []byte("a")},
		formFile{FieldProfileImage, "b.jpg", "image/jpeg", []byte("b")},
	)

	_, _, err := intake.Images(context.Background(), form)
	require.ErrorIs(t, err, ErrTooManyFiles)
}

func TestImagesRejectionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	intake := NewIntake(store)

	form := buildForm(t,
		formFile{FieldProfileImage, "good.jpg", "image/jpeg", []byte("good")},
		formFile{FieldCoverImage, "bad.txt", "text/plain", []byte("bad")},
	)

	_, _, err = intake.Images(context.Background(), form)
	require.ErrorIs(t, err, ErrUnsupportedFileType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file may be written when any part is rejected")
}

func TestStagingThroughStore(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	intake := NewIntake(store)

	form := buildForm(t, formFile{FieldProfileImage, "me.jpeg", "image/jpeg", []byte("jpeg-bytes")})

	profile, _, err := intake.Images(context.Background(), form)
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Empty(t, profile.Data, "file staging must not keep bytes in memory")
	assert.Regexp(t, regexp.MustCompile(`^\d+-[0-9a-f]{8}\.jpeg$`), profile.Name)

	written, err := os.ReadFile(dir + "/" + profile.Name)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), written)
}

func TestSingle(t *testing.T) {
	intake := NewIntake(nil)

	form := buildForm(t, formFile{"file", "avatar.gif", "image/gif", []byte("gif-bytes")})
	headers := form.File["file"]
	require.Len(t, headers, 1)

	staged, err := intake.Single(context.Background(), headers[0])
	require.NoError(t, err)
	assert.Equal(t, "image/gif", staged.MIME)
	assert.Equal(t, []byte("gif-bytes"), staged.Data)

	form = buildForm(t, formFile{"file", "note.txt", "text/plain", []byte("nope")})
	_, err = intake.Single(context.Background(), form.File["file"][0])
	require.ErrorIs(t, err, ErrUnsupportedFileType)
}
