package domain_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/testutil"
)

func TestReadUpload_SniffsContentType(t *testing.T) {
	u, err := domain.ReadUpload("dir/paper.pdf", bytes.NewReader(testutil.PDFBytes))
	require.NoError(t, err)
	assert.Equal(t, "paper.pdf", u.Filename)
	assert.Equal(t, "application/pdf", u.ContentType)
	assert.Equal(t, int64(len(testutil.PDFBytes)), u.Size())
}

func TestOpenUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thumb.png")
	require.NoError(t, os.WriteFile(path, testutil.PNGBytes, 0o600))

	u, err := domain.OpenUpload(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", u.ContentType)

	_, err = domain.OpenUpload(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestCheckMedia(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		upload  *domain.Upload
		wantErr string
	}{
		{"pdf for pyq", domain.FieldPYQFile, testutil.PDF(t, "a.pdf"), ""},
		{"pdf for notes", domain.FieldNoteFile, testutil.PDF(t, "a.pdf"), ""},
		{"png for thumbnail", domain.FieldVideoImage, testutil.PNG(t, "a.png"), ""},
		{"text for notes", domain.FieldNoteFile, testutil.Text(t, "a.pdf"), "Please select a valid PDF file."},
		{"png for pyq", domain.FieldPYQFile, testutil.PNG(t, "a.png"), "Please select a valid PDF file."},
		{"pdf for thumbnail", domain.FieldVideoImage, testutil.PDF(t, "a.pdf"), "Please upload a valid image file for the thumbnail."},
		{"svg for thumbnail", domain.FieldVideoImage, &domain.Upload{Filename: "t.svg", Data: []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)}, "Please upload a valid image file for the thumbnail."},
		{"empty pdf", domain.FieldPYQFile, &domain.Upload{Filename: "e.pdf"}, "Please select a valid PDF file."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.CheckMedia(tt.field, tt.upload)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var me *domain.MediaError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.field, me.Field)
			assert.Equal(t, tt.wantErr, me.Notice)
			assert.ErrorIs(t, err, domain.ErrUnsupportedMediaType)
		})
	}
}

func TestCheckMedia_RejectsNonFileField(t *testing.T) {
	assert.Error(t, domain.CheckMedia(domain.FieldPYQTitle, testutil.PDF(t, "a.pdf")))
}

func TestCheckMedia_OverridesClaimedContentType(t *testing.T) {
	u := testutil.PDF(t, "a.pdf")
	u.ContentType = "application/octet-stream"
	require.NoError(t, domain.CheckMedia(domain.FieldNoteFile, u))
	assert.Equal(t, "application/pdf", u.ContentType)
}

func TestUpload_Extension(t *testing.T) {
	assert.Equal(t, ".pdf", testutil.PDF(t, "Paper.PDF").Extension())
	assert.Equal(t, ".png", (&domain.Upload{Filename: "noext", Data: testutil.PNGBytes}).Extension())
}

func TestUpload_ExtensionIgnoresClientFilename(t *testing.T) {
	u := &domain.Upload{Filename: "notes.html", Data: append(append([]byte(nil), testutil.PDFBytes...), "<script>alert(1)</script>"...)}
	require.NoError(t, domain.CheckMedia(domain.FieldNoteFile, u))
	assert.Equal(t, ".pdf", u.Extension())

	assert.Equal(t, ".png", testutil.PNG(t, "thumb.html").Extension())
}
