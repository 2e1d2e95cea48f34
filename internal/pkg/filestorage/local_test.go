package filestorage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/pkg/filestorage"
	"github.com/yigit/resourcehub/internal/testutil"
)

func newStorage(t *testing.T) (*filestorage.LocalStorage, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "uploads")
	ls, err := filestorage.NewLocalStorage(root, "")
	require.NoError(t, err)
	return ls, root
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	ls, root := newStorage(t)

	p, err := ls.Save(testutil.PDF(t, "Paper.PDF"), "pyq")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "/uploads/pyq/"), p)
	assert.True(t, strings.HasSuffix(p, ".pdf"), p)

	full := ls.FullPath(p)
	assert.Equal(t, filepath.Join(root, "pyq", filepath.Base(p)), full)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, testutil.PDFBytes, data)

	require.NoError(t, ls.Delete(p))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ls.Delete(p), "deleting a missing file is not an error")
	assert.NoError(t, ls.Delete(""))
}

func TestLocalStorage_ExtensionFollowsContent(t *testing.T) {
	ls, root := newStorage(t)

	u := &domain.Upload{Filename: "notes.html", Data: append(append([]byte(nil), testutil.PDFBytes...), "<script>alert(1)</script>"...)}
	require.NoError(t, domain.CheckMedia(domain.FieldNoteFile, u))

	p, err := ls.Save(u, "notes")
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(p), "stored under the sniffed type, not the client filename")
	_, err = os.Stat(filepath.Join(root, "notes", filepath.Base(p)))
	assert.NoError(t, err)
}

func TestLocalStorage_UniqueNames(t *testing.T) {
	ls, _ := newStorage(t)
	a, err := ls.Save(testutil.PNG(t, "t.png"), "thumbnails")
	require.NoError(t, err)
	b, err := ls.Save(testutil.PNG(t, "t.png"), "thumbnails")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalStorage_RejectsEscapes(t *testing.T) {
	ls, _ := newStorage(t)

	_, err := ls.Save(testutil.PDF(t, "a.pdf"), "../outside")
	assert.Error(t, err)

	assert.Empty(t, ls.FullPath("/uploads/.."))
	assert.Error(t, ls.Delete("/uploads/.."))
}

func TestLocalStorage_NilUpload(t *testing.T) {
	ls, _ := newStorage(t)
	p, err := ls.Save(nil, "notes")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestLocalStorage_CustomBaseURL(t *testing.T) {
	ls, err := filestorage.NewLocalStorage(t.TempDir(), "files/")
	require.NoError(t, err)
	p, err := ls.Save(testutil.PDF(t, "n.pdf"), "notes")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "/files/notes/"), p)
}
