package domain

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedMediaType is returned when an upload does not match the media
// type its field accepts.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// Upload is a file staged for submission.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes.
func (u *Upload) Size() int64 {
	if u == nil {
		return 0
	}
	return int64(len(u.Data))
}

// ReadUpload reads r fully into an Upload and sniffs its content type.
func ReadUpload(filename string, r io.Reader) (*Upload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return &Upload{
		Filename:    filepath.Base(filename),
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

// OpenUpload reads a file from disk.
func OpenUpload(path string) (*Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadUpload(path, f)
}

type mediaRule struct {
	accept  func(*mimetype.MIME) bool
	message string
}

var pdfOnly = mediaRule{
	accept:  func(m *mimetype.MIME) bool { return m.Is("application/pdf") },
	message: "Please select a valid PDF file.",
}

// SVG is excluded: it is served from the API origin and may carry script.
var imageOnly = mediaRule{
	accept: func(m *mimetype.MIME) bool {
		return strings.HasPrefix(m.String(), "image/") && !m.Is("image/svg+xml")
	},
	message: "Please upload a valid image file for the thumbnail.",
}

var fileFieldRules = map[string]mediaRule{
	FieldPYQFile:    pdfOnly,
	FieldNoteFile:   pdfOnly,
	FieldVideoImage: imageOnly,
}

// MediaError reports an upload rejected for its content type.
type MediaError struct {
	Field    string
	Detected string
	Notice   string
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, ErrUnsupportedMediaType, e.Detected)
}

func (e *MediaError) Unwrap() error { return ErrUnsupportedMediaType }

// CheckMedia sniffs u's content and verifies it is acceptable for field.
// On success the upload's ContentType is replaced with the detected type.
func CheckMedia(field string, u *Upload) error {
	rule, ok := fileFieldRules[field]
	if !ok {
		return fmt.Errorf("%s is not a file field", field)
	}
	if u == nil || len(u.Data) == 0 {
		return &MediaError{Field: field, Detected: "empty", Notice: rule.message}
	}
	m := mimetype.Detect(u.Data)
	if !rule.accept(m) {
		return &MediaError{Field: field, Detected: m.String(), Notice: rule.message}
	}
	u.ContentType = m.String()
	return nil
}

// Extension returns the file extension to store u under. It follows the
// sniffed content, never the client's filename, so a PDF named page.html is
// still stored as .pdf.
func (u *Upload) Extension() string {
	return mimetype.Detect(u.Data).Extension()
}
