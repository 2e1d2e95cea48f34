// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/yigit/resourcehub/internal/domain"
)

// PDFBytes is the smallest document mimetype recognises as application/pdf.
var PDFBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// PNGBytes is a 1x1 transparent PNG.
var PNGBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// TextBytes is plain text, accepted by no file field.
var TextBytes = []byte("these are not the notes you are looking for\n")

// PDF returns a staged PDF upload.
func PDF(t *testing.T, name string) *domain.Upload {
	t.Helper()
	return &domain.Upload{Filename: name, ContentType: "application/pdf", Data: append([]byte(nil), PDFBytes...)}
}

// PNG returns a staged PNG upload.
func PNG(t *testing.T, name string) *domain.Upload {
	t.Helper()
	return &domain.Upload{Filename: name, ContentType: "image/png", Data: append([]byte(nil), PNGBytes...)}
}

// Text returns an upload holding plain text.
func Text(t *testing.T, name string) *domain.Upload {
	t.Helper()
	return &domain.Upload{Filename: name, ContentType: "text/plain", Data: append([]byte(nil), TextBytes...)}
}

// NotesDraft is the RGPV / CS / 3rd Semester / Algorithms notes submission.
func NotesDraft(t *testing.T) *domain.Draft {
	t.Helper()
	return &domain.Draft{
		University: "RGPV",
		Branch:     "CS",
		Semester:   "3rd Semester",
		Subject:    "Algorithms",
		Selected:   domain.NewKindSet(domain.KindNotes),
		Note:       domain.NoteDraft{Title: "Midterm Notes", File: PDF(t, "midterm.pdf")},
	}
}

// VideoDraft is a complete video-only submission without a thumbnail.
func VideoDraft(t *testing.T) *domain.Draft {
	t.Helper()
	return &domain.Draft{
		University: "IITB",
		Branch:     "EE",
		Semester:   "5th Semester",
		Subject:    "Computer Networks",
		Selected:   domain.NewKindSet(domain.KindVideo),
		Video: domain.VideoDraft{
			Title:       "TCP Congestion Control",
			Description: "Slow start and AIMD explained",
			URL:         "https://example.com/watch?v=tcp",
		},
	}
}
