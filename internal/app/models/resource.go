package models

import (
	"time"

	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/pkg/helpers"
)

// Resource represents a stored resource row. Sub-resource columns are NULL
// when that kind was not submitted.
type Resource struct {
	ID               string    `db:"id"`
	University       string    `db:"university"`
	Branch           string    `db:"branch"`
	Semester         string    `db:"semester"`
	Subject          string    `db:"subject"`
	PYQTitle         *string   `db:"pyq_title"`
	PYQPDFPath       *string   `db:"pyq_pdf_path"`
	NoteTitle        *string   `db:"note_title"`
	NotePDFPath      *string   `db:"note_pdf_path"`
	VideoTitle       *string   `db:"video_title"`
	VideoDescription *string   `db:"video_description"`
	VideoURL         *string   `db:"video_url"`
	VideoImagePath   *string   `db:"video_image_path"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// Kinds returns the kinds present on the row.
func (r *Resource) Kinds() domain.KindSet {
	var s domain.KindSet
	if r.PYQTitle != nil {
		s = s.With(domain.KindPYQ)
	}
	if r.NoteTitle != nil {
		s = s.With(domain.KindNotes)
	}
	if r.VideoTitle != nil {
		s = s.With(domain.KindVideo)
	}
	return s
}

// FilePaths lists every stored file path on the row.
func (r *Resource) FilePaths() []string {
	var out []string
	for _, p := range []*string{r.PYQPDFPath, r.NotePDFPath, r.VideoImagePath} {
		if p != nil && *p != "" {
			out = append(out, *p)
		}
	}
	return out
}

// ClearKind nulls every column owned by k.
func (r *Resource) ClearKind(k domain.Kind) {
	switch k {
	case domain.KindPYQ:
		r.PYQTitle, r.PYQPDFPath = nil, nil
	case domain.KindNotes:
		r.NoteTitle, r.NotePDFPath = nil, nil
	case domain.KindVideo:
		r.VideoTitle, r.VideoDescription, r.VideoURL, r.VideoImagePath = nil, nil, nil, nil
	}
}

// ApplyDraft copies the classifiers and the text fields of every selected
// sub-resource from d. File paths are left to the caller.
func (r *Resource) ApplyDraft(d *domain.Draft) {
	r.University = d.University
	r.Branch = d.Branch
	r.Semester = d.Semester
	r.Subject = d.Subject
	if d.Selected.Has(domain.KindPYQ) {
		r.PYQTitle = helpers.StringPtr(d.PYQ.Title)
	}
	if d.Selected.Has(domain.KindNotes) {
		r.NoteTitle = helpers.StringPtr(d.Note.Title)
	}
	if d.Selected.Has(domain.KindVideo) {
		r.VideoTitle = helpers.StringPtr(d.Video.Title)
		r.VideoDescription = helpers.StringPtr(d.Video.Description)
		r.VideoURL = helpers.StringPtr(d.Video.URL)
	}
}

// SetFilePath records a stored file path for k.
func (r *Resource) SetFilePath(k domain.Kind, path string) {
	switch k {
	case domain.KindPYQ:
		r.PYQPDFPath = helpers.NullableString(path)
	case domain.KindNotes:
		r.NotePDFPath = helpers.NullableString(path)
	case domain.KindVideo:
		r.VideoImagePath = helpers.NullableString(path)
	}
}

// FilePath returns the stored file path for k.
func (r *Resource) FilePath(k domain.Kind) string {
	switch k {
	case domain.KindPYQ:
		return helpers.StringValue(r.PYQPDFPath)
	case domain.KindNotes:
		return helpers.StringValue(r.NotePDFPath)
	case domain.KindVideo:
		return helpers.StringValue(r.VideoImagePath)
	}
	return ""
}

// ToDomain converts the row to the representation returned to clients.
func (r *Resource) ToDomain() *domain.Existing {
	e := &domain.Existing{
		ID:         r.ID,
		University: r.University,
		Branch:     r.Branch,
		Semester:   r.Semester,
		Subject:    r.Subject,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.PYQTitle != nil {
		e.PYQ = &domain.StoredDocument{Title: *r.PYQTitle, PDFURL: helpers.StringValue(r.PYQPDFPath)}
	}
	if r.NoteTitle != nil {
		e.Note = &domain.StoredDocument{Title: *r.NoteTitle, PDFURL: helpers.StringValue(r.NotePDFPath)}
	}
	if r.VideoTitle != nil {
		e.Video = &domain.StoredVideo{
			Title:       *r.VideoTitle,
			Description: helpers.StringValue(r.VideoDescription),
			VideoURL:    helpers.StringValue(r.VideoURL),
			ImageURL:    helpers.StringValue(r.VideoImagePath),
		}
	}
	return e
}
