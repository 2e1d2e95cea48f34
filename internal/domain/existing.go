package domain

import "time"

// StoredDocument is a persisted PDF-backed sub-resource.
type StoredDocument struct {
	Title  string `json:"title"`
	PDFURL string `json:"pdfUrl"`
}

// StoredVideo is a persisted video sub-resource.
type StoredVideo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Existing is a resource as stored by the API. File URLs are paths relative
// to the asset base URL.
type Existing struct {
	ID         string          `json:"_id"`
	University string          `json:"university"`
	Branch     string          `json:"branch"`
	Semester   string          `json:"semester"`
	Subject    string          `json:"subject"`
	PYQ        *StoredDocument `json:"pyq,omitempty"`
	Note       *StoredDocument `json:"note,omitempty"`
	Video      *StoredVideo    `json:"video,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Kinds returns the kinds that have a stored sub-resource.
func (e *Existing) Kinds() KindSet {
	var s KindSet
	if e == nil {
		return s
	}
	if e.PYQ != nil {
		s = s.With(KindPYQ)
	}
	if e.Note != nil {
		s = s.With(KindNotes)
	}
	if e.Video != nil {
		s = s.With(KindVideo)
	}
	return s
}

// FileURL returns the stored file path for k, or "" when nothing is stored.
func (e *Existing) FileURL(k Kind) string {
	if e == nil {
		return ""
	}
	switch k {
	case KindPYQ:
		if e.PYQ != nil {
			return e.PYQ.PDFURL
		}
	case KindNotes:
		if e.Note != nil {
			return e.Note.PDFURL
		}
	case KindVideo:
		if e.Video != nil {
			return e.Video.ImageURL
		}
	}
	return ""
}
