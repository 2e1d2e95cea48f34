package dto

import (
	"github.com/yigit/resourcehub/internal/domain"
)

// ResourceFormRequest binds the text fields of a create or update request.
// Files are read separately from the multipart form.
type ResourceFormRequest struct {
	University       string `form:"university"`
	Branch           string `form:"branch"`
	Semester         string `form:"semester"`
	Subject          string `form:"subject"`
	PYQTitle         string `form:"pyqTitle"`
	NoteTitle        string `form:"noteTitle"`
	VideoTitle       string `form:"videoTitle"`
	VideoDescription string `form:"videoDescription"`
	VideoURL         string `form:"videoUrl"`
}

// ToDraft builds a draft from the bound fields and the kinds present in the
// request.
func (r *ResourceFormRequest) ToDraft(selected domain.KindSet) *domain.Draft {
	return &domain.Draft{
		University: r.University,
		Branch:     r.Branch,
		Semester:   r.Semester,
		Subject:    r.Subject,
		Selected:   selected,
		PYQ:        domain.PYQDraft{Title: r.PYQTitle},
		Note:       domain.NoteDraft{Title: r.NoteTitle},
		Video: domain.VideoDraft{
			Title:       r.VideoTitle,
			Description: r.VideoDescription,
			URL:         r.VideoURL,
		},
	}
}

// ResourceFilterRequest represents list filter parameters
type ResourceFilterRequest struct {
	University string `form:"university"`
	Branch     string `form:"branch"`
	Semester   string `form:"semester"`
	Subject    string `form:"subject"`
	Kind       string `form:"kind"`
	SortOrder  string `form:"sortOrder"`
	Page       int    `form:"page"`
	Size       int    `form:"size"`
}

// ResourceListResponse is one page of resources.
type ResourceListResponse struct {
	Resources  []*domain.Existing `json:"resources"`
	Pagination PaginationInfo     `json:"pagination"`
}

// CatalogResponse lists the options the submission form offers.
type CatalogResponse struct {
	Universities []domain.Option `json:"universities"`
	Branches     []domain.Option `json:"branches"`
	Semesters    []domain.Option `json:"semesters"`
	Subjects     []domain.Option `json:"subjects"`
	Kinds        []domain.Kind   `json:"kinds"`
}
