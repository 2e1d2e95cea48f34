package domain

// Multipart field names shared by the client and the API.
const (
	FieldUniversity       = "university"
	FieldBranch           = "branch"
	FieldSemester         = "semester"
	FieldSubject          = "subject"
	FieldResourceType     = "resourceType"
	FieldPYQTitle         = "pyqTitle"
	FieldPYQFile          = "pyqFile"
	FieldNoteTitle        = "noteTitle"
	FieldNoteFile         = "noteFile"
	FieldVideoTitle       = "videoTitle"
	FieldVideoDescription = "videoDescription"
	FieldVideoURL         = "videoUrl"
	FieldVideoImage       = "videoImage"
)

// KindFields maps each kind to the payload fields it owns.
var KindFields = map[Kind][]string{
	KindPYQ:   {FieldPYQTitle, FieldPYQFile},
	KindNotes: {FieldNoteTitle, FieldNoteFile},
	KindVideo: {FieldVideoTitle, FieldVideoDescription, FieldVideoURL, FieldVideoImage},
}

// Field is one part of a submission payload: either a text value or a file.
type Field struct {
	Name  string
	Value string
	File  *Upload
}

// Section is one selected sub-resource of a draft. Each variant carries its
// own required fields and validates them on its own.
type Section interface {
	Kind() Kind
	// FileField names the upload that is required unless a stored file exists.
	FileField() string
	fields() []Field
	validate(existingFile string) ValidationErrors
}

// PYQDraft holds the previous-year-questions sub-resource.
type PYQDraft struct {
	Title string  `form:"pyqTitle" validate:"required"`
	File  *Upload `form:"pyqFile" validate:"-"`
}

func (PYQDraft) Kind() Kind        { return KindPYQ }
func (PYQDraft) FileField() string { return FieldPYQFile }

func (p PYQDraft) fields() []Field {
	out := []Field{{Name: FieldPYQTitle, Value: p.Title}}
	if p.File != nil {
		out = append(out, Field{Name: FieldPYQFile, File: p.File})
	}
	return out
}

func (p PYQDraft) validate(existingFile string) ValidationErrors {
	errs := validateStruct(p)
	if p.File == nil && existingFile == "" {
		errs = append(errs, requiredError(FieldPYQFile))
	}
	return errs
}

// NoteDraft holds the notes sub-resource.
type NoteDraft struct {
	Title string  `form:"noteTitle" validate:"required"`
	File  *Upload `form:"noteFile" validate:"-"`
}

func (NoteDraft) Kind() Kind        { return KindNotes }
func (NoteDraft) FileField() string { return FieldNoteFile }

func (n NoteDraft) fields() []Field {
	out := []Field{{Name: FieldNoteTitle, Value: n.Title}}
	if n.File != nil {
		out = append(out, Field{Name: FieldNoteFile, File: n.File})
	}
	return out
}

func (n NoteDraft) validate(existingFile string) ValidationErrors {
	errs := validateStruct(n)
	if n.File == nil && existingFile == "" {
		errs = append(errs, requiredError(FieldNoteFile))
	}
	return errs
}

// VideoDraft holds the video lecture sub-resource. The thumbnail is optional.
type VideoDraft struct {
	Title       string  `form:"videoTitle" validate:"required"`
	Description string  `form:"videoDescription" validate:"required"`
	URL         string  `form:"videoUrl" validate:"required"`
	Thumbnail   *Upload `form:"videoImage" validate:"-"`
}

func (VideoDraft) Kind() Kind        { return KindVideo }
func (VideoDraft) FileField() string { return FieldVideoImage }

func (v VideoDraft) fields() []Field {
	out := []Field{
		{Name: FieldVideoTitle, Value: v.Title},
		{Name: FieldVideoDescription, Value: v.Description},
		{Name: FieldVideoURL, Value: v.URL},
	}
	if v.Thumbnail != nil {
		out = append(out, Field{Name: FieldVideoImage, File: v.Thumbnail})
	}
	return out
}

func (v VideoDraft) validate(string) ValidationErrors {
	return validateStruct(v)
}

// Draft is the in-progress state of a resource submission. Values of
// unselected sub-resources are kept so re-selecting a kind restores them,
// but they never reach the payload.
type Draft struct {
	University string  `form:"university" validate:"required,university"`
	Branch     string  `form:"branch" validate:"required,branch"`
	Semester   string  `form:"semester" validate:"required,semester"`
	Subject    string  `form:"subject" validate:"required,subject"`
	Selected   KindSet `form:"resourceType" validate:"-"`

	PYQ   PYQDraft   `validate:"-"`
	Note  NoteDraft  `validate:"-"`
	Video VideoDraft `validate:"-"`
}

// Reset empties every field.
func (d *Draft) Reset() {
	*d = Draft{}
}

// Clone returns a copy safe to hand to another goroutine. Uploads are
// shared since they are never mutated after staging.
func (d *Draft) Clone() *Draft {
	c := *d
	return &c
}

// Section returns the variant for k.
func (d *Draft) Section(k Kind) Section {
	switch k {
	case KindPYQ:
		return d.PYQ
	case KindNotes:
		return d.Note
	case KindVideo:
		return d.Video
	}
	return nil
}

// File returns the staged upload for k, or nil.
func (d *Draft) File(k Kind) *Upload {
	switch k {
	case KindPYQ:
		return d.PYQ.File
	case KindNotes:
		return d.Note.File
	case KindVideo:
		return d.Video.Thumbnail
	}
	return nil
}

// Sections returns the selected variants in display order.
func (d *Draft) Sections() []Section {
	kinds := d.Selected.Kinds()
	out := make([]Section, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, d.Section(k))
	}
	return out
}

// Payload lists the fields to submit: the four classifiers followed by the
// fields of each selected sub-resource only.
func (d *Draft) Payload() []Field {
	out := []Field{
		{Name: FieldUniversity, Value: d.University},
		{Name: FieldBranch, Value: d.Branch},
		{Name: FieldSemester, Value: d.Semester},
		{Name: FieldSubject, Value: d.Subject},
	}
	for _, s := range d.Sections() {
		out = append(out, s.fields()...)
	}
	return out
}

// FromExisting builds an edit-mode draft from a stored resource. Stored files
// are not copied: they stay on the server and exempt their fields from the
// upload requirement.
func FromExisting(e *Existing) *Draft {
	d := &Draft{
		University: e.University,
		Branch:     e.Branch,
		Semester:   e.Semester,
		Subject:    e.Subject,
		Selected:   e.Kinds(),
	}
	if e.PYQ != nil {
		d.PYQ.Title = e.PYQ.Title
	}
	if e.Note != nil {
		d.Note.Title = e.Note.Title
	}
	if e.Video != nil {
		d.Video.Title = e.Video.Title
		d.Video.Description = e.Video.Description
		d.Video.URL = e.Video.VideoURL
	}
	return d
}
