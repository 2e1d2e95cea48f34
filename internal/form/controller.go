// Package form holds the state of a resource submission form: the draft being
// edited, the sections visible for the selected kinds and the single
// in-flight submission.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/pkg/logger"
)

// ErrSubmissionPending is returned by Submit while another submission runs.
var ErrSubmissionPending = errors.New("a submission is already in progress")

// Mode tells whether the form creates a new resource or edits a stored one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// State is the submission state of the form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

// Submitter sends a validated draft to the API.
type Submitter interface {
	Create(ctx context.Context, d *domain.Draft) (*domain.Existing, error)
	Update(ctx context.Context, id string, d *domain.Draft) (*domain.Existing, error)
}

// Level grades a user-visible notice.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notice is a message meant for the person filling in the form.
type Notice struct {
	Level   Level
	Message string
}

// Option configures a Controller.
type Option func(*Controller)

// OnSubmit registers the callback that receives the stored resource after a
// successful submission.
func OnSubmit(fn func(*domain.Existing)) Option {
	return func(c *Controller) { c.onSubmit = fn }
}

// OnNotice registers the callback that receives user-visible notices.
func OnNotice(fn func(Notice)) Option {
	return func(c *Controller) { c.onNotice = fn }
}

// OnClose registers the callback run when the form is cancelled.
func OnClose(fn func()) Option {
	return func(c *Controller) { c.onClose = fn }
}

// Controller owns one draft exclusively. All methods are safe for concurrent
// use; the submitter is called without holding the lock.
type Controller struct {
	mu        sync.Mutex
	submitter Submitter
	draft     domain.Draft
	existing  *domain.Existing
	visible   []domain.Kind
	state     State
	// generation changes on every reset so a submission that outlives a
	// cancel does not touch the new draft.
	generation uint64

	onSubmit func(*domain.Existing)
	onNotice func(Notice)
	onClose  func()
}

// New creates a controller in create mode.
func New(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{submitter: submitter}
	for _, opt := range opts {
		opt(c)
	}
	c.Load(nil)
	return c
}

// Load is the single hydration entry point. It always resets the form first,
// then hydrates from initial when given (edit mode) or stays empty (create
// mode).
func (c *Controller) Load(initial *domain.Existing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	if initial != nil {
		c.existing = initial
		c.draft = *domain.FromExisting(initial)
	}
	c.recomputeVisibleLocked()
}

func (c *Controller) resetLocked() {
	c.draft.Reset()
	c.existing = nil
	c.generation++
	c.visible = nil
}

func (c *Controller) recomputeVisibleLocked() {
	c.visible = c.draft.Selected.Kinds()
}

// Mode reports create or edit.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.existing != nil {
		return ModeEdit
	}
	return ModeCreate
}

// State reports whether a submission is in flight.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a snapshot of the current draft.
func (c *Controller) Draft() domain.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Visible returns the sub-resource sections currently shown.
func (c *Controller) Visible() []domain.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Kind(nil), c.visible...)
}

// ExistingFile returns the stored file for k while it has not been replaced
// by a newly staged upload.
func (c *Controller) ExistingFile(k domain.Kind) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	url := c.existing.FileURL(k)
	if url == "" {
		return ""
	}
	switch k {
	case domain.KindPYQ:
		if c.draft.PYQ.File != nil {
			return ""
		}
	case domain.KindNotes:
		if c.draft.Note.File != nil {
			return ""
		}
	case domain.KindVideo:
		if c.draft.Video.Thumbnail != nil {
			return ""
		}
	}
	return url
}

func (c *Controller) update(fn func(d *domain.Draft)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.draft)
}

// SetUniversity sets the university classifier.
func (c *Controller) SetUniversity(v string) { c.update(func(d *domain.Draft) { d.University = v }) }

// SetBranch sets the branch classifier.
func (c *Controller) SetBranch(v string) { c.update(func(d *domain.Draft) { d.Branch = v }) }

// SetSemester sets the semester classifier.
func (c *Controller) SetSemester(v string) { c.update(func(d *domain.Draft) { d.Semester = v }) }

// SetSubject sets the subject classifier.
func (c *Controller) SetSubject(v string) { c.update(func(d *domain.Draft) { d.Subject = v }) }

// SetPYQTitle sets the PYQ title. It is kept while PYQ is deselected.
func (c *Controller) SetPYQTitle(v string) { c.update(func(d *domain.Draft) { d.PYQ.Title = v }) }

// SetNoteTitle sets the notes title.
func (c *Controller) SetNoteTitle(v string) { c.update(func(d *domain.Draft) { d.Note.Title = v }) }

// SetVideoTitle sets the video title.
func (c *Controller) SetVideoTitle(v string) { c.update(func(d *domain.Draft) { d.Video.Title = v }) }

// SetVideoDescription sets the video description.
func (c *Controller) SetVideoDescription(v string) {
	c.update(func(d *domain.Draft) { d.Video.Description = v })
}

// SetVideoURL sets the link to the video lecture.
func (c *Controller) SetVideoURL(v string) { c.update(func(d *domain.Draft) { d.Video.URL = v }) }

// SetSelected replaces the selected kinds and recomputes visible sections.
func (c *Controller) SetSelected(kinds ...domain.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Selected = domain.NewKindSet(kinds...)
	c.recomputeVisibleLocked()
}

// StagePYQFile stages the PYQ PDF. A file that is not a PDF is rejected with
// a notice and the previously staged file, if any, is kept.
func (c *Controller) StagePYQFile(u *domain.Upload) error {
	return c.stage(domain.FieldPYQFile, u, func(d *domain.Draft, staged *domain.Upload) { d.PYQ.File = staged })
}

// StageNoteFile stages the notes PDF.
func (c *Controller) StageNoteFile(u *domain.Upload) error {
	return c.stage(domain.FieldNoteFile, u, func(d *domain.Draft, staged *domain.Upload) { d.Note.File = staged })
}

// StageThumbnail stages the video thumbnail. The staged file is the only
// value kept; no preview URL is derived from it.
func (c *Controller) StageThumbnail(u *domain.Upload) error {
	return c.stage(domain.FieldVideoImage, u, func(d *domain.Draft, staged *domain.Upload) { d.Video.Thumbnail = staged })
}

// stage checks a private copy of u, so the caller's upload is never written
// and the draft only ever holds uploads the controller owns.
func (c *Controller) stage(field string, u *domain.Upload, set func(d *domain.Draft, staged *domain.Upload)) error {
	var staged *domain.Upload
	if u != nil {
		cp := *u
		staged = &cp
	}
	if err := domain.CheckMedia(field, staged); err != nil {
		var me *domain.MediaError
		if errors.As(err, &me) {
			c.notify(Notice{Level: LevelError, Message: me.Notice})
		}
		return err
	}
	c.update(func(d *domain.Draft) { set(d, staged) })
	return nil
}

// Validate runs the validation rules against the current draft.
func (c *Controller) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Validate(&c.draft, c.existing)
}

// Submit validates the draft and sends it: an update when the form was
// loaded from a stored resource, a create otherwise. Exactly one request is
// made per call. On success the form is reset and the OnSubmit callback
// receives the stored resource; on failure the draft is left untouched.
func (c *Controller) Submit(ctx context.Context) (*domain.Existing, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmissionPending
	}
	if err := domain.Validate(&c.draft, c.existing); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.state = StateSubmitting
	draft := c.draft.Clone()
	gen := c.generation
	var id string
	if c.existing != nil {
		id = c.existing.ID
	}
	c.mu.Unlock()

	var (
		stored *domain.Existing
		err    error
	)
	if id != "" {
		stored, err = c.submitter.Update(ctx, id, draft)
	} else {
		stored, err = c.submitter.Create(ctx, draft)
	}

	c.mu.Lock()
	c.state = StateIdle
	if err == nil && gen == c.generation {
		c.resetLocked()
	}
	c.mu.Unlock()

	if err != nil {
		logger.Warn().Err(err).Str("mode", modeOf(id).String()).Msg("Resource submission failed")
		c.notify(Notice{Level: LevelError, Message: failureNotice(id, err)})
		return nil, err
	}

	verb := "added"
	if id != "" {
		verb = "updated"
	}
	c.notify(Notice{Level: LevelSuccess, Message: fmt.Sprintf("Resource %s successfully!", verb)})
	if c.onSubmit != nil {
		c.onSubmit(stored)
	}
	return stored, nil
}

// Cancel discards the visible form. A submission already in flight is not
// aborted; when it completes it still reports to OnSubmit but leaves the
// fresh draft alone.
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
	if c.onClose != nil {
		c.onClose()
	}
}

func (c *Controller) notify(n Notice) {
	if c.onNotice != nil {
		c.onNotice(n)
	}
}

func modeOf(id string) Mode {
	if id != "" {
		return ModeEdit
	}
	return ModeCreate
}

// noticer is implemented by errors that carry their own user-facing text.
type noticer interface {
	Notice() string
}

func failureNotice(id string, err error) string {
	var n noticer
	if errors.As(err, &n) {
		return n.Notice()
	}
	if id != "" {
		return "Failed to update resource. Please try again."
	}
	return "Failed to add resource. Please try again."
}
