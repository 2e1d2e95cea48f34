package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/testutil"
)

func validationErrors(t *testing.T, err error) domain.ValidationErrors {
	t.Helper()
	require.Error(t, err)
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %T", err)
	assert.ErrorIs(t, err, domain.ErrInvalidDraft)
	return verrs
}

func TestValidate_CompleteNotesDraftPasses(t *testing.T) {
	assert.NoError(t, domain.Validate(testutil.NotesDraft(t), nil))
}

func TestValidate_EmptySelectionFails(t *testing.T) {
	d := testutil.NotesDraft(t)
	d.Selected = 0

	verrs := validationErrors(t, domain.Validate(d, nil))
	msg, ok := verrs.Message(domain.FieldResourceType)
	require.True(t, ok)
	assert.Equal(t, "Please select at least one resource type!", msg)
	assert.Len(t, verrs, 1, "only the selection rule should fail")
}

func TestValidate_EmptyDraftReportsEveryClassifier(t *testing.T) {
	verrs := validationErrors(t, domain.Validate(&domain.Draft{}, nil))

	expected := map[string]string{
		domain.FieldUniversity:   "Please select the University!",
		domain.FieldBranch:       "Please select the branch!",
		domain.FieldSemester:     "Please select the semester!",
		domain.FieldSubject:      "Please select the subject!",
		domain.FieldResourceType: "Please select at least one resource type!",
	}
	for field, want := range expected {
		got, ok := verrs.Message(field)
		if assert.True(t, ok, "missing error for %s", field) {
			assert.Equal(t, want, got)
		}
	}
}

func TestValidate_UnknownCatalogValue(t *testing.T) {
	d := testutil.NotesDraft(t)
	d.University = "MIT"
	d.Semester = "9th Semester"

	verrs := validationErrors(t, domain.Validate(d, nil))
	assert.True(t, verrs.Has(domain.FieldUniversity))
	assert.True(t, verrs.Has(domain.FieldSemester))
	assert.False(t, verrs.Has(domain.FieldBranch))
}

func TestValidate_MissingFileInCreateMode(t *testing.T) {
	d := testutil.NotesDraft(t)
	d.Note.File = nil

	verrs := validationErrors(t, domain.Validate(d, nil))
	msg, ok := verrs.Message(domain.FieldNoteFile)
	require.True(t, ok)
	assert.Equal(t, "Please upload the Notes PDF!", msg)
}

func TestValidate_StoredFileExemptsUploadInEditMode(t *testing.T) {
	d := testutil.NotesDraft(t)
	d.Note.File = nil
	existing := &domain.Existing{
		ID:   "3f1e5c2a-8d4b-4f8e-9a61-1c2d3e4f5a6b",
		Note: &domain.StoredDocument{Title: "Midterm Notes", PDFURL: "/uploads/notes/a.pdf"},
	}

	assert.NoError(t, domain.Validate(d, existing))
}

func TestValidate_StoredFileOfOtherKindDoesNotExempt(t *testing.T) {
	d := &domain.Draft{
		University: "RGPV",
		Branch:     "CS",
		Semester:   "3rd Semester",
		Subject:    "Algorithms",
		Selected:   domain.NewKindSet(domain.KindPYQ),
		PYQ:        domain.PYQDraft{Title: "2023 paper"},
	}
	existing := &domain.Existing{Note: &domain.StoredDocument{Title: "n", PDFURL: "/uploads/notes/a.pdf"}}

	verrs := validationErrors(t, domain.Validate(d, existing))
	assert.True(t, verrs.Has(domain.FieldPYQFile))
}

func TestValidate_UnselectedSectionsAreIgnored(t *testing.T) {
	d := testutil.NotesDraft(t)
	// Stale half-filled values of an unselected kind must not block submission
	d.PYQ = domain.PYQDraft{Title: ""}
	d.Video = domain.VideoDraft{Title: "half typed"}

	assert.NoError(t, domain.Validate(d, nil))
}

func TestValidate_VideoRequiresTextFieldsButNotThumbnail(t *testing.T) {
	d := testutil.VideoDraft(t)
	require.NoError(t, domain.Validate(d, nil))

	d.Video.Description = ""
	d.Video.URL = ""
	verrs := validationErrors(t, domain.Validate(d, nil))
	assert.True(t, verrs.Has(domain.FieldVideoDescription))
	assert.True(t, verrs.Has(domain.FieldVideoURL))
	assert.False(t, verrs.Has(domain.FieldVideoImage))
}

func TestValidate_MultipleKindsValidatedIndependently(t *testing.T) {
	d := testutil.NotesDraft(t)
	d.Selected = domain.NewKindSet(domain.KindPYQ, domain.KindNotes, domain.KindVideo)
	d.PYQ = domain.PYQDraft{Title: "2022 end sem", File: testutil.PDF(t, "2022.pdf")}

	verrs := validationErrors(t, domain.Validate(d, nil))
	assert.False(t, verrs.Has(domain.FieldPYQTitle))
	assert.False(t, verrs.Has(domain.FieldNoteFile))
	assert.True(t, verrs.Has(domain.FieldVideoTitle))
}
