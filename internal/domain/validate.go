package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/resourcehub/internal/pkg/validation"
)

// ErrInvalidDraft matches any ValidationErrors value with errors.Is.
var ErrInvalidDraft = errors.New("invalid resource draft")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validation.New()
	validation.MustRegisterMembership(v, "university", func(s string) bool { return hasOption(Universities, s) })
	validation.MustRegisterMembership(v, "branch", func(s string) bool { return hasOption(Branches, s) })
	validation.MustRegisterMembership(v, "semester", func(s string) bool { return hasOption(Semesters, s) })
	validation.MustRegisterMembership(v, "subject", func(s string) bool { return hasOption(Subjects, s) })
	return v
}

// requiredMessages are the prompts shown when a required field is missing.
var requiredMessages = map[string]string{
	FieldUniversity:       "Please select the University!",
	FieldBranch:           "Please select the branch!",
	FieldSemester:         "Please select the semester!",
	FieldSubject:          "Please select the subject!",
	FieldResourceType:     "Please select at least one resource type!",
	FieldPYQTitle:         "Please provide the PYQ Title!",
	FieldPYQFile:          "Please upload the PYQ PDF!",
	FieldNoteTitle:        "Please provide the Notes Title!",
	FieldNoteFile:         "Please upload the Notes PDF!",
	FieldVideoTitle:       "Please provide the Video Title!",
	FieldVideoDescription: "Please provide a description for the video!",
	FieldVideoURL:         "Please provide the Video Link!",
}

// FieldError is a validation failure attached to one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every field failure of a draft.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is lets callers test with errors.Is(err, ErrInvalidDraft).
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidDraft
}

// Has reports whether field failed validation.
func (v ValidationErrors) Has(field string) bool {
	_, ok := v.Message(field)
	return ok
}

// Message returns the first message recorded for field.
func (v ValidationErrors) Message(field string) (string, bool) {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

func requiredError(field string) FieldError {
	return FieldError{Field: field, Message: requiredMessages[field]}
}

func validateStruct(s any) ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			if msg, ok := requiredMessages[fe.Field()]; ok {
				out = append(out, FieldError{Field: fe.Field(), Message: msg})
				continue
			}
		}
		out = append(out, FieldError{Field: fe.Field(), Message: validation.FormatFieldError(fe)})
	}
	return out
}

// Validate checks d against the rules of every selected sub-resource. In edit
// mode existing supplies the stored files; a sub-resource with a stored file
// does not need a new upload. The result is nil or a ValidationErrors.
func Validate(d *Draft, existing *Existing) error {
	errs := validateStruct(*d)
	if d.Selected.Empty() {
		errs = append(errs, requiredError(FieldResourceType))
	}
	for _, s := range d.Sections() {
		errs = append(errs, s.validate(existing.FileURL(s.Kind()))...)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
