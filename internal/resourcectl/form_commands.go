package resourcectl

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/yigit/resourcehub/internal/client"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/form"
)

const (
	flagUniversity       = "university"
	flagBranch           = "branch"
	flagSemester         = "semester"
	flagSubject          = "subject"
	flagType             = "type"
	flagPYQTitle         = "pyq-title"
	flagPYQFile          = "pyq-file"
	flagNoteTitle        = "note-title"
	flagNoteFile         = "note-file"
	flagVideoTitle       = "video-title"
	flagVideoDescription = "video-description"
	flagVideoURL         = "video-url"
	flagVideoImage       = "video-image"
)

// kindFlags lists the flags that imply each kind when --type is not given.
var kindFlags = map[domain.Kind][]string{
	domain.KindPYQ:   {flagPYQTitle, flagPYQFile},
	domain.KindNotes: {flagNoteTitle, flagNoteFile},
	domain.KindVideo: {flagVideoTitle, flagVideoDescription, flagVideoURL, flagVideoImage},
}

func draftFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagUniversity, Aliases: []string{"u"}, Usage: "university code, e.g. RGPV"},
		&cli.StringFlag{Name: flagBranch, Aliases: []string{"b"}, Usage: "branch code, e.g. CS"},
		&cli.StringFlag{Name: flagSemester, Aliases: []string{"s"}, Usage: `semester, e.g. "3rd Semester"`},
		&cli.StringFlag{Name: flagSubject, Usage: "subject, e.g. Algorithms"},
		&cli.StringSliceFlag{Name: flagType, Aliases: []string{"t"}, Usage: "resource types to submit (PYQ, Notes, Video); inferred from the other flags when omitted"},
		&cli.StringFlag{Name: flagPYQTitle, Usage: "PYQ title"},
		&cli.PathFlag{Name: flagPYQFile, Usage: "PYQ PDF"},
		&cli.StringFlag{Name: flagNoteTitle, Usage: "notes title"},
		&cli.PathFlag{Name: flagNoteFile, Usage: "notes PDF"},
		&cli.StringFlag{Name: flagVideoTitle, Usage: "video title"},
		&cli.StringFlag{Name: flagVideoDescription, Usage: "video description"},
		&cli.StringFlag{Name: flagVideoURL, Usage: "video link"},
		&cli.PathFlag{Name: flagVideoImage, Usage: "video thumbnail image"},
		&cli.BoolFlag{Name: flagJSON, Usage: "print the stored resource as JSON"},
	}
}

// selection returns the kinds to submit. Explicit --type values win; other
// flags add their kind to base.
func selection(c *cli.Context, base domain.KindSet) (domain.KindSet, error) {
	if c.IsSet(flagType) {
		var set domain.KindSet
		for _, v := range c.StringSlice(flagType) {
			k, err := domain.ParseKind(v)
			if err != nil {
				return 0, err
			}
			set = set.With(k)
		}
		return set, nil
	}
	set := base
	for _, k := range domain.Kinds {
		for _, name := range kindFlags[k] {
			if c.IsSet(name) {
				set = set.With(k)
			}
		}
	}
	return set, nil
}

// applyFlags copies every flag the user set onto the form.
func applyFlags(c *cli.Context, ctrl *form.Controller) error {
	setters := []struct {
		flag string
		set  func(string)
	}{
		{flagUniversity, ctrl.SetUniversity},
		{flagBranch, ctrl.SetBranch},
		{flagSemester, ctrl.SetSemester},
		{flagSubject, ctrl.SetSubject},
		{flagPYQTitle, ctrl.SetPYQTitle},
		{flagNoteTitle, ctrl.SetNoteTitle},
		{flagVideoTitle, ctrl.SetVideoTitle},
		{flagVideoDescription, ctrl.SetVideoDescription},
		{flagVideoURL, ctrl.SetVideoURL},
	}
	for _, s := range setters {
		if c.IsSet(s.flag) {
			s.set(c.String(s.flag))
		}
	}

	draft := ctrl.Draft()
	selected, err := selection(c, draft.Selected)
	if err != nil {
		return err
	}
	ctrl.SetSelected(selected.Kinds()...)

	files := []struct {
		flag  string
		stage func(*domain.Upload) error
	}{
		{flagPYQFile, ctrl.StagePYQFile},
		{flagNoteFile, ctrl.StageNoteFile},
		{flagVideoImage, ctrl.StageThumbnail},
	}
	for _, f := range files {
		if !c.IsSet(f.flag) {
			continue
		}
		upload, err := domain.OpenUpload(c.Path(f.flag))
		if err != nil {
			return err
		}
		if err := f.stage(upload); err != nil {
			return err
		}
	}
	return nil
}

// runForm drives a form controller through one submission and reports the
// outcome the way the form's notices describe it.
func runForm(c *cli.Context, initial *domain.Existing, api *client.Client) error {
	out := c.App.Writer
	ctrl := form.New(api, form.OnNotice(func(n form.Notice) {
		fmt.Fprintln(out, n.Message)
	}))
	ctrl.Load(initial)

	if err := applyFlags(c, ctrl); err != nil {
		var mediaErr *domain.MediaError
		if errors.As(err, &mediaErr) {
			return cli.Exit("", 1)
		}
		return err
	}

	stored, err := ctrl.Submit(c.Context)
	if err != nil {
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fe := range validationErrs {
				fmt.Fprintf(out, "%s: %s\n", fe.Field, fe.Message)
			}
		}
		return cli.Exit("", 1)
	}

	return printResource(c, api, stored)
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "create a resource",
		Flags: draftFlags(),
		Action: func(c *cli.Context) error {
			api, err := newClient(c)
			if err != nil {
				return err
			}
			return runForm(c, nil, api)
		},
	}
}

func editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "update a resource; unset flags keep their stored values",
		ArgsUsage: "<id>",
		Flags:     draftFlags(),
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return cli.Exit("resource id is required", 2)
			}
			api, err := newClient(c)
			if err != nil {
				return err
			}
			existing, err := api.Get(c.Context, id)
			if err != nil {
				return reportError(c, err)
			}
			return runForm(c, existing, api)
		},
	}
}
