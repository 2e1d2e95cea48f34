package resourcectl

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/yigit/resourcehub/internal/client"
	"github.com/yigit/resourcehub/internal/config"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/pkg/auth"
	"github.com/yigit/resourcehub/internal/pkg/helpers"
)

func reportError(c *cli.Context, err error) error {
	var submitErr *client.SubmitError
	if errors.As(err, &submitErr) {
		return cli.Exit(submitErr.Notice(), 1)
	}
	return err
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResource writes a stored resource with its file links resolved.
func printResource(c *cli.Context, api *client.Client, r *domain.Existing) error {
	if c.Bool(flagJSON) {
		return printJSON(c, r)
	}
	out := c.App.Writer
	fmt.Fprintf(out, "ID:         %s\n", r.ID)
	fmt.Fprintf(out, "University: %s (%s)\n", r.University, domain.Label(domain.Universities, r.University))
	fmt.Fprintf(out, "Branch:     %s (%s)\n", r.Branch, domain.Label(domain.Branches, r.Branch))
	fmt.Fprintf(out, "Semester:   %s\n", r.Semester)
	fmt.Fprintf(out, "Subject:    %s\n", r.Subject)
	if r.PYQ != nil {
		fmt.Fprintf(out, "PYQ:        %s <%s>\n", r.PYQ.Title, api.AssetURL(r.PYQ.PDFURL))
	}
	if r.Note != nil {
		fmt.Fprintf(out, "Notes:      %s <%s>\n", r.Note.Title, api.AssetURL(r.Note.PDFURL))
	}
	if r.Video != nil {
		fmt.Fprintf(out, "Video:      %s <%s>\n", r.Video.Title, r.Video.VideoURL)
		if r.Video.Description != "" {
			fmt.Fprintf(out, "            %s\n", r.Video.Description)
		}
		if r.Video.ImageURL != "" {
			fmt.Fprintf(out, "Thumbnail:  <%s>\n", api.AssetURL(r.Video.ImageURL))
		}
	}
	return nil
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "show a resource",
		ArgsUsage: "<id>",
		Flags:     []cli.Flag{&cli.BoolFlag{Name: flagJSON, Usage: "print JSON"}},
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return cli.Exit("resource id is required", 2)
			}
			api, err := newClient(c)
			if err != nil {
				return err
			}
			r, err := api.Get(c.Context, id)
			if err != nil {
				return reportError(c, err)
			}
			return printResource(c, api, r)
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list resources",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagUniversity, Aliases: []string{"u"}},
			&cli.StringFlag{Name: flagBranch, Aliases: []string{"b"}},
			&cli.StringFlag{Name: flagSemester, Aliases: []string{"s"}},
			&cli.StringFlag{Name: flagSubject},
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "PYQ, Notes or Video"},
			&cli.IntFlag{Name: "page", Value: helpers.DefaultPage},
			&cli.IntFlag{Name: "size", Value: helpers.DefaultPageSize},
			&cli.BoolFlag{Name: flagJSON, Usage: "print JSON"},
		},
		Action: func(c *cli.Context) error {
			filter := client.ListFilter{
				University: c.String(flagUniversity),
				Branch:     c.String(flagBranch),
				Semester:   c.String(flagSemester),
				Subject:    c.String(flagSubject),
				Page:       c.Int("page"),
				Size:       c.Int("size"),
			}
			if v := c.String("kind"); v != "" {
				k, err := domain.ParseKind(v)
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				filter.Kind = k
			}

			api, err := newClient(c)
			if err != nil {
				return err
			}
			result, err := api.List(c.Context, filter)
			if err != nil {
				return reportError(c, err)
			}
			if c.Bool(flagJSON) {
				return printJSON(c, result)
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tUNIVERSITY\tBRANCH\tSEMESTER\tSUBJECT\tTYPES")
			for _, r := range result.Resources {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.University, r.Branch, r.Semester, r.Subject, r.Kinds())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			p := result.Pagination
			fmt.Fprintf(c.App.Writer, "page %d of %d (%d total)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete a resource and its files",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return cli.Exit("resource id is required", 2)
			}
			api, err := newClient(c)
			if err != nil {
				return err
			}
			if err := api.Delete(c.Context, id); err != nil {
				return reportError(c, err)
			}
			fmt.Fprintln(c.App.Writer, "Resource deleted successfully!")
			return nil
		},
	}
}

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "print the accepted universities, branches, semesters and subjects",
		Action: func(c *cli.Context) error {
			out := c.App.Writer
			sections := []struct {
				title   string
				options []domain.Option
			}{
				{"Universities", domain.Universities},
				{"Branches", domain.Branches},
				{"Semesters", domain.Semesters},
				{"Subjects", domain.Subjects},
			}
			for _, s := range sections {
				fmt.Fprintln(out, s.title+":")
				for _, o := range s.options {
					fmt.Fprintf(out, "  %-20s %s\n", o.Value, o.Label)
				}
			}
			fmt.Fprintf(out, "Types: %s\n", domain.NewKindSet(domain.Kinds...))
			return nil
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint a bearer token with the configured JWT secret",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Value: "resourcectl", Usage: "token subject"},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime (defaults to jwt.token_expiration)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return cli.Exit("jwt.secret is not configured", 1)
			}
			svc := newJWTService(cfg)
			token, expiry, err := svc.GenerateToken(c.String("subject"), c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, token)
			fmt.Fprintf(c.App.ErrWriter, "expires %s\n", expiry.Format(time.RFC3339))
			return nil
		},
	}
}

func newJWTService(cfg *config.Config) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})
}
