// Package resourcectl implements the resourcectl command line front end. It drives
// the submission form against a running resource API.
package resourcectl

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/yigit/resourcehub/internal/client"
	"github.com/yigit/resourcehub/internal/config"
	"github.com/yigit/resourcehub/internal/pkg/helpers"
	"github.com/yigit/resourcehub/internal/pkg/logger"
)

const (
	flagConfig   = "config"
	flagAPIURL   = "api-url"
	flagAssetURL = "asset-url"
	flagToken    = "token"
	flagTimeout  = "timeout"
	flagLogLevel = "log-level"
	flagJSON     = "json"
)

// NewApp builds the resourcectl application. Output is written to out.
func NewApp(out io.Writer) *cli.App {
	if out == nil {
		out = os.Stdout
	}
	return &cli.App{
		Name:                 "resourcectl",
		Usage:                "add, edit and browse study resources",
		Writer:               out,
		ErrWriter:            out,
		EnableBashCompletion: true,
		// Exit codes are left to the caller; see ExitCode.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagConfig, Aliases: []string{"c"}, Value: "configs/config.yaml", EnvVars: []string{"CONFIG_PATH"}, Usage: "config file"},
			&cli.StringFlag{Name: flagAPIURL, Usage: "resource API base URL (overrides config)"},
			&cli.StringFlag{Name: flagAssetURL, Usage: "base URL stored files are served from (overrides config)"},
			&cli.StringFlag{Name: flagToken, Usage: "bearer token for write requests (overrides config)"},
			&cli.DurationFlag{Name: flagTimeout, Usage: "request timeout (overrides config)"},
			&cli.StringFlag{Name: flagLogLevel, Value: "warn", Usage: "log level"},
		},
		Before: func(c *cli.Context) error {
			logger.Configure(logger.Config{Level: c.String(flagLogLevel), Format: "text", Output: os.Stderr})
			return nil
		},
		Commands: []*cli.Command{
			addCommand(),
			editCommand(),
			getCommand(),
			listCommand(),
			deleteCommand(),
			catalogCommand(),
			tokenCommand(),
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String(flagConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newClient builds an API client from config with flag overrides applied.
func newClient(c *cli.Context) (*client.Client, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	baseURL := cfg.Client.BaseURL
	if c.IsSet(flagAPIURL) {
		baseURL = c.String(flagAPIURL)
	}
	timeout := helpers.ParseDuration(cfg.Client.Timeout, 30*time.Second)
	if c.IsSet(flagTimeout) {
		timeout = c.Duration(flagTimeout)
	}
	token := cfg.Client.Token
	if c.IsSet(flagToken) {
		token = c.String(flagToken)
	}
	assetURL := cfg.Client.AssetBaseURL
	if c.IsSet(flagAssetURL) {
		assetURL = c.String(flagAssetURL)
	}

	opts := []client.Option{client.WithTimeout(timeout), client.WithToken(token)}
	if assetURL != "" {
		opts = append(opts, client.WithAssetBaseURL(assetURL))
	}
	return client.New(baseURL, opts...), nil
}

// ExitCode maps an error returned by Run to a process exit status, printing
// its message when it carries one.
func ExitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if coder, ok := err.(cli.ExitCoder); ok {
		if msg := coder.Error(); msg != "" {
			fmt.Fprintln(w, msg)
		}
		return coder.ExitCode()
	}
	fmt.Fprintln(w, err)
	return 1
}
