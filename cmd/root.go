package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Devon-White/aria2-options/internal/config"
	"github.com/Devon-White/aria2-options/internal/pipeline"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "aria2-options",
		Short: "Extract aria2 command-line options from its manual into JSON",
		Long: `aria2-options scrapes the option reference of the aria2 manual and writes
every option (name, category, type, default value and description) as a JSON
array.

By default it reads the Markdown rendering of the manual from aria-docs.md and
writes src/lib/aria2-options.json. The manual can also be fetched directly
(--url) and HTML renderings are converted to Markdown before extraction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.Input, "input", "i", cfg.Input, "Markdown or HTML manual to read")
	f.StringVarP(&cfg.Output, "output", "o", cfg.Output, "JSON output path")
	f.StringVar(&cfg.URL, "url", "", "fetch the manual from this URL instead of --input")
	f.BoolVar(&cfg.HTML, "html", false, "treat the source as HTML regardless of its name or content type")
	f.StringVar(&cfg.Selector, "selector", "", "CSS selector for the manual's content area (default: auto-detect)")
	f.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "URL that relative links in a local HTML manual resolve against")
	f.StringVar(&cfg.SaveMarkdown, "save-markdown", "", "also write the source Markdown to this path")
	f.StringVar(&cfg.PermalinkPrefix, "permalink-prefix", cfg.PermalinkPrefix, "URL prefix of permalink references removed from descriptions")
	f.IntVar(&cfg.MaxDescription, "max-description", cfg.MaxDescription, "truncate descriptions longer than this many characters")
	f.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "custom User-Agent string")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if cfg.MaxDescription < 0 {
		return fmt.Errorf("max-description must be non-negative")
	}
	if cfg.URL != "" && cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	n, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d options.\n", n)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}
