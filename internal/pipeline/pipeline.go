package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/Devon-White/aria2-options/internal/config"
	"github.com/Devon-White/aria2-options/internal/options"
	"github.com/Devon-White/aria2-options/internal/source"
	"github.com/Devon-White/aria2-options/internal/writer"
)

// Run executes one extraction: load the manual, optionally snapshot its
// Markdown, extract the options and write them as JSON. It returns the
// number of options written.
func Run(ctx context.Context, cfg *config.Config) (int, error) {
	parser := options.New(cfg.PermalinkPrefix, cfg.MaxDescription)

	var opts []options.Option
	if source.IsLocalMarkdown(cfg) && cfg.SaveMarkdown == "" {
		if cfg.Verbose {
			log.Printf("Reading %s", cfg.Input)
		}
		var err error
		if opts, err = parser.ExtractFile(cfg.Input); err != nil {
			return 0, fmt.Errorf("source: %w", err)
		}
	} else {
		md, err := source.Load(ctx, cfg)
		if err != nil {
			return 0, fmt.Errorf("source: %w", err)
		}

		if cfg.SaveMarkdown != "" {
			if err := writer.WriteMarkdown(cfg.SaveMarkdown, md); err != nil {
				return 0, fmt.Errorf("markdown snapshot: %w", err)
			}
			if cfg.Verbose {
				log.Printf("Saved markdown to %s", cfg.SaveMarkdown)
			}
		}

		opts = parser.Extract(md)
	}

	if cfg.Verbose {
		categories := map[string]bool{}
		for _, o := range opts {
			categories[o.Category] = true
		}
		log.Printf("Found %d options in %d categories", len(opts), len(categories))
	}

	if err := writer.WriteJSON(cfg.Output, opts); err != nil {
		return 0, fmt.Errorf("output: %w", err)
	}

	if cfg.Verbose {
		log.Printf("Wrote %s", cfg.Output)
	}
	return len(opts), nil
}
