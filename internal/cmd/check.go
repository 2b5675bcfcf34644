package cmd

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stateful/mdedit/internal/config"
	"github.com/stateful/mdedit/internal/config/autoconfig"
	"github.com/stateful/mdedit/internal/editor"
	"github.com/stateful/mdedit/internal/renderer/ansi"
	"github.com/stateful/mdedit/pkg/markdown"
)

type checkResult struct {
	name     string
	segments int
	blocks   int
	err      error
}

func checkCmd() *cobra.Command {
	var concurrency int

	cmd := cobra.Command{
		Use:   "check [file...]",
		Short: "Verify that highlighting reproduces documents exactly.",
		Long: `Highlight every document and check that concatenating the segments
yields the original text byte for byte. The colored rendering with the
configured theme must also reduce to the original text once escape
sequences are removed.

Without files the document is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{stdinName}
			}

			return autoconfig.InvokeForCommand(
				func(loader *config.Loader, cache *editor.Cache, logger *zap.Logger) error {
					defer logger.Sync()

					results := make([]checkResult, len(args))

					g, _ := errgroup.WithContext(cmd.Context())
					g.SetLimit(concurrency)

					// Loaders and commands are not safe for concurrent use.
					var mu sync.Mutex

					for i, name := range args {
						g.Go(func() error {
							mu.Lock()
							doc, err := loadDocument(cmd, loader, logger, name)
							mu.Unlock()
							if err != nil {
								// Input errors stop the whole check.
								return err
							}
							results[i] = checkDocument(doc, cache)
							return nil
						})
					}

					if err := g.Wait(); err != nil {
						return err
					}

					return reportCheck(cmd, results)
				},
			)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of documents checked at the same time")

	return &cmd
}

func checkDocument(doc *document, cache *editor.Cache) checkResult {
	name := doc.Path
	if name == stdinName {
		name = "stdin"
	}

	segments := cache.Highlight(doc.Text, doc.Features)
	result := checkResult{
		name:     name,
		segments: len(segments),
		blocks:   len(markdown.Parse(doc.Text, doc.Features)),
		err:      markdown.CheckParity(doc.Text, segments),
	}
	if result.err != nil || strings.ContainsAny(doc.Text, "\x1b\u009b") {
		return result
	}

	var theme ansi.Theme
	if doc.Config != nil {
		theme = doc.Config.Theme
	}
	if colored := ansi.New(theme).Render(segments); ansi.Strip(colored) != doc.Text {
		result.err = errors.New("colored output does not reduce to the source")
	}
	return result
}

func reportCheck(cmd *cobra.Command, results []checkResult) error {
	ok := color.New(color.FgGreen)
	failed := color.New(color.FgRed, color.Bold)

	w := cmd.OutOrStdout()
	failures := 0

	for _, r := range results {
		if r.err != nil {
			failures++
			_, _ = failed.Fprint(w, "FAIL")
			_, _ = fmt.Fprintf(w, " %s: %s\n", r.name, r.err)
			continue
		}
		_, _ = ok.Fprint(w, "ok")
		_, _ = fmt.Fprintf(w, "   %s (%d blocks, %d segments)\n", r.name, r.blocks, r.segments)
	}

	if failures > 0 {
		return errors.Errorf("%d of %d documents failed the check", failures, len(results))
	}
	return nil
}
