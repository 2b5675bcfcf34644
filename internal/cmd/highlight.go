package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/mdedit/internal/config"
	"github.com/stateful/mdedit/internal/config/autoconfig"
	"github.com/stateful/mdedit/internal/editor"
	"github.com/stateful/mdedit/internal/renderer/ansi"
	rjson "github.com/stateful/mdedit/internal/renderer/json"
	"github.com/stateful/mdedit/internal/term"
)

func highlightCmd() *cobra.Command {
	var (
		format string
		color  string
	)

	cmd := cobra.Command{
		Use:   "highlight [file]",
		Short: "Split a Markdown document into styled segments.",
		Long: `Highlight a Markdown document for an editor overlay.

The "json" format prints the segments. The "ansi" format prints the source
with colors from the theme; every character of the source is preserved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(loader *config.Loader, cache *editor.Cache, logger *zap.Logger) error {
					defer logger.Sync()

					doc, err := loadDocument(cmd, loader, logger, inputArg(args))
					if err != nil {
						return err
					}

					segments := cache.Highlight(doc.Text, doc.Features)

					switch format {
					case "json":
						return writeJSON(cmd, rjson.FromSegments(segments))
					case "ansi":
						useColor, err := colorEnabled(cmd, color)
						if err != nil {
							return err
						}
						var theme ansi.Theme
						if useColor {
							theme = doc.Config.Theme
						}
						_, err = cmd.OutOrStdout().Write([]byte(ansi.New(theme).Render(segments)))
						return errors.Wrap(err, "failed to write result")
					default:
						return errors.Errorf("invalid format: %s", format)
					}
				},
			)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, ansi)")
	cmd.Flags().StringVar(&color, "color", "auto", "Use colors in the ansi format (auto, always, never)")

	return &cmd
}

func colorEnabled(cmd *cobra.Command, mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		return term.ColorEnabled(term.FromIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())), nil
	default:
		return false, errors.Errorf("invalid color mode: %s", mode)
	}
}
