package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/mdedit/internal/config"
	"github.com/stateful/mdedit/internal/config/autoconfig"
	"github.com/stateful/mdedit/internal/renderer/html"
	rterm "github.com/stateful/mdedit/internal/renderer/term"
	"github.com/stateful/mdedit/internal/term"
	"github.com/stateful/mdedit/pkg/markdown"
)

func renderCmd() *cobra.Command {
	var (
		format string
		width  int
	)

	cmd := cobra.Command{
		Use:   "render [file]",
		Short: "Render a Markdown document as HTML or styled terminal text.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(loader *config.Loader, logger *zap.Logger) error {
					defer logger.Sync()

					doc, err := loadDocument(cmd, loader, logger, inputArg(args))
					if err != nil {
						return err
					}

					blocks := markdown.Parse(doc.Text, doc.Features)

					var result []byte

					switch format {
					case "html":
						result = html.Render(blocks)
					case "term":
						t := term.FromIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

						w := width
						if !cmd.Flags().Changed("width") {
							w = doc.Config.Render.Width
						}
						if w == 0 {
							w = term.Width(t, 0)
						}
						logger.Debug("rendering for terminal", zap.Int("width", w), zap.Bool("tty", t.IsTTY()))

						r := rterm.New(doc.Config.Theme, rterm.WithWidth(w), rterm.WithOutput(t.Out()))
						result = []byte(r.Render(blocks))
					default:
						return errors.Errorf("invalid format: %s", format)
					}

					_, err = cmd.OutOrStdout().Write(result)
					return errors.Wrap(err, "failed to write result")
				},
			)
		},
	}

	cmd.Flags().StringVar(&format, "format", "html", "Output format (html, term)")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap paragraphs at the given column in the term format. Zero uses the terminal width.")

	return &cmd
}
