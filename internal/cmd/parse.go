package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/mdedit/internal/config"
	"github.com/stateful/mdedit/internal/config/autoconfig"
	rjson "github.com/stateful/mdedit/internal/renderer/json"
	"github.com/stateful/mdedit/pkg/markdown"
)

func parseCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "parse [file]",
		Short: "Print the block structure of a Markdown document as JSON.",
		Long: `Parse a Markdown document and print its blocks as JSON.

Without a file or with "-" the document is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(loader *config.Loader, logger *zap.Logger) error {
					defer logger.Sync()

					doc, err := loadDocument(cmd, loader, logger, inputArg(args))
					if err != nil {
						return err
					}

					blocks := markdown.Parse(doc.Text, doc.Features)
					logger.Info("parsed document", zap.Int("blocks", len(blocks)))

					return writeJSON(cmd, rjson.FromBlocks(blocks))
				},
			)
		},
	}

	return &cmd
}

func inlineCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "inline [text...]",
		Short: "Print the inline nodes of a single run of Markdown as JSON.",
		Long: `Tokenize inline Markdown, such as emphasis, code spans, links and images.

The arguments are joined with spaces. Without arguments the text is read from stdin.`,
		Example: `  mdedit inline '**bold** and \*escaped\*'
  echo '![alt](image.png "Title")' | mdedit inline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(loader *config.Loader, logger *zap.Logger) error {
					defer logger.Sync()

					var (
						doc *document
						err error
					)
					if len(args) > 0 {
						doc, err = newDocument(cmd, loader, logger, "", strings.Join(args, " "))
					} else {
						doc, err = loadDocument(cmd, loader, logger, stdinName)
						if doc != nil {
							doc.Text = strings.TrimRight(doc.Text, "\r\n")
						}
					}
					if err != nil {
						return err
					}

					return writeJSON(cmd, rjson.FromInlines(markdown.ParseInline(doc.Text, doc.Features)))
				},
			)
		},
	}

	return &cmd
}
