package cmd

import (
	"fmt"
	"strings"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/mdedit/internal/config"
	"github.com/stateful/mdedit/internal/config/autoconfig"
	"github.com/stateful/mdedit/internal/term"
	"github.com/stateful/mdedit/pkg/markdown"
)

func featuresCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "features [file]",
		Short: "List features and whether they are enabled.",
		Long: `List all features with their state for a document.

With a file, profiles from the configuration are matched against it.
Without a file, the top-level configuration is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(loader *config.Loader, logger *zap.Logger) error {
					defer logger.Sync()

					var (
						doc *document
						err error
					)
					if len(args) > 0 {
						doc, err = loadDocument(cmd, loader, logger, args[0])
					} else {
						doc, err = newDocument(cmd, loader, logger, "", "")
					}
					if err != nil {
						return err
					}

					switch format {
					case "json":
						return renderFeaturesAsJSON(cmd, doc)
					case "table":
						return renderFeaturesAsTable(cmd, doc)
					default:
						return errors.Errorf("invalid format: %s", format)
					}
				},
			)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json)")

	return &cmd
}

func renderFeaturesAsTable(cmd *cobra.Command, doc *document) error {
	t := term.FromIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

	// For non-TTY, use a default width of 80.
	table := tableprinter.New(t.Out(), t.IsTTY(), term.Width(t, 80))

	// table header
	table.AddField(strings.ToUpper("Feature"))
	table.AddField(strings.ToUpper("Enabled"))
	table.EndRow()

	for _, f := range markdown.AllFeatures() {
		enabled := "No"
		if markdown.IsFeatureEnabled(doc.Features, f) {
			enabled = "Yes"
		}
		table.AddField(string(f))
		table.AddField(enabled)
		table.EndRow()
	}

	err := errors.WithStack(table.Render())

	if !t.IsTTY() || doc.Profile == nil {
		return err
	}

	_, _ = fmt.Fprintf(t.ErrOut(), "\nUsing profile %q\n", doc.Profile.Name)
	return err
}

type featuresOutput struct {
	Profile  string   `json:"profile,omitempty"`
	Enabled  []string `json:"enabled"`
	Disabled []string `json:"disabled"`
}

func renderFeaturesAsJSON(cmd *cobra.Command, doc *document) error {
	out := featuresOutput{
		Enabled:  []string{},
		Disabled: []string{},
	}
	if doc.Profile != nil {
		out.Profile = doc.Profile.Name
	}
	for _, f := range markdown.AllFeatures() {
		if markdown.IsFeatureEnabled(doc.Features, f) {
			out.Enabled = append(out.Enabled, string(f))
		} else {
			out.Disabled = append(out.Disabled, string(f))
		}
	}
	return writeJSON(cmd, out)
}
