package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/mdedit/internal/log"
)

var (
	fChdir    string
	fFeatures []string
	fVerbose  bool
)

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:   "mdedit",
		Short: "Parse, highlight and edit Markdown",
		Long: `mdedit works with the Markdown subset understood by the editor:
headings, emphasis, code, links, images, quotes, lists and dividers.

Features can be restricted with --features or with an mdedit.yaml
configuration file found in the working directory.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if fVerbose {
				log.Set()
			}
			if fChdir != "" && fChdir != "." {
				if err := os.Chdir(fChdir); err != nil {
					return errors.Wrapf(err, "failed to change directory to %q", fChdir)
				}
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			log.Flush()
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&fChdir, "chdir", ".", "Switch to a different working directory before executing the command.")
	pflags.StringSliceVar(&fFeatures, "features", nil, "Enabled features. Overrides the configuration. An empty value disables all features.")
	pflags.BoolVarP(&fVerbose, "verbose", "v", false, "Write debug logs to stderr.")

	cmd.AddCommand(checkCmd())
	cmd.AddCommand(editCmd())
	cmd.AddCommand(featuresCmd())
	cmd.AddCommand(highlightCmd())
	cmd.AddCommand(inlineCmd())
	cmd.AddCommand(parseCmd())
	cmd.AddCommand(renderCmd())
	cmd.AddCommand(toolbarCmd())
	cmd.AddCommand(versionCmd())

	return &cmd
}
