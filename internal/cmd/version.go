package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stateful/mdedit/internal/version"
)

func versionCmd() *cobra.Command {
	var constraint string

	cmd := cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if constraint != "" {
				if err := version.Check(constraint); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "mdedit %s\n", version.String())
			return err
		},
	}

	// None of the document flags apply here.
	originalUsageFunc := cmd.UsageFunc()
	cmd.SetUsageFunc(func(cmd *cobra.Command) error {
		cmd.Root().PersistentFlags().VisitAll(func(f *pflag.Flag) {
			f.Hidden = f.Name != "verbose"
		})
		return originalUsageFunc(cmd)
	})

	cmd.Flags().StringVar(&constraint, "check", "", "Fail unless the version satisfies the constraint, for example \">= 1.0\"")

	return &cmd
}
