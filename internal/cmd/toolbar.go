package cmd

import (
	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/mdedit/internal/config/autoconfig"
	rjson "github.com/stateful/mdedit/internal/renderer/json"
	"github.com/stateful/mdedit/pkg/markdown/toolbar"
)

func toolbarCmd() *cobra.Command {
	var (
		action string
		start  int
		end    int
		active []string
		copyTo bool
	)

	cmd := cobra.Command{
		Use:   "toolbar [file]",
		Short: "Apply a toolbar action to a document and print the result as JSON.",
		Long: `Apply a formatting action, as issued by an editor toolbar, to the selection
[start, end) of a document. Offsets count characters, not bytes.

Inline actions: bold, italic, strikethrough, code.
Block actions: heading, heading1..heading6, quote, unorderedList,
orderedList, divider, codeBlock.
Other actions: image.`,
		Example: `  mdedit toolbar --action bold --start 6 --end 11 README.md
  printf 'one\ntwo' | mdedit toolbar --action orderedList --end 7`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(logger *zap.Logger) error {
					defer logger.Sync()

					a, err := toolbar.ParseAction(action)
					if err != nil {
						return err
					}

					req := toolbar.Request{
						Action:    a,
						Selection: toolbar.Selection{Start: start, End: end},
					}
					for _, name := range active {
						activeAction, err := toolbar.ParseAction(name)
						if err != nil {
							return errors.WithMessage(err, "invalid --active")
						}
						if !activeAction.IsInline() {
							return errors.Errorf("invalid --active: %q is not an inline action", name)
						}
						req.ActiveInlineActions = append(req.ActiveInlineActions, activeAction)
					}

					data, err := readInput(cmd, inputArg(args))
					if err != nil {
						return err
					}
					req.Text = string(data)

					if !cmd.Flags().Changed("end") {
						req.Selection.End = req.Selection.Start
					}

					result, err := toolbar.Apply(req)
					if err != nil {
						return err
					}
					logger.Info(
						"applied toolbar action",
						zap.String("action", action),
						zap.Int("start", result.Selection.Start),
						zap.Int("end", result.Selection.End),
					)

					if copyTo {
						if err := clipboard.WriteAll(result.Text); err != nil {
							return errors.Wrap(err, "failed to copy to clipboard")
						}
					}

					return writeJSON(cmd, rjson.FromToolbarResult(a, result))
				},
			)
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "Action to apply")
	cmd.Flags().IntVar(&start, "start", 0, "Start of the selection")
	cmd.Flags().IntVar(&end, "end", 0, "End of the selection. Defaults to --start, which makes a caret")
	cmd.Flags().StringSliceVar(&active, "active", nil, "Inline actions toggled on at the caret")
	cmd.Flags().BoolVar(&copyTo, "copy", false, "Copy the resulting text to the clipboard")

	_ = cmd.MarkFlagRequired("action")

	return &cmd
}
