package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/mdedit/internal/config"
	"github.com/stateful/mdedit/internal/config/autoconfig"
	"github.com/stateful/mdedit/internal/editor"
	"github.com/stateful/mdedit/pkg/markdown/toolbar"
)

func editCmd() *cobra.Command {
	var (
		script string
		write  bool
	)

	cmd := cobra.Command{
		Use:   "edit [file]",
		Short: "Run an editing script against a document.",
		Long: `Start an editing session and run commands read from stdin or --script,
one per line. Lines starting with "#" are ignored.

Commands:
  select START [END]   select a range; a single offset makes a caret
  insert TEXT          replace the selection; TEXT may be a quoted Go string
  apply ACTION         apply a toolbar action
  undo                 revert the last edit
  print                print the text
  selection            print the selection
  active               print the inline actions toggled on at the caret
  format OFFSET        print the inline formatting at an offset
  segments             print the highlighted segments

The final text is printed unless the script printed something. With --write
the file is updated instead.`,
		Example: `  printf 'select 0 5\napply bold\nprint\n' | mdedit edit README.md`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && (len(args) == 0 || args[0] == stdinName) {
				return errors.New("--write requires a file")
			}

			return autoconfig.InvokeForCommand(
				func(loader *config.Loader, cache *editor.Cache, logger *zap.Logger) error {
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

					in := cmd.InOrStdin()
					if script != "" {
						f, err := os.Open(script)
						if err != nil {
							return errors.Wrapf(err, "failed to open script %q", script)
						}
						defer f.Close()
						in = f
					}

					sess := editor.NewSession(
						doc.Text,
						editor.WithFeatures(doc.Features),
						editor.WithCache(cache),
						editor.WithLogger(logger),
					)
					logger.Info("started editing session", zap.String("id", sess.ID))

					out := &countingWriter{w: cmd.OutOrStdout()}
					if err := runScript(sess, in, out); err != nil {
						return err
					}

					if write {
						return errors.WithStack(os.WriteFile(doc.Path, []byte(sess.Text()), 0o644))
					}
					if out.n == 0 {
						_, err := fmt.Fprintln(out, sess.Text())
						return err
					}
					return nil
				},
			)
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "Read commands from a file instead of stdin")
	cmd.Flags().BoolVar(&write, "write", false, "Write the final text back to the file")

	return &cmd
}

type countingWriter struct {
	w io.Writer
	n int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.n += n
	return n, err
}

func runScript(sess *editor.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, rest, _ := strings.Cut(line, " ")
		if err := runScriptCommand(sess, name, strings.TrimSpace(rest), out); err != nil {
			return errors.WithMessagef(err, "line %d", lineNo)
		}
	}
	return errors.Wrap(scanner.Err(), "failed to read script")
}

func runScriptCommand(sess *editor.Session, name, arg string, out io.Writer) error {
	switch name {
	case "select":
		fields := strings.Fields(arg)
		if len(fields) == 0 || len(fields) > 2 {
			return errors.Errorf("select: expected 1 or 2 offsets, got %d", len(fields))
		}
		offsets := make([]int, 0, 2)
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return errors.Wrapf(err, "select: invalid offset %q", f)
			}
			offsets = append(offsets, v)
		}
		sel := toolbar.Caret(offsets[0])
		if len(offsets) == 2 {
			sel.End = offsets[1]
		}
		sess.Select(sel)

	case "insert":
		text := arg
		if strings.HasPrefix(arg, `"`) {
			unquoted, err := strconv.Unquote(arg)
			if err != nil {
				return errors.Wrapf(err, "insert: invalid quoted text %s", arg)
			}
			text = unquoted
		}
		sess.Insert(text)

	case "apply":
		action, err := toolbar.ParseAction(arg)
		if err != nil {
			return err
		}
		return sess.Apply(action)

	case "undo":
		if !sess.Undo() {
			return errors.New("undo: nothing to undo")
		}

	case "print":
		_, err := fmt.Fprintln(out, sess.Text())
		return err

	case "selection":
		sel := sess.Selection()
		_, err := fmt.Fprintf(out, "%d %d\n", sel.Start, sel.End)
		return err

	case "active":
		_, err := fmt.Fprintln(out, joinActions(sess.ActiveInlineActions()))
		return err

	case "format":
		offset, err := strconv.Atoi(arg)
		if err != nil {
			return errors.Wrapf(err, "format: invalid offset %q", arg)
		}
		_, err = fmt.Fprintln(out, joinActions(sess.FormattingAt(offset)))
		return err

	case "segments":
		for _, s := range sess.Highlight() {
			if _, err := fmt.Fprintf(out, "%s\t%q\n", s.Type, s.Text); err != nil {
				return err
			}
		}

	default:
		return errors.Errorf("unknown command %q", name)
	}
	return nil
}

func joinActions(actions []toolbar.Action) string {
	if len(actions) == 0 {
		return "-"
	}
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, string(a))
	}
	return strings.Join(names, ",")
}
