package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/mdedit/internal/config"
	"github.com/stateful/mdedit/pkg/markdown"
)

const stdinName = "-"

// document is an input file together with the configuration
// that applies to it.
type document struct {
	// Name is a slash-separated path relative to the working directory.
	// It is empty for stdin and files outside of the working directory.
	Name     string
	Path     string
	Text     string
	Config   *config.Config
	Features *markdown.FeatureSet
	Profile  *config.Profile
}

func readInput(cmd *cobra.Command, fileName string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if fileName == stdinName {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrap(err, "failed to read from stdin")
		}
		fileName = "stdin"
	} else {
		data, err = os.ReadFile(fileName)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read file %q", fileName)
		}
	}

	if err := checkText(fileName, data); err != nil {
		return nil, err
	}
	return data, nil
}

// checkText rejects binary content, such as images passed by mistake.
func checkText(fileName string, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	detected := mimetype.Detect(data)
	for mtype := detected; mtype != nil; mtype = mtype.Parent() {
		if mtype.Is("text/plain") {
			return nil
		}
	}
	return errors.Errorf("%s: not a text file (detected %s)", fileName, detected.String())
}

// relativeName returns fileName relative to the working directory,
// or an empty string if it is not inside of it.
func relativeName(fileName string) string {
	if fileName == stdinName || fileName == "" {
		return ""
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	abs, err := filepath.Abs(fileName)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}

// loadDocument reads fileName and resolves its features. The --features
// flag takes precedence over profiles and the configuration.
func loadDocument(cmd *cobra.Command, loader *config.Loader, logger *zap.Logger, fileName string) (*document, error) {
	data, err := readInput(cmd, fileName)
	if err != nil {
		return nil, err
	}
	return newDocument(cmd, loader, logger, fileName, string(data))
}

func newDocument(cmd *cobra.Command, loader *config.Loader, logger *zap.Logger, fileName, text string) (*document, error) {
	doc := &document{
		Name: relativeName(fileName),
		Path: fileName,
		Text: text,
	}

	cfg, err := loader.Load(doc.Name)
	if err != nil {
		return nil, err
	}
	doc.Config = cfg

	if cmd.Flags().Changed("features") {
		doc.Features, err = markdown.ParseFeatures(fFeatures)
		if err != nil {
			return nil, errors.WithMessage(err, "invalid --features")
		}
		// An explicitly empty flag disables everything.
		if doc.Features == nil {
			doc.Features = markdown.NewFeatureSet()
		}
	} else {
		doc.Features, doc.Profile, err = cfg.FeaturesFor(config.NewDocumentEnv(doc.Name, text))
		if err != nil {
			return nil, err
		}
	}

	profile := ""
	if doc.Profile != nil {
		profile = doc.Profile.Name
	}
	logger.Debug(
		"loaded document",
		zap.String("name", doc.Name),
		zap.Int("size", len(text)),
		zap.String("profile", profile),
		zap.Strings("features", doc.Features.Strings()),
	)

	return doc, nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return stdinName
	}
	return args[0]
}

func writeJSON(cmd *cobra.Command, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(
		jsonpretty.Format(cmd.OutOrStdout(), bytes.NewReader(raw), "  ", false),
	)
}
