package config

import (
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrRootConfigNotFound = errors.New("root configuration file not found")

// DefaultNames are the configuration file names in the order of precedence.
var DefaultNames = []string{"mdedit.yaml", "mdedit.yml", "mdedit.toml"}

// Loader allows to load configuration files from a file system.
type Loader struct {
	// names are accepted configuration file names. In every
	// directory only the first existing one is used.
	names []string

	// configRootPath is a root path for the configuration file.
	// Typically, it's the current working directory.
	configRootPath fs.FS

	logger *zap.Logger
}

type LoaderOption func(*Loader)

func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(names []string, configRootPath fs.FS, opts ...LoaderOption) *Loader {
	if len(names) == 0 {
		panic("config name is not set")
	}

	l := &Loader{
		names:          names,
		configRootPath: configRootPath,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = zap.NewNop()
	}

	return l
}

// RootConfig returns the configuration file from the root directory.
func (l *Loader) RootConfig() (File, error) {
	name, err := l.findInDir(".")
	if err != nil {
		return File{}, err
	}
	if name == "" {
		return File{}, ErrRootConfigNotFound
	}
	files, err := l.readFiles(name)
	if err != nil {
		return File{}, err
	}
	return files[0], nil
}

// FindConfigChain returns the root configuration file followed by
// configuration files from every directory on the way to p.
// p is a slash-separated path relative to the root, either
// a directory or a file.
func (l *Loader) FindConfigChain(p string) ([]File, error) {
	paths, err := l.findConfigFilesOnPath(p)
	if err != nil {
		return nil, err
	}
	return l.readFiles(paths...)
}

func (l *Loader) findInDir(dir string) (string, error) {
	for _, name := range l.names {
		p := path.Join(dir, name)
		_, err := fs.Stat(l.configRootPath, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", errors.Wrapf(err, "failed to stat %q", p)
		}
	}
	return "", nil
}

func (l *Loader) findConfigFilesOnPath(name string) (result []string, _ error) {
	name, err := l.parsePath(name)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("finding config files on path", zap.String("name", name))

	// The root configuration file is always searched in the root directory.
	rootConfig, err := l.findInDir(".")
	if err != nil {
		return nil, err
	}
	if rootConfig != "" {
		result = append(result, rootConfig)
	}

	if name == "." {
		return result, nil
	}

	curDir := ""
	for _, fragment := range strings.Split(name, "/") {
		curDir = path.Join(curDir, fragment)

		configPath, err := l.findInDir(curDir)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("checked nested configuration file", zap.String("dir", curDir), zap.String("path", configPath))
		if configPath != "" {
			result = append(result, configPath)
		}
	}

	l.logger.Debug("found config files on path", zap.String("name", name), zap.Strings("files", result))

	return result, nil
}

// parsePath returns the directory part of name, which must exist in the root.
func (l *Loader) parsePath(name string) (string, error) {
	if name == "" {
		name = "."
	}

	name = path.Clean(name)
	if !fs.ValidPath(name) {
		return "", errors.Errorf("path %q is outside of the configuration root", name)
	}

	info, err := fs.Stat(l.configRootPath, name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get the path info for %q", name)
	}

	if info.IsDir() {
		return name, nil
	}
	return path.Dir(name), nil
}

func (l *Loader) readFiles(paths ...string) (result []File, _ error) {
	for _, p := range paths {
		data, err := fs.ReadFile(l.configRootPath, p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %q", p)
		}
		result = append(result, File{Name: p, Data: data})
	}
	return result, nil
}

// Load parses the configuration chain for p. Without any
// configuration files the defaults are returned.
func (l *Loader) Load(p string) (*Config, error) {
	files, err := l.FindConfigChain(p)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		l.logger.Debug("no configuration files found, using defaults")
	}
	return Parse(files...)
}
