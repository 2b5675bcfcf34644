package config

import (
	"bytes"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/stateful/mdedit/internal/version"
	"github.com/stateful/mdedit/pkg/markdown"
)

const currentVersion = "v1alpha1"

// Config is the configuration of mdedit, usually read from mdedit.yaml.
type Config struct {
	Version string `yaml:"version" toml:"version"`

	// Requires is a version constraint, for example ">= 1.2",
	// that the running binary must satisfy.
	Requires string `yaml:"requires,omitempty" toml:"requires,omitempty"`

	// Features enabled for documents not matched by any profile.
	// Nil enables all features.
	Features []string `yaml:"features" toml:"features"`

	// Profiles are checked in order. The first matching one
	// provides the features for a document.
	Profiles []*Profile `yaml:"profiles,omitempty" toml:"profiles,omitempty"`

	Cache  ConfigCache  `yaml:"cache" toml:"cache"`
	Render ConfigRender `yaml:"render" toml:"render"`
	Theme  Theme        `yaml:"theme" toml:"theme"`
	Log    ConfigLog    `yaml:"log" toml:"log"`
}

type ConfigCache struct {
	// Capacity is the number of highlight results kept in memory.
	// Zero disables the cache.
	Capacity int `yaml:"capacity" toml:"capacity"`
}

type ConfigRender struct {
	// Width to wrap rendered text at. Zero means the terminal width.
	Width int `yaml:"width" toml:"width"`
}

type ConfigLog struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
	Verbose bool   `yaml:"verbose" toml:"verbose"`
}

// Theme maps segment types to color specs like "blue+b".
// Each value is a color name or a 256-color index, optionally
// followed by "+" and attributes: b (bold), u (underline),
// s (strikethrough), i (inverse), h (bright).
type Theme map[string]string

// File is the raw content of a configuration file.
type File struct {
	Name string
	Data []byte
}

func isTOML(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".toml")
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := newDefault()
	if err != nil {
		panic(err)
	}
	return cfg
}

func newDefault() (*Config, error) {
	var cfg Config
	if err := decode(File{Name: "defaults.yaml", Data: defaultsYAML}, &cfg, true); err != nil {
		return nil, errors.Wrap(err, "failed to decode defaults")
	}
	return &cfg, nil
}

// ParseYAML parses a single YAML configuration on top of the defaults.
func ParseYAML(data []byte) (*Config, error) {
	return Parse(File{Name: "mdedit.yaml", Data: data})
}

// ParseTOML parses a single TOML configuration on top of the defaults.
func ParseTOML(data []byte) (*Config, error) {
	return Parse(File{Name: "mdedit.toml", Data: data})
}

// Parse applies files in order on top of the defaults. Later files
// override the values set by the earlier ones. The format of each
// file is chosen by its extension.
func Parse(files ...File) (*Config, error) {
	cfg, err := newDefault()
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		v, err := parseVersion(f)
		if err != nil {
			return nil, err
		}
		if v != currentVersion {
			return nil, errors.Errorf("%s: unknown version: %q", f.Name, v)
		}

		if err := decode(f, cfg, true); err != nil {
			return nil, err
		}
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

type versionOnly struct {
	Version string `yaml:"version" toml:"version"`
}

func parseVersion(f File) (string, error) {
	var result versionOnly
	if err := decode(f, &result, false); err != nil {
		return "", errors.WithMessage(err, "failed to read version")
	}
	return result.Version, nil
}

// decode unmarshals f into v. In strict mode unknown fields are rejected.
func decode(f File, v any, strict bool) error {
	if isTOML(f.Name) {
		dec := toml.NewDecoder(bytes.NewReader(f.Data))
		if strict {
			dec.DisallowUnknownFields()
		}
		return errors.Wrapf(dec.Decode(v), "failed to unmarshal %s", f.Name)
	}

	dec := yaml.NewDecoder(bytes.NewReader(f.Data))
	dec.KnownFields(strict)
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return errors.Wrapf(err, "failed to unmarshal %s", f.Name)
}

func validate(cfg *Config) error {
	var err error

	if _, fErr := markdown.ParseFeatures(cfg.Features); fErr != nil {
		err = multierr.Append(err, errors.WithMessage(fErr, "features"))
	}

	for i, p := range cfg.Profiles {
		if p == nil {
			err = multierr.Append(err, errors.Errorf("profiles[%d]: empty profile", i))
			continue
		}
		if pErr := p.validate(); pErr != nil {
			err = multierr.Append(err, errors.WithMessagef(pErr, "profiles[%d]", i))
		}
	}

	if cfg.Cache.Capacity < 0 {
		err = multierr.Append(err, errors.Errorf("cache.capacity: must not be negative, got %d", cfg.Cache.Capacity))
	}

	if cfg.Render.Width < 0 {
		err = multierr.Append(err, errors.Errorf("render.width: must not be negative, got %d", cfg.Render.Width))
	}

	err = multierr.Append(err, cfg.Theme.validate())

	if vErr := version.Check(cfg.Requires); vErr != nil {
		err = multierr.Append(err, errors.WithMessage(vErr, "requires"))
	}

	return err
}

func (t Theme) validate() error {
	known := make(map[string]bool)
	for _, typ := range markdown.AllSegmentTypes() {
		known[string(typ)] = true
	}

	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var err error
	for _, k := range keys {
		if !known[k] {
			err = multierr.Append(err, errors.Errorf("theme: unknown segment type %q", k))
		}
	}
	return err
}

// Style returns the color spec for a segment type.
func (t Theme) Style(typ markdown.SegmentType) string {
	return t[string(typ)]
}

// FeaturesFor resolves the features for a document. It returns
// the matched profile, or nil if the top-level features were used.
func (c *Config) FeaturesFor(doc DocumentEnv) (*markdown.FeatureSet, *Profile, error) {
	for _, p := range c.Profiles {
		ok, err := p.Match(doc)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "profile %q", p.Name)
		}
		if ok {
			set, err := markdown.ParseFeatures(p.Features)
			return set, p, errors.WithMessagef(err, "profile %q", p.Name)
		}
	}

	set, err := markdown.ParseFeatures(c.Features)
	return set, nil, err
}
