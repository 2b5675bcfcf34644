package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/stateful/mdedit/pkg/markdown"
)

var cmpProfile = cmpopts.IgnoreUnexported(Profile{})

func TestDefault(t *testing.T) {
	// Invariant that all default configurations are equal.
	expected, err := newDefault()
	require.NoError(t, err)
	got := Default()
	opts := []cmp.Option{cmpopts.EquateEmpty(), cmpProfile}
	require.True(t, cmp.Equal(expected, got, opts...), "%s", cmp.Diff(expected, got, opts...))

	assert.Equal(t, "v1alpha1", got.Version)
	assert.Nil(t, got.Features)
	assert.Equal(t, 128, got.Cache.Capacity)
	assert.Equal(t, "magenta+b", got.Theme.Style(markdown.SegmentHeading))
	assert.NoError(t, validate(got))
}

func TestParseYAML(t *testing.T) {
	testCases := []struct {
		name           string
		rawConfig      string
		expected       func(*Config)
		errorSubstring string
	}{
		{
			name:      "only version",
			rawConfig: "version: v1alpha1\n",
			expected:  func(*Config) {},
		},
		{
			name: "features and cache",
			rawConfig: `version: v1alpha1
features: [bold, heading2]
cache:
  capacity: 4
`,
			expected: func(c *Config) {
				c.Features = []string{"bold", "heading2"}
				c.Cache.Capacity = 4
			},
		},
		{
			name: "empty features",
			rawConfig: `version: v1alpha1
features: []
`,
			expected: func(c *Config) {
				c.Features = []string{}
			},
		},
		{
			name: "theme is merged with defaults",
			rawConfig: `version: v1alpha1
theme:
  bold: "red+b"
`,
			expected: func(c *Config) {
				c.Theme["bold"] = "red+b"
			},
		},
		{
			name: "profiles and log",
			rawConfig: `version: v1alpha1
profiles:
  - name: notes
    pattern: "notes/*.md"
    condition: "lines < 100"
    features: [italic]
log:
  enabled: true
  path: /tmp/mdedit.log
  verbose: true
`,
			expected: func(c *Config) {
				c.Profiles = []*Profile{{
					Name:      "notes",
					Pattern:   "notes/*.md",
					Condition: "lines < 100",
					Features:  []string{"italic"},
				}}
				c.Log = ConfigLog{Enabled: true, Path: "/tmp/mdedit.log", Verbose: true}
			},
		},
		{
			name:           "missing version",
			rawConfig:      "features: [bold]\n",
			errorSubstring: `mdedit.yaml: unknown version: ""`,
		},
		{
			name:           "unknown version",
			rawConfig:      "version: v2\n",
			errorSubstring: `unknown version: "v2"`,
		},
		{
			name:           "unknown field",
			rawConfig:      "version: v1alpha1\nproject: {}\n",
			errorSubstring: "field project not found",
		},
		{
			name: "unknown feature",
			rawConfig: `version: v1alpha1
features: [bold, tables]
`,
			errorSubstring: `features: "tables": unknown feature`,
		},
		{
			name: "invalid profile condition",
			rawConfig: `version: v1alpha1
profiles:
  - name: broken
    condition: "lines +"
`,
			errorSubstring: "profiles[0]: failed to compile condition",
		},
		{
			name: "non boolean condition",
			rawConfig: `version: v1alpha1
profiles:
  - name: broken
    condition: "lines"
`,
			errorSubstring: "profiles[0]: failed to compile condition",
		},
		{
			name: "negative capacity",
			rawConfig: `version: v1alpha1
cache:
  capacity: -1
`,
			errorSubstring: "cache.capacity: must not be negative, got -1",
		},
		{
			name: "unknown theme key",
			rawConfig: `version: v1alpha1
theme:
  table: red
`,
			errorSubstring: `theme: unknown segment type "table"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseYAML([]byte(tc.rawConfig))

			if tc.errorSubstring != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.errorSubstring)
				return
			}

			require.NoError(t, err)

			expected := Default()
			tc.expected(expected)
			require.True(t, cmp.Equal(expected, got, cmpProfile), "%s", cmp.Diff(expected, got, cmpProfile))
		})
	}
}

func TestParse_CollectsAllErrors(t *testing.T) {
	_, err := ParseYAML([]byte(`version: v1alpha1
features: [tables]
cache:
  capacity: -2
render:
  width: -1
`))
	require.Error(t, err)

	errs := multierr.Errors(errors.Cause(err))
	assert.Len(t, errs, 3)
}

func TestParseTOML(t *testing.T) {
	got, err := ParseTOML([]byte(`version = "v1alpha1"
features = ["bold", "code"]

[cache]
capacity = 8

[[profiles]]
name = "readme"
pattern = "README.md"
features = ["heading1"]

[theme]
code = "green"
`))
	require.NoError(t, err)

	expected := Default()
	expected.Features = []string{"bold", "code"}
	expected.Cache.Capacity = 8
	expected.Profiles = []*Profile{{Name: "readme", Pattern: "README.md", Features: []string{"heading1"}}}
	expected.Theme["code"] = "green"

	require.True(t, cmp.Equal(expected, got, cmpProfile), "%s", cmp.Diff(expected, got, cmpProfile))
}

func TestParse_Chain(t *testing.T) {
	got, err := Parse(
		File{Name: "mdedit.toml", Data: []byte("version = \"v1alpha1\"\nfeatures = [\"bold\"]\n\n[cache]\ncapacity = 2\n")},
		File{Name: "docs/mdedit.yaml", Data: []byte("version: v1alpha1\nfeatures: [italic]\n")},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"italic"}, got.Features)
	assert.Equal(t, 2, got.Cache.Capacity)
}

func TestConfig_FeaturesFor(t *testing.T) {
	cfg, err := ParseYAML([]byte(`version: v1alpha1
features: [bold]
profiles:
  - name: changelog
    pattern: "**/CHANGELOG.md"
    features: [heading2, unorderedList]
  - name: big
    condition: "lines > 2 && ext == '.md'"
    features: []
  - name: notes
    pattern: "notes/*"
`))
	require.NoError(t, err)

	testCases := []struct {
		name            string
		doc             DocumentEnv
		expectedProfile string
		expected        []markdown.Feature
	}{
		{
			name:            "glob",
			doc:             NewDocumentEnv("docs/CHANGELOG.md", "x"),
			expectedProfile: "changelog",
			expected:        []markdown.Feature{markdown.FeatureHeading2, markdown.FeatureUnorderedList},
		},
		{
			name:            "condition",
			doc:             NewDocumentEnv("a.md", "1\n2\n3"),
			expectedProfile: "big",
			expected:        []markdown.Feature{},
		},
		{
			name:            "profile without features enables all",
			doc:             NewDocumentEnv("notes/today.txt", ""),
			expectedProfile: "notes",
			expected:        markdown.AllFeatures(),
		},
		{
			name:     "fallback",
			doc:      NewDocumentEnv("notes/deep/today.txt", ""),
			expected: []markdown.Feature{markdown.FeatureBold},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set, profile, err := cfg.FeaturesFor(tc.doc)
			require.NoError(t, err)
			if tc.expectedProfile == "" {
				assert.Nil(t, profile)
			} else {
				require.NotNil(t, profile)
				assert.Equal(t, tc.expectedProfile, profile.Name)
			}
			assert.Equal(t, tc.expected, set.List())
		})
	}
}

func TestNewDocumentEnv(t *testing.T) {
	assert.Equal(t, DocumentEnv{Name: "a/b.md", Ext: ".md", Size: 4, Lines: 2}, NewDocumentEnv("a/b.md", "x\nyz"))
	assert.Equal(t, DocumentEnv{}, NewDocumentEnv("", ""))
}
