package markdown

import (
	"strconv"

	"github.com/pkg/errors"
)

// Feature names a syntax category that can be switched on or off.
type Feature string

const (
	FeatureBold          Feature = "bold"
	FeatureItalic        Feature = "italic"
	FeatureStrikethrough Feature = "strikethrough"
	FeatureCode          Feature = "code"
	FeatureCodeBlock     Feature = "codeBlock"
	FeatureHeading       Feature = "heading"
	FeatureHeading1      Feature = "heading1"
	FeatureHeading2      Feature = "heading2"
	FeatureHeading3      Feature = "heading3"
	FeatureHeading4      Feature = "heading4"
	FeatureHeading5      Feature = "heading5"
	FeatureHeading6      Feature = "heading6"
	FeatureQuote         Feature = "quote"
	FeatureUnorderedList Feature = "unorderedList"
	FeatureOrderedList   Feature = "orderedList"
	FeatureDivider       Feature = "divider"
	FeatureImage         Feature = "image"
)

var ErrUnknownFeature = errors.New("unknown feature")

var allFeatures = []Feature{
	FeatureBold,
	FeatureItalic,
	FeatureStrikethrough,
	FeatureCode,
	FeatureCodeBlock,
	FeatureHeading,
	FeatureHeading1,
	FeatureHeading2,
	FeatureHeading3,
	FeatureHeading4,
	FeatureHeading5,
	FeatureHeading6,
	FeatureQuote,
	FeatureUnorderedList,
	FeatureOrderedList,
	FeatureDivider,
	FeatureImage,
}

// AllFeatures returns every known feature in declaration order.
func AllFeatures() []Feature {
	result := make([]Feature, len(allFeatures))
	copy(result, allFeatures)
	return result
}

// Valid reports whether f is one of the known features.
func (f Feature) Valid() bool {
	for _, item := range allFeatures {
		if item == f {
			return true
		}
	}
	return false
}

// HeadingFeature returns the level-specific heading feature, for example
// "heading3" for level 3. Levels outside 1-6 return an empty feature.
func HeadingFeature(level int) Feature {
	if level < 1 || level > 6 {
		return ""
	}
	return Feature("heading" + strconv.Itoa(level))
}

// FeatureSet is an ordered set of enabled features.
//
// A nil *FeatureSet means that every feature is enabled. An empty,
// non-nil set disables everything.
type FeatureSet struct {
	order []Feature
	index map[Feature]struct{}
}

// NewFeatureSet creates a set with the given features. Duplicates are ignored
// and the first occurrence determines the order.
func NewFeatureSet(features ...Feature) *FeatureSet {
	s := &FeatureSet{index: make(map[Feature]struct{}, len(features))}
	for _, f := range features {
		if _, ok := s.index[f]; ok {
			continue
		}
		s.index[f] = struct{}{}
		s.order = append(s.order, f)
	}
	return s
}

// ParseFeatures converts feature names into a set. A nil slice
// results in a nil set, meaning all features are enabled.
func ParseFeatures(names []string) (*FeatureSet, error) {
	if names == nil {
		return nil, nil
	}
	features := make([]Feature, 0, len(names))
	for _, name := range names {
		f := Feature(name)
		if !f.Valid() {
			return nil, errors.Wrapf(ErrUnknownFeature, "%q", name)
		}
		features = append(features, f)
	}
	return NewFeatureSet(features...), nil
}

func (s *FeatureSet) Has(f Feature) bool {
	if s == nil {
		return true
	}
	_, ok := s.index[f]
	return ok
}

// List returns the features in insertion order. For a nil set
// it returns all known features.
func (s *FeatureSet) List() []Feature {
	if s == nil {
		return AllFeatures()
	}
	result := make([]Feature, len(s.order))
	copy(result, s.order)
	return result
}

// Strings is like List but returns plain names.
func (s *FeatureSet) Strings() []string {
	list := s.List()
	result := make([]string, 0, len(list))
	for _, f := range list {
		result = append(result, string(f))
	}
	return result
}

// IsFeatureEnabled reports whether feature is enabled in features.
// The generic heading feature is enabled when any heading feature is present.
func IsFeatureEnabled(features *FeatureSet, feature Feature) bool {
	if features == nil {
		return true
	}
	if feature == FeatureHeading {
		for level := 1; level <= 6; level++ {
			if features.Has(HeadingFeature(level)) {
				return true
			}
		}
	}
	return features.Has(feature)
}

// IsHeadingLevelEnabled reports whether headings of the given level
// are recognized.
func IsHeadingLevelEnabled(features *FeatureSet, level int) bool {
	if level < 1 || level > 6 {
		return false
	}
	if features == nil {
		return true
	}
	return features.Has(FeatureHeading) || features.Has(HeadingFeature(level))
}
