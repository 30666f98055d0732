package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind selects one of the dataset transforms.
type Kind int

const (
	KindPopulationGrowth Kind = iota + 1
	KindPopulationAgeSex
	KindUrbanBuiltUpArea
	KindPopulationUrbanGrowth
	KindLandCover
	KindSolar
	KindFlood
	KindEarthquake
	KindFireWeather
)

type kindSpec struct {
	kind   Kind
	name   string
	title  string
	inputs int
}

var kindSpecs = []kindSpec{
	{KindPopulationGrowth, "pg", "population growth", 1},
	{KindPopulationAgeSex, "pas", "population age and sex", 1},
	{KindUrbanBuiltUpArea, "uba", "urban built-up area", 1},
	{KindPopulationUrbanGrowth, "pug", "population urban growth", 2},
	{KindLandCover, "lc", "land cover", 1},
	{KindSolar, "pv", "photovoltaic potential", 1},
	{KindFlood, "flood", "flood risk", 1},
	{KindEarthquake, "ee", "earthquake events", 1},
	{KindFireWeather, "fwi", "fire weather index", 1},
}

// detectRules are checked in order against the input file name; the first
// matching substring wins. "lc" is deliberately late because it is short.
var detectRules = []struct {
	pattern string
	kind    Kind
}{
	{"population-growth", KindPopulationGrowth},
	{"demographics", KindPopulationAgeSex},
	{"wsf_stats", KindUrbanBuiltUpArea},
	{"wsft_stats", KindUrbanBuiltUpArea},
	{"pug", KindPopulationUrbanGrowth},
	{"monthly-pv", KindSolar},
	{"flood", KindFlood},
	{"earthquake-events", KindEarthquake},
	{"lc", KindLandCover},
	{"fwi", KindFireWeather},
}

// Kinds lists every dataset kind in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(kindSpecs))
	for i, s := range kindSpecs {
		out[i] = s.kind
	}
	return out
}

func (k Kind) spec() (kindSpec, bool) {
	for _, s := range kindSpecs {
		if s.kind == k {
			return s, true
		}
	}
	return kindSpec{}, false
}

// String returns the short dataset code, e.g. "pg".
func (k Kind) String() string {
	if s, ok := k.spec(); ok {
		return s.name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Title returns a human-readable dataset name.
func (k Kind) Title() string {
	if s, ok := k.spec(); ok {
		return s.title
	}
	return k.String()
}

// Inputs returns how many source tables the transform consumes.
func (k Kind) Inputs() int {
	if s, ok := k.spec(); ok {
		return s.inputs
	}
	return 0
}

// ParseKind maps a short dataset code to its Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range kindSpecs {
		if s.name == name {
			return s.kind, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown dataset %q", ErrAmbiguousSelection, name)
}

// DetectKind infers the transform from substrings of the input file name.
func DetectKind(path string) (Kind, error) {
	base := filepath.Base(path)
	for _, r := range detectRules {
		if strings.Contains(base, r.pattern) {
			return r.kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrAmbiguousSelection, base)
}

// DetectPatterns returns the file name substrings DetectKind understands, for usage text.
func DetectPatterns() []string {
	out := make([]string, len(detectRules))
	for i, r := range detectRules {
		out[i] = r.pattern
	}
	return out
}
