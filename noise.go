package periodex

import (
	"regexp"
	"strings"
)

// NoisePattern is one configurable removal: a human-readable label and
// a regular expression source. Patterns must be mutually disjoint so
// that no pattern's removal enables or blocks another's match;
// disjointness is a configuration constraint, not something Strip
// resolves at runtime. Strip applies patterns in declaration order, so
// even a misconfigured overlapping set behaves deterministically.
type NoisePattern struct {
	Label   string `json:"label"`
	Pattern string `json:"pattern"`
}

// Fragment is one noise occurrence removed from a span, recorded
// verbatim before removal.
type Fragment struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Stripper removes known boilerplate substrings from article spans.
type Stripper struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	label string
	re    *regexp.Regexp
}

// NewStripper compiles the given patterns. An invalid pattern fails
// here with EINVALID, before any issue is processed: a pattern that
// does not compile indicates a systemic misconfiguration, not a
// per-document anomaly.
func NewStripper(patterns []NoisePattern) (*Stripper, error) {
	s := &Stripper{patterns: make([]compiledPattern, 0, len(patterns))}
	for _, p := range patterns {
		if p.Pattern == "" {
			return nil, Errorf(EINVALID, "noise pattern %q: pattern required", p.Label)
		}
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "noise pattern %q: %s", p.Label, err)
		}
		s.patterns = append(s.patterns, compiledPattern{label: p.Label, re: re})
	}
	return s, nil
}

// Strip removes every match of every pattern from text, returning the
// cleaned text and the removed fragments in removal order. Each
// fragment is recorded verbatim before removal. Beyond the fragment
// itself at most one immediately following line break is consumed, so
// removing a full boilerplate line does not merge the paragraphs around
// it. Stripping already-cleaned text is a no-op.
func (s *Stripper) Strip(text string) (string, []Fragment) {
	var fragments []Fragment

	for _, p := range s.patterns {
		locs := p.re.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}

		var b strings.Builder
		b.Grow(len(text))
		prev := 0
		for _, loc := range locs {
			fragments = append(fragments, Fragment{Label: p.label, Text: text[loc[0]:loc[1]]})
			b.WriteString(text[prev:loc[0]])
			prev = loc[1]
			if prev < len(text) && text[prev] == '\n' {
				prev++
			}
		}
		b.WriteString(text[prev:])
		text = b.String()
	}

	return text, fragments
}

// DefaultNoisePatterns returns the removals for Relief Society Magazine
// scans: the running page header with its optional month and year, the
// section label that repeats mid-page, the second-class mailing
// statement, and the manuscript-return notice. The four are disjoint.
func DefaultNoisePatterns() []NoisePattern {
	return []NoisePattern{
		{
			Label: "running header",
			Pattern: `(?im)^[0-9]* *RELIEF SOCIETY MAGAZINE *[^\w\n]*` +
				`(?:JANUARY|FEBRUARY|MARCH|APRIL|MAY|JUNE|JULY|AUGUST|SEPTEMBER|OCTOBER|NOVEMBER|DECEMBER)?` +
				` *[0-9]{0,4} *$`,
		},
		{
			Label:   "section label",
			Pattern: `(?m)^[ \t]*LESSON DEPARTMENT[ \t]*$`,
		},
		{
			Label:   "mailing statement",
			Pattern: `(?is)Entered as second-class matter.*?authorized\s+June\s+29,\s+1918\.`,
		},
		{
			Label:   "manuscript notice",
			Pattern: `Stamps should accompany manuscripts for their return\.`,
		},
	}
}
