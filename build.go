package periodex

import (
	"sort"
	"strings"
)

// Build assembles finalized entry records from the two strategy
// resolutions over the same body text. For each TOC entry it pairs the
// strict and loose spans (either, both, or neither may be present),
// slices and noise-strips the raw span text, and records the identity
// flag. Indices are assigned 1-based by sorting on the earliest
// available match position, strict preferred when both are present;
// entries unlocated under both strategies are retained with Index 0
// after all indexed entries, in TOC order.
//
// The returned fragments are the noise removed from the spans, in
// removal order, for the caller's misc collector. Loose-span fragments
// are included only for entries with no strict span, since the strict
// and loose spans of one entry overlap and would double-count their
// noise. A nil stripper disables stripping.
//
// An empty body or an empty title list yields an empty record sequence.
// A loose position greater than its strict position cannot arise from
// Locate over a single body; Build reports it as EINTERNAL rather than
// silently accepting it.
func Build(body string, titles []TitleEntry, strict, loose []ResolvedEntry, stripper *Stripper) ([]EntryRecord, []Fragment, error) {
	if body == "" || len(titles) == 0 {
		return nil, nil, nil
	}

	strictSpans := spansByTitle(strict)
	looseSpans := spansByTitle(loose)

	var records []EntryRecord
	var fragments []Fragment

	for _, entry := range titles {
		rec := EntryRecord{
			Title:  entry.Title,
			Author: entry.Author,
			Etype:  entry.Etype,
		}

		var strictFrags, looseFrags []Fragment
		if span, ok := strictSpans[entry.Title]; ok {
			rec.Strict, strictFrags = sliceMatch(body, span, stripper)
		}
		if span, ok := looseSpans[entry.Title]; ok {
			rec.Loose, looseFrags = sliceMatch(body, span, stripper)
		}

		if rec.Strict != nil && rec.Loose != nil {
			if rec.Loose.Position > rec.Strict.Position {
				return nil, nil, Errorf(EINTERNAL,
					"loose match at %d after strict match at %d for title %q",
					rec.Loose.Position, rec.Strict.Position, entry.Title)
			}
			rec.StrictLooseIdentical = rec.Strict.Content == rec.Loose.Content
		}

		fragments = append(fragments, strictFrags...)
		if rec.Strict == nil {
			fragments = append(fragments, looseFrags...)
		}

		records = append(records, rec)
	}

	return assignIndices(records), fragments, nil
}

// spansByTitle indexes located spans by title. Duplicate titles in one
// TOC locate identically, so the first span wins.
func spansByTitle(resolved []ResolvedEntry) map[string]*Span {
	spans := make(map[string]*Span, len(resolved))
	for _, r := range resolved {
		if r.Span == nil {
			continue
		}
		if _, ok := spans[r.Entry.Title]; !ok {
			spans[r.Entry.Title] = r.Span
		}
	}
	return spans
}

// sliceMatch extracts a span's raw text, strips noise, and builds the
// match. Length is the raw span length before stripping.
func sliceMatch(body string, span *Span, stripper *Stripper) (*Match, []Fragment) {
	raw := body[span.Start:span.End]
	cleaned := raw
	var frags []Fragment
	if stripper != nil {
		cleaned, frags = stripper.Strip(raw)
	}
	return &Match{
		Position: span.Start,
		Length:   len(raw),
		Content:  strings.TrimSpace(cleaned),
	}, frags
}

// assignIndices orders records by earliest defined position (strict is
// higher-confidence and takes priority when both are present) and
// numbers them from 1. Records with no match under either strategy keep
// Index 0 and follow the indexed ones; the sort is stable so TOC order
// survives wherever positions tie or are absent.
func assignIndices(records []EntryRecord) []EntryRecord {
	matched := make([]EntryRecord, 0, len(records))
	var unmatched []EntryRecord

	for _, rec := range records {
		if rec.Strict == nil && rec.Loose == nil {
			unmatched = append(unmatched, rec)
			continue
		}
		matched = append(matched, rec)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return sortPosition(matched[i]) < sortPosition(matched[j])
	})
	for i := range matched {
		matched[i].Index = i + 1
	}

	return append(matched, unmatched...)
}

func sortPosition(rec EntryRecord) int {
	if rec.Strict != nil {
		return rec.Strict.Position
	}
	return rec.Loose.Position
}
