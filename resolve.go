package periodex

import "sort"

// Span is a half-open [Start, End) byte range into the body text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ResolvedEntry pairs a TOC entry with its fence-post span under one
// strategy. Span is nil when the title was not located.
type ResolvedEntry struct {
	Entry TitleEntry
	Span  *Span
}

// Resolve locates every title in body under one strategy and derives
// non-overlapping fence-post spans: each located entry's span runs from
// its match position to the next located entry's position, and the last
// located entry's span extends to end-of-text.
//
// Located entries come first in the returned sequence, sorted by
// position; the sort is stable so original TOC order decides exact
// position ties. Unlocated entries follow in their original TOC order
// with nil spans, carried forward for the entry builder. Each title is
// located independently; the strict and loose passes over the same
// titles and body are fully independent of each other.
func Resolve(titles []TitleEntry, body string, strategy Strategy) []ResolvedEntry {
	located := make([]ResolvedEntry, 0, len(titles))
	var unlocated []ResolvedEntry

	for _, entry := range titles {
		pos := Locate(entry.Title, body, strategy)
		if pos < 0 {
			unlocated = append(unlocated, ResolvedEntry{Entry: entry})
			continue
		}
		located = append(located, ResolvedEntry{Entry: entry, Span: &Span{Start: pos}})
	}

	sort.SliceStable(located, func(i, j int) bool {
		return located[i].Span.Start < located[j].Span.Start
	})

	for i := range located {
		if i+1 < len(located) {
			located[i].Span.End = located[i+1].Span.Start
		} else {
			located[i].Span.End = len(body)
		}
	}

	return append(located, unlocated...)
}
