package periodex

import "strings"

// FlagWindow is the number of leading characters (runes) of cleaned
// content searched for the entry's own title.
const FlagWindow = 200

// FlagEntries scans finalized entries and emits a flag record for every
// (entry, strategy) pair whose cleaned content does not contain the
// entry's title within its first FlagWindow characters. The check uses
// the same case-sensitive literal-substring semantics as Locate. An
// entry may be flagged under strict, loose, both, or neither; flagged
// entries are likely false splits, created because the title matched
// inside another article's prose rather than at its real heading.
//
// FlagEntries never mutates the entries it scans; its output is
// advisory, intended for human review.
func FlagEntries(entries []EntryRecord) []FlagRecord {
	var flags []FlagRecord
	for _, entry := range entries {
		for _, strategy := range []Strategy{Strict, Loose} {
			m := entry.MatchFor(strategy)
			if m == nil || titleNearStart(entry.Title, m.Content) {
				continue
			}
			flags = append(flags, FlagRecord{
				Index:           entry.Index,
				Title:           entry.Title,
				Strategy:        strategy,
				TitleNotAtStart: true,
			})
		}
	}
	return flags
}

// titleNearStart reports whether title occurs within the first
// FlagWindow runes of content. The window is counted in runes because
// OCR text is full of multibyte punctuation (em-dashes, curly quotes)
// and byte counting would shrink the window on exactly the entries most
// likely to need review.
func titleNearStart(title, content string) bool {
	end := len(content)
	runes := 0
	for i := range content {
		if runes == FlagWindow {
			end = i
			break
		}
		runes++
	}
	return strings.Contains(content[:end], title)
}
