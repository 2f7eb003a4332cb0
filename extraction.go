package periodex

import "context"

// Extraction is the complete result of processing one issue: the
// finalized entry records, the advisory review flags, the noise
// fragments removed from entry spans, and the text segments that no
// article span covers.
//
// Match positions in Entries are byte offsets into the issue's full
// text; the article body itself starts at BodyOffset. Preamble is the
// body text preceding the earliest located entry, empty when the first
// entry starts the body.
type Extraction struct {
	Entries     []EntryRecord `json:"entries"`
	Flags       []FlagRecord  `json:"flags"`
	Noise       []Fragment    `json:"noise"`
	FrontMatter string        `json:"frontMatter"`
	Preamble    string        `json:"preamble"`
	Ads         string        `json:"ads"`
	BodyOffset  int           `json:"bodyOffset"`
}

// IssueExtractor processes a single issue against its TOC entries.
// Extraction is deterministic: identical titles and body always yield
// an identical result.
type IssueExtractor interface {
	ExtractIssue(ctx context.Context, issue *Issue, titles []TitleEntry) (*Extraction, error)
}
