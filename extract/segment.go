package extract

import (
	"regexp"
	"strings"
)

// frontMatterMarker reliably ends the front matter (cover, TOC,
// notices) in every scanned issue.
const frontMatterMarker = "PUBLISHED MONTHLY BY THE GENERAL BOARD"

// pageLineRe matches lines like "Page 3 The Modern Family", the
// fallback signal that the TOC has ended and article text begins.
var pageLineRe = regexp.MustCompile(`^Page\s+\d+\s+[A-Z]`)

// adMarkers signal the advertising section at the tail of an issue.
var adMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)When Buying Mention Relief Society Magazine`),
	regexp.MustCompile(`(?i)DESERET NEWS PRESS`),
	regexp.MustCompile(`(?i)DESERET BOOK COMPANY`),
	regexp.MustCompile(`(?i)DAYNES\S?\s*MUSIC\s*CO`),
	regexp.MustCompile(`(?i)L\.\s*D\.\s*S\.\s*BUSINESS COLLEGE`),
	regexp.MustCompile(`(?i)MORMON HANDICRAFT`),
	regexp.MustCompile(`(?i)Brigham Young University`),
}

// maxAdBacktrack bounds how far the ads boundary walks back looking for
// the paragraph break that starts the section.
const maxAdBacktrack = 500

// Segmentation splits an issue's full text into front matter, article
// body, and trailing advertising. Offsets locate Body and Ads within
// the full text.
type Segmentation struct {
	FrontMatter string
	Body        string
	Ads         string
	BodyOffset  int
	AdsOffset   int
}

// Segment splits text so title matching happens in the article body
// only: TOC lines repeat every title verbatim, and matching against
// them would anchor every entry to the contents page.
//
// Front matter ends two lines past the publication marker; when the
// marker is absent, at the first "Page N Title" line past the first
// few lines. Text with neither signal is treated as all body. The
// advertising tail is detected from known ad markers in the last 30%
// of the body, with the boundary walked back to the nearest paragraph
// break within reach.
func Segment(text string) Segmentation {
	bodyStart := 0
	if idx := strings.Index(text, frontMatterMarker); idx >= 0 {
		bodyStart = skipLines(text, idx, 2)
	} else if idx := fallbackBodyStart(text); idx >= 0 {
		bodyStart = idx
	}

	body := text[bodyStart:]
	adsStart := findAdsStart(body)

	seg := Segmentation{
		FrontMatter: text[:bodyStart],
		Body:        body,
		BodyOffset:  bodyStart,
		AdsOffset:   bodyStart + len(body),
	}
	if adsStart >= 0 {
		seg.Body = body[:adsStart]
		seg.Ads = body[adsStart:]
		seg.AdsOffset = bodyStart + adsStart
	}
	return seg
}

// skipLines returns the offset just past the n-th line break at or
// after from, or end-of-text if there are fewer breaks.
func skipLines(text string, from, n int) int {
	pos := from
	for i := 0; i < n; i++ {
		nl := strings.IndexByte(text[pos:], '\n')
		if nl < 0 {
			return len(text)
		}
		pos += nl + 1
	}
	return pos
}

// fallbackBodyStart scans for the first page-number line beyond the
// opening lines and returns its offset, or -1.
func fallbackBodyStart(text string) int {
	offset := 0
	for lineno := 0; offset < len(text); lineno++ {
		end := strings.IndexByte(text[offset:], '\n')
		if end < 0 {
			end = len(text) - offset
		}
		if lineno > 5 && pageLineRe.MatchString(text[offset:offset+end]) {
			return offset
		}
		offset += end + 1
	}
	return -1
}

// findAdsStart returns the offset within body where the advertising
// section begins, or -1 if none is detected.
func findAdsStart(body string) int {
	searchStart := len(body) * 7 / 10
	region := body[searchStart:]

	earliest := -1
	for _, re := range adMarkers {
		loc := re.FindStringIndex(region)
		if loc == nil {
			continue
		}
		pos := searchStart + loc[0]
		if earliest < 0 || pos < earliest {
			earliest = pos
		}
	}
	if earliest < 0 {
		return -1
	}

	// The marker usually sits a few lines into the ads section; walk
	// back to the paragraph break that starts it.
	if nl := strings.LastIndex(body[:earliest], "\n\n"); nl >= 0 && earliest-nl < maxAdBacktrack {
		return nl
	}
	return earliest
}
