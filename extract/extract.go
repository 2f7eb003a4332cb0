// Package extract orchestrates issue extraction: front-matter and ads
// segmentation, the two independent boundary-resolution passes, entry
// building, and review flagging. Issues are independent of each other
// and are processed by a bounded worker pool.
package extract

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/periodex"
	"golang.org/x/sync/errgroup"
)

// Ensure Extractor implements periodex.IssueExtractor at compile time.
var _ periodex.IssueExtractor = (*Extractor)(nil)

// Extractor runs the extraction pipeline for issues.
type Extractor struct {
	// Stripper removes known boilerplate from entry spans. Nil
	// disables stripping.
	Stripper *periodex.Stripper
}

// ExtractIssue processes one issue against its TOC entries. The strict
// and loose resolution passes are independent and run concurrently;
// building waits for both.
func (e *Extractor) ExtractIssue(ctx context.Context, issue *periodex.Issue, titles []periodex.TitleEntry) (*periodex.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seg := Segment(issue.Body)

	var strict, loose []periodex.ResolvedEntry
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		strict = periodex.Resolve(titles, seg.Body, periodex.Strict)
		return nil
	})
	g.Go(func() error {
		loose = periodex.Resolve(titles, seg.Body, periodex.Loose)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries, noise, err := periodex.Build(seg.Body, titles, strict, loose, e.Stripper)
	if err != nil {
		return nil, err
	}

	preamble := bodyPreamble(seg.Body, entries)

	// Records carry offsets into the full issue text, not the segmented
	// body.
	for i := range entries {
		if entries[i].Strict != nil {
			entries[i].Strict.Position += seg.BodyOffset
		}
		if entries[i].Loose != nil {
			entries[i].Loose.Position += seg.BodyOffset
		}
	}

	return &periodex.Extraction{
		Entries:     entries,
		Flags:       periodex.FlagEntries(entries),
		Noise:       noise,
		FrontMatter: seg.FrontMatter,
		Preamble:    preamble,
		Ads:         seg.Ads,
		BodyOffset:  seg.BodyOffset,
	}, nil
}

// bodyPreamble returns the body text preceding the earliest located
// entry. No article span covers this text, so it is carried separately
// rather than dropped. When nothing was located the whole body is
// uncovered.
func bodyPreamble(body string, entries []periodex.EntryRecord) string {
	first := -1
	for i := range entries {
		for _, m := range []*periodex.Match{entries[i].Strict, entries[i].Loose} {
			if m != nil && (first < 0 || m.Position < first) {
				first = m.Position
			}
		}
	}
	if first < 0 {
		return body
	}
	return body[:first]
}

// Job pairs an issue with its ordered TOC entries.
type Job struct {
	Issue  *periodex.Issue
	Titles []periodex.TitleEntry
}

// Result holds the outcome of one job. Err is set when the issue
// failed; Extraction is nil in that case.
type Result struct {
	Issue      *periodex.Issue
	Extraction *periodex.Extraction
	Err        error
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a multi-issue extraction.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	IssueID   string
	Err       error
}

// ProgressFunc is a callback for reporting extraction progress.
type ProgressFunc func(event ProgressEvent)

// ExtractAll processes the given jobs with a bounded worker pool.
// Issues share no mutable state, so the pool needs no coordination
// beyond the result slice. Results are returned in job order. A failed
// issue is recorded in its Result and does not stop the others;
// ExtractAll itself only returns an error when the context is
// canceled. Zero or negative concurrency means a default of 4.
func ExtractAll(ctx context.Context, extractor periodex.IssueExtractor, jobs []Job, concurrency int, progress ProgressFunc) ([]Result, error) {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]Result, len(jobs))
	var completed atomic.Int64
	total := len(jobs)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			extraction, err := extractor.ExtractIssue(gctx, job.Issue, job.Titles)
			results[i] = Result{Issue: job.Issue, Extraction: extraction, Err: err}

			done := int(completed.Add(1))
			if progress != nil {
				eventType := ProgressCompleted
				if err != nil {
					eventType = ProgressFailed
				}
				progress(ProgressEvent{
					Type:      eventType,
					Completed: done,
					Total:     total,
					IssueID:   job.Issue.ID,
					Err:       err,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return results, nil
}
