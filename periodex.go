// Package periodex extracts discrete entries (articles, poems, fiction,
// lessons) from OCR-derived plaintext of a monthly serial publication.
// Entry boundaries are located by matching table-of-contents titles
// against the body text under two independent strategies (strict
// line-start and loose anywhere-match), and entries whose own title does
// not appear near the start of their extracted content are flagged as
// likely false splits for human review.
//
// This package contains domain types, interfaces, and the pure matching
// core following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.,
// sqlite/, fs/, slog/); orchestration lives in extract/.
package periodex
