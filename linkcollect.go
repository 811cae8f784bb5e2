// Package linkcollect fetches a single web page and collects the absolute
// http/https links it contains. The pipeline fetches the page, extracts
// anchor hrefs, filters out non-navigable values, resolves the rest against
// the final page URL, removes duplicates in first-seen order and hands the
// resulting list to a sink.
//
// This package contains domain types, interfaces and the pure link stages,
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., http/,
// goquery/, bloom/, fs/).
package linkcollect
