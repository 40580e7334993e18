// Package scraper provides HTTP fetching and table walking for sofifa.com pages.
//
// The site has no public API, so every page is fetched as HTML, parsed with goquery
// and reduced to its first table. Rate-limited responses (HTTP 429) surface as
// *StatusError values which RetryPolicy waits out using the server's Retry-After
// header.
package scraper
