// Package fifa models the sofifa.com entity graph used to export player statistics.
//
// A Season is loaded eagerly from the league's team listing. Each Team lazily loads
// its roster, and each Player lazily loads its career page, which yields one
// SeasonRecord per season played. Child collections are fetched at most once per
// instance. All page loads go through the site's RetryPolicy so HTTP 429 responses
// are waited out instead of failing the run.
package fifa
