// Package cli implements the command-line interface for fifa-stats.
//
// The cli package provides the Cobra-based CLI with three commands: season
// exports one season's records for every player of the league, players exports
// the full careers of every player seen across a range of seasons, and teams
// lists a season's teams. It coordinates the config, fifa and storage packages
// and reports progress on stderr.
package cli
