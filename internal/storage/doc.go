// Package storage writes exported season records to the data directory.
//
// Records are written either as CSV, with a header row of fifa.Fields followed
// by one row per record, or as JSON lines with one object per record keyed by
// field name. The data directory accepts a leading ~/ and is created on demand.
package storage
