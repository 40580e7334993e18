package fifa

import "errors"

var (
	// ErrNoIdentifier means a link did not match the expected team or player path.
	ErrNoIdentifier = errors.New("no identifier in link")
	// ErrSeasonNotDetected means a season label was neither YYYY nor YYYY/YYYY.
	ErrSeasonNotDetected = errors.New("season not detected")
	// ErrSeasonNotFound means a player has no record for the requested season.
	ErrSeasonNotFound = errors.New("season not found")
	// ErrUnknownColumn is returned under RejectUnknown for a column outside Fields.
	ErrUnknownColumn = errors.New("unknown statistic column")
)
