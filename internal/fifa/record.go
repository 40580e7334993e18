package fifa

import (
	"fmt"
	"strings"
)

// Fields is the ordered column vocabulary of an exported record.
var Fields = []string{
	"season",
	"player",
	"team",
	"appearances",
	"lineups",
	"substitute in",
	"substitute out",
	"subs on bench",
	"injuries",
	"minutes played",
	"goals",
	"assists",
	"big chances created",
	"big chances missed",
	"shots",
	"on target",
	"shots blocked",
	"hit woodwork",
	"passes",
	"accurate passes",
	"key passes",
	"crosses",
	"crosses accurate",
	"long balls",
	"through balls",
	"passing accuracy",
	"dribbles attempts",
	"dribbles success",
	"dribbled past",
	"dribbles dispossessed",
	"duels",
	"duels won",
	"tackles",
	"interceptions",
	"blocks",
	"long balls won",
	"aerials won",
	"clearances",
	"fouls committed",
	"fouls drawn",
	"yellow cards",
	"2nd yellow card",
	"red cards",
	"offsides",
	"saves",
	"inside box saves",
	"penalty saved",
	"clean sheets",
	"conceded",
	"rating",
}

// identityFields precede the statistics in Fields.
const identityFields = 3

var statIndex = func() map[string]bool {
	idx := make(map[string]bool, len(Fields)-identityFields)
	for _, name := range Fields[identityFields:] {
		idx[name] = true
	}
	return idx
}()

// IsStat reports whether name is one of the known statistic columns.
func IsStat(name string) bool {
	return statIndex[name]
}

// ColumnPolicy decides what happens to titled columns outside Fields.
type ColumnPolicy int

const (
	// KeepUnknown stores unknown columns in SeasonRecord.Extra.
	KeepUnknown ColumnPolicy = iota
	// IgnoreUnknown drops unknown columns.
	IgnoreUnknown
	// RejectUnknown fails the record with ErrUnknownColumn.
	RejectUnknown
)

// ParseColumnPolicy maps "keep", "ignore" and "reject" to a ColumnPolicy.
func ParseColumnPolicy(s string) (ColumnPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return KeepUnknown, nil
	case "ignore":
		return IgnoreUnknown, nil
	case "reject":
		return RejectUnknown, nil
	}
	return KeepUnknown, fmt.Errorf("invalid column policy: %s (must be keep, ignore or reject)", s)
}

func (p ColumnPolicy) String() string {
	switch p {
	case IgnoreUnknown:
		return "ignore"
	case RejectUnknown:
		return "reject"
	default:
		return "keep"
	}
}

// SeasonRecord is one row of a player's career page.
type SeasonRecord struct {
	Season string
	Player *Player
	Team   *Team

	stats map[string]string

	// Extra holds titled columns outside Fields when the policy is KeepUnknown.
	Extra map[string]string
}

// set stores one (label, value) pair from a titled cell.
func (r *SeasonRecord) set(label, value string, policy ColumnPolicy) error {
	label = strings.ToLower(strings.TrimSpace(label))
	value = normalizeValue(value)

	if IsStat(label) {
		if r.stats == nil {
			r.stats = make(map[string]string)
		}
		r.stats[label] = value
		return nil
	}

	switch policy {
	case IgnoreUnknown:
		return nil
	case RejectUnknown:
		return fmt.Errorf("%w: %q", ErrUnknownColumn, label)
	}
	if r.Extra == nil {
		r.Extra = make(map[string]string)
	}
	r.Extra[label] = value
	return nil
}

// normalizeValue trims cell text. Dashed cells are often followed by stray glyphs,
// so anything starting with "-" collapses to "-".
func normalizeValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "-") {
		return "-"
	}
	return v
}

// Stat returns a statistic by its Fields name. ok is false when the column was
// absent from the page.
func (r *SeasonRecord) Stat(name string) (value string, ok bool) {
	value, ok = r.stats[name]
	return value, ok
}

// Get returns any field of Fields, including season, player and team.
func (r *SeasonRecord) Get(field string) (string, bool) {
	switch field {
	case "season":
		return r.Season, true
	case "player":
		if r.Player == nil {
			return "", false
		}
		return r.Player.String(), true
	case "team":
		if r.Team == nil {
			return "", false
		}
		return r.Team.String(), true
	}
	return r.Stat(field)
}

// Values flattens the record in Fields order. Missing values are empty strings.
func (r *SeasonRecord) Values() []string {
	values := make([]string, len(Fields))
	for i, field := range Fields {
		values[i], _ = r.Get(field)
	}
	return values
}

// Map returns the present fields keyed by name.
func (r *SeasonRecord) Map() map[string]string {
	m := make(map[string]string, len(Fields))
	for _, field := range Fields {
		if v, ok := r.Get(field); ok {
			m[field] = v
		}
	}
	return m
}
