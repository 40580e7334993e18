package cli

import (
	"cmp"
	"slices"

	"github.com/pfrederiksen/fifa-stats/internal/fifa"
)

// sortRecords orders records chronologically by season, then by team name, then
// by player identifier.
func sortRecords(records []*fifa.SeasonRecord) {
	slices.SortStableFunc(records, func(a, b *fifa.SeasonRecord) int {
		return cmp.Or(
			cmp.Compare(seasonYear(a), seasonYear(b)),
			cmp.Compare(a.Season, b.Season),
			cmp.Compare(teamName(a), teamName(b)),
			comparePlayers(a.Player, b.Player),
		)
	})
}

// seasonYear places unparsable codes before every real season.
func seasonYear(r *fifa.SeasonRecord) int {
	year, err := fifa.EndingYear(r.Season)
	if err != nil {
		return -1
	}
	return year
}

func teamName(r *fifa.SeasonRecord) string {
	if r.Team == nil {
		return ""
	}
	return r.Team.String()
}

// comparePlayers orders numeric identifiers by value without parsing them.
func comparePlayers(a, b *fifa.Player) int {
	var ka, kb fifa.PlayerKey
	if a != nil {
		ka = a.ID
	}
	if b != nil {
		kb = b.ID
	}
	if len(ka) != len(kb) {
		return cmp.Compare(len(ka), len(kb))
	}
	return cmp.Compare(ka, kb)
}
