package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/fifa-stats/internal/fifa"
	"github.com/pfrederiksen/fifa-stats/internal/logger"
	"github.com/spf13/cobra"
)

func newSeasonCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "season <code>",
		Short: "Export one season's record of every player in the league",
		Long: `Walks every team of the season, every player on those rosters, and
writes each player's record for that season to <year>.<format>. Players without
a record for the season are skipped.

The season code is the last two digits of the season's ending year (23 for
2022/2023); a four-digit year is accepted as well.`,
		Example: "  fifa-stats season 23 --format json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := fifa.ParseSeasonCode(args[0])
			if err != nil {
				return err
			}
			records, err := a.seasonRecords(cmd.Context(), code)
			if err != nil {
				return a.fail("Season scrape failed", logger.Fields{"season": code}, err)
			}
			return a.export(fifa.SeasonYear(code), records)
		},
	}
}

func newPlayersCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "players",
		Short: "Export the full careers of every player seen across a season range",
		Long: `Collects the players of every team in each season of the range,
deduplicates them by identifier, and writes every season record of their
careers to players.<format>, ordered by season, team and player.`,
		Example: "  fifa-stats players --from 07 --to 23",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := fifa.SeasonRange(from, to)
			if err != nil {
				return err
			}
			records, err := a.careerRecords(cmd.Context(), codes)
			if err != nil {
				return a.fail("Career scrape failed", logger.Fields{"from": from, "to": to}, err)
			}
			return a.export("players", records)
		},
	}

	cmd.Flags().StringVar(&from, "from", "07", "First season code of the range")
	cmd.Flags().StringVar(&to, "to", "23", "Last season code of the range")

	return cmd
}

func newTeamsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "teams <code>",
		Short:   "List the teams of a season",
		Example: "  fifa-stats teams 23",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := fifa.ParseSeasonCode(args[0])
			if err != nil {
				return err
			}
			season, err := fifa.NewSeason(cmd.Context(), a.site, code)
			if err != nil {
				return a.fail("Team listing failed", logger.Fields{"season": code}, err)
			}
			if asJSON {
				return writeTeamsJSON(a.out, season)
			}
			writeTeamsTable(a.out, season)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}

// seasonRecords loads every player of a season and keeps their record for it.
func (a *app) seasonRecords(ctx context.Context, code string) ([]*fifa.SeasonRecord, error) {
	season, err := fifa.NewSeason(ctx, a.site, code)
	if err != nil {
		return nil, err
	}

	players, err := season.Players(ctx)
	if err != nil {
		return nil, err
	}

	a.metrics.SetGauge("players.unique", float64(len(players)))

	bar := a.startProgress(fmt.Sprintf("Season %s", fifa.SeasonYear(code)), len(players))
	defer bar.Finish()

	var records []*fifa.SeasonRecord
	skipped := 0
	for _, p := range players.Sorted() {
		record, err := p.SeasonRecord(ctx, code)
		bar.Increment()
		if errors.Is(err, fifa.ErrSeasonNotFound) {
			skipped++
			a.log.Debug("No record for season", logger.Fields{
				"player": p.String(),
				"name":   p.Name,
				"season": code,
			})
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	sortRecords(records)

	a.log.Info("Season collected", logger.Fields{
		"season":  code,
		"teams":   len(season.Teams()),
		"players": len(players),
		"records": len(records),
		"skipped": skipped,
	})
	return records, nil
}

// careerRecords gathers the distinct players of several seasons and every
// record of their careers.
func (a *app) careerRecords(ctx context.Context, codes []string) ([]*fifa.SeasonRecord, error) {
	all := make(fifa.PlayerSet)
	for _, code := range codes {
		season, err := fifa.NewSeason(ctx, a.site, code)
		if err != nil {
			return nil, err
		}
		players, err := season.Players(ctx)
		if err != nil {
			return nil, err
		}
		all.Union(players)

		a.log.Debug("Season players merged", logger.Fields{
			"season":  code,
			"players": len(players),
			"total":   len(all),
		})
	}

	a.metrics.SetGauge("players.unique", float64(len(all)))

	bar := a.startProgress("Careers", len(all))
	defer bar.Finish()

	var records []*fifa.SeasonRecord
	for _, p := range all.Sorted() {
		stats, err := p.Statistics(ctx)
		bar.Increment()
		if err != nil {
			return nil, err
		}
		for _, r := range stats {
			records = append(records, r)
		}
	}

	sortRecords(records)

	a.log.Info("Careers collected", logger.Fields{
		"seasons": len(codes),
		"players": len(all),
		"records": len(records),
	})
	return records, nil
}
