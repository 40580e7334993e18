package fifa

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fifa-stats/internal/logger"
	"github.com/pfrederiksen/fifa-stats/internal/scraper"
)

// Season is the root of the graph: the teams of one league season.
type Season struct {
	Code   string
	Week   string
	League string

	site  *Site
	teams map[string]*Team
	names []string
}

// NewSeason loads the team listing for code. Teams are discovered once here and
// never refreshed.
func NewSeason(ctx context.Context, site *Site, code string) (*Season, error) {
	code, err := ParseSeasonCode(code)
	if err != nil {
		return nil, err
	}

	s := &Season{
		Code:   code,
		Week:   site.Week,
		League: site.League,
		site:   site,
	}

	err = site.load(ctx, site.TeamsURL(code), func(page scraper.Page) error {
		teams := make(map[string]*Team)
		var names []string
		for i, row := range scraper.DataRows(page) {
			name, href, err := linkCell(row)
			if err != nil {
				return fmt.Errorf("team row %d: %w", i, err)
			}
			id, err := TeamID(href)
			if err != nil {
				return fmt.Errorf("team row %d: %w", i, err)
			}
			if _, seen := teams[name]; !seen {
				names = append(names, name)
			}
			teams[name] = NewTeam(site, name, id, code, site.Week)
		}
		s.teams, s.names = teams, names
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading season %s teams: %w", code, err)
	}

	site.logger().Info("Season loaded", logger.Fields{
		"season": code,
		"league": site.League,
		"teams":  len(s.teams),
	})
	return s, nil
}

// Teams returns the name-keyed team mapping. Callers must not modify it.
func (s *Season) Teams() map[string]*Team {
	return s.teams
}

// TeamNames lists team names in page order.
func (s *Season) TeamNames() []string {
	return append([]string(nil), s.names...)
}

// Team looks up a team by name.
func (s *Season) Team(name string) (*Team, bool) {
	t, ok := s.teams[name]
	return t, ok
}

// URL is the season overview page.
func (s *Season) URL() string {
	return s.site.OverviewURL(s.Code)
}

// Players loads every roster of the season and collapses players that appear on
// more than one team.
func (s *Season) Players(ctx context.Context) (PlayerSet, error) {
	set := make(PlayerSet)
	for _, name := range s.names {
		players, err := s.teams[name].Players(ctx)
		if err != nil {
			return nil, err
		}
		set.AddAll(players)
	}
	return set, nil
}

// linkCell reads the display name and link target of the name column of a
// listing row.
func linkCell(row *goquery.Selection) (name, href string, err error) {
	cell := row.ChildrenFiltered("td").Eq(nameColumn)
	if cell.Length() == 0 {
		return "", "", fmt.Errorf("row has no column %d", nameColumn)
	}

	link := cell.Find("a[href]").First()
	if link.Length() == 0 {
		return "", "", fmt.Errorf("column %d has no link: %w", nameColumn, ErrNoIdentifier)
	}

	href, _ = link.Attr("href")
	name = strings.TrimSpace(link.Text())
	if name == "" {
		return "", "", fmt.Errorf("link %q has no name", href)
	}
	return name, href, nil
}
