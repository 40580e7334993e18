package fifa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/fifa-stats/internal/logger"
	"github.com/pfrederiksen/fifa-stats/internal/scraper"
)

const (
	// DefaultLeague is the English Premier League.
	DefaultLeague = "13"
	// DefaultWeek is the first rating update of a season.
	DefaultWeek = "01"
)

// Column holding the name-and-link cell on team and roster listings.
const nameColumn = 1

// Fetcher loads a page and reduces it to its first table.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (scraper.Page, error)
}

// Site holds what every entity needs to load its page: where the site lives,
// which league and week to query, and how to survive rate limiting.
type Site struct {
	BaseURL string
	League  string
	Week    string
	Fetcher Fetcher
	Retry   scraper.RetryPolicy
	Columns ColumnPolicy
	Log     *logger.Logger
}

// NewSite returns a Site for the default league and week.
func NewSite(f Fetcher) *Site {
	return &Site{
		BaseURL: scraper.BaseURL,
		League:  DefaultLeague,
		Week:    DefaultWeek,
		Fetcher: f,
		Log:     logger.Default(),
	}
}

// seasonQuery builds the r= parameter, e.g. season 23 week 01 -> 230001.
func seasonQuery(season, week string) string {
	return season + "00" + week
}

func (s *Site) base() string {
	return strings.TrimRight(s.BaseURL, "/")
}

// TeamsURL is the league's team listing for a season.
func (s *Site) TeamsURL(season string) string {
	return fmt.Sprintf("%s/teams?type=all&lg=%s&r=%s&set=true", s.base(), s.League, seasonQuery(season, s.Week))
}

// RosterURL is a team's player listing for a season and week.
func (s *Site) RosterURL(teamID, season, week string) string {
	return fmt.Sprintf("%s/players?tm=%s&r=%s&set=true", s.base(), teamID, seasonQuery(season, week))
}

// CareerURL is a player's live statistics across all seasons.
func (s *Site) CareerURL(playerID PlayerKey) string {
	return fmt.Sprintf("%s/player/%s/live&set=true", s.base(), playerID)
}

// OverviewURL is the site's landing page pinned to a season.
func (s *Site) OverviewURL(season string) string {
	return fmt.Sprintf("%s/?r=%s&set=true", s.base(), seasonQuery(season, s.Week))
}

func (s *Site) logger() *logger.Logger {
	if s.Log == nil {
		return logger.Default()
	}
	return s.Log
}

// load fetches url and runs extract on it, retrying the pair while the site
// answers 429. extract must build its result from scratch on every call.
func (s *Site) load(ctx context.Context, url string, extract func(scraper.Page) error) error {
	policy := s.Retry
	if policy.Notify == nil {
		policy.Notify = func(err error, wait time.Duration) {
			s.logger().Warn("Rate limited, waiting", logger.Fields{
				"url":  url,
				"wait": wait.String(),
			})
		}
	}

	return policy.Do(ctx, func() error {
		page, err := s.Fetcher.FetchPage(ctx, url)
		if err != nil {
			return err
		}
		return extract(page)
	})
}
