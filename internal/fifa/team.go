package fifa

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pfrederiksen/fifa-stats/internal/logger"
	"github.com/pfrederiksen/fifa-stats/internal/scraper"
)

// Team is a club as listed for one season and week.
type Team struct {
	Name   string
	ID     string
	Season string
	Week   string

	site *Site

	mu      sync.Mutex
	players map[string]*Player
}

// NewTeam creates a Team. Its roster is not loaded until Players is called.
func NewTeam(site *Site, name, id, season, week string) *Team {
	return &Team{
		Name:   name,
		ID:     id,
		Season: season,
		Week:   week,
		site:   site,
	}
}

// HasID reports whether the team's link could be resolved.
func (t *Team) HasID() bool {
	return t.ID != "" && t.ID != NoTeamID
}

// URL is the team's roster page for its season and week.
func (t *Team) URL() string {
	return t.site.RosterURL(t.ID, t.Season, t.Week)
}

// Players returns the roster keyed by player name. The roster is fetched on the
// first call only; later calls return the same map. Callers must not modify it.
func (t *Team) Players(ctx context.Context) (map[string]*Player, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.players != nil {
		return t.players, nil
	}
	if !t.HasID() {
		return nil, fmt.Errorf("team %q has no roster: %w", t.String(), ErrNoIdentifier)
	}

	var players map[string]*Player
	err := t.site.load(ctx, t.URL(), func(page scraper.Page) error {
		players = make(map[string]*Player)
		for i, row := range scraper.DataRows(page) {
			name, href, err := linkCell(row)
			if err != nil {
				return fmt.Errorf("player row %d: %w", i, err)
			}
			id, err := PlayerID(href)
			if err != nil {
				return fmt.Errorf("player row %d: %w", i, err)
			}
			players[name] = NewPlayer(t.site, name, PlayerKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading roster of %s: %w", t.String(), err)
	}

	t.site.logger().Debug("Roster loaded", logger.Fields{
		"team":    t.String(),
		"season":  t.Season,
		"players": len(players),
	})
	t.players = players
	return players, nil
}

func (t *Team) String() string {
	return strings.TrimSpace(t.Name)
}
