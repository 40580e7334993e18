package fifa

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fifa-stats/internal/scraper"
)

// PlayerKey is the site-assigned player identifier. It is the identity of a
// Player: two players with the same key are the same person.
type PlayerKey string

// Player is a footballer whose career statistics are loaded on demand.
type Player struct {
	Name string
	ID   PlayerKey

	site *Site

	mu      sync.Mutex
	seasons map[string]*SeasonRecord
}

// NewPlayer creates a Player. Statistics are not loaded until requested.
func NewPlayer(site *Site, name string, id PlayerKey) *Player {
	return &Player{
		Name: name,
		ID:   id,
		site: site,
	}
}

// URL is the player's career page.
func (p *Player) URL() string {
	return p.site.CareerURL(p.ID)
}

// Statistics returns every season record of the player keyed by season code. A
// career page without a table yields an empty map. The page is fetched on the
// first call only; later calls return the same map. Callers must not modify it.
func (p *Player) Statistics(ctx context.Context) (map[string]*SeasonRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.seasons != nil {
		return p.seasons, nil
	}

	var seasons map[string]*SeasonRecord
	err := p.site.load(ctx, p.URL(), func(page scraper.Page) error {
		seasons = make(map[string]*SeasonRecord)
		for i, row := range scraper.DataRows(page) {
			record, err := p.record(row)
			if err != nil {
				return fmt.Errorf("career row %d: %w", i, err)
			}
			seasons[record.Season] = record
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading statistics of player %s (%s): %w", p.ID, p.Name, err)
	}

	p.seasons = seasons
	return seasons, nil
}

// SeasonRecord returns the record for one season code, or an error wrapping
// ErrSeasonNotFound when the player has no statistics for it.
func (p *Player) SeasonRecord(ctx context.Context, code string) (*SeasonRecord, error) {
	seasons, err := p.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := seasons[code]
	if !ok {
		return nil, fmt.Errorf("player %s season %s: %w", p.ID, code, ErrSeasonNotFound)
	}
	return record, nil
}

// record turns one career row into a SeasonRecord. Column 0 is the season,
// column 1 the team, every later titled column a statistic.
func (p *Player) record(row *goquery.Selection) (*SeasonRecord, error) {
	cells := row.ChildrenFiltered("td")
	if cells.Length() < 2 {
		return nil, fmt.Errorf("expected at least 2 columns, got %d", cells.Length())
	}

	season, err := SeasonCode(cells.Eq(0).Text())
	if err != nil {
		return nil, err
	}

	record := &SeasonRecord{
		Season: season,
		Player: p,
		Team:   p.team(cells.Eq(1), season),
	}

	var setErr error
	cells.Slice(2, cells.Length()).EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		title, ok := cell.Attr("title")
		if !ok {
			return true
		}
		text := strings.TrimSpace(cell.Text())
		if text == "" {
			return true
		}
		setErr = record.set(title, text, p.site.Columns)
		return setErr == nil
	})
	if setErr != nil {
		return nil, setErr
	}

	return record, nil
}

// team builds the Team of a career row. Some clubs have no team page; those
// get NoTeamID instead of failing the row.
func (p *Player) team(cell *goquery.Selection, season string) *Team {
	name, ok := cell.Attr("title")
	if !ok {
		name = cell.Text()
	}

	id := NoTeamID
	if href, ok := cell.Find("a[href]").First().Attr("href"); ok {
		if teamID, err := TeamID(href); err == nil {
			id = teamID
		}
	}

	return NewTeam(p.site, strings.TrimSpace(name), id, season, p.site.Week)
}

func (p *Player) String() string {
	return string(p.ID)
}

// PlayerSet holds players keyed by identifier, collapsing duplicates found
// through several teams or seasons. The first player added for a key is kept.
type PlayerSet map[PlayerKey]*Player

// Add inserts players that are not yet present.
func (s PlayerSet) Add(players ...*Player) {
	for _, p := range players {
		if !s.Has(p) {
			s[p.ID] = p
		}
	}
}

// AddAll inserts every player of a roster mapping.
func (s PlayerSet) AddAll(roster map[string]*Player) {
	for _, p := range roster {
		s.Add(p)
	}
}

// Union inserts every player of other.
func (s PlayerSet) Union(other PlayerSet) {
	for _, p := range other {
		s.Add(p)
	}
}

// Has reports whether a player with p's identifier is present.
func (s PlayerSet) Has(p *Player) bool {
	_, ok := s[p.ID]
	return ok
}

// Sorted returns the players ordered by identifier, numerically when possible.
func (s PlayerSet) Sorted() []*Player {
	players := make([]*Player, 0, len(s))
	for _, p := range s {
		players = append(players, p)
	}
	slices.SortFunc(players, func(a, b *Player) int {
		if len(a.ID) != len(b.ID) {
			return cmp.Compare(len(a.ID), len(b.ID))
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return players
}
