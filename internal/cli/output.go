package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pfrederiksen/fifa-stats/internal/fifa"
)

// teamRow is the JSON shape of one listed team.
type teamRow struct {
	Name   string `json:"name"`
	ID     string `json:"id"`
	Season string `json:"season"`
	URL    string `json:"url"`
}

func teamRows(season *fifa.Season) []teamRow {
	names := season.TeamNames()
	rows := make([]teamRow, 0, len(names))
	for _, name := range names {
		team, _ := season.Team(name)
		rows = append(rows, teamRow{
			Name:   team.String(),
			ID:     team.ID,
			Season: team.Season,
			URL:    team.URL(),
		})
	}
	return rows
}

// writeTeamsTable prints the season's teams in page order.
func writeTeamsTable(w io.Writer, season *fifa.Season) {
	rows := teamRows(season)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Team", "ID", "Roster"})
	for i, r := range rows {
		t.AppendRow(table.Row{i + 1, r.Name, r.ID, r.URL})
	}
	t.AppendFooter(table.Row{"", "Total", len(rows), ""})
	t.Render()
}

// writeTeamsJSON outputs the season's teams as a JSON array
func writeTeamsJSON(w io.Writer, season *fifa.Season) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(teamRows(season))
}

// progressBar is a single go-pretty tracker. A nil bar ignores every call so
// commands do not have to check whether --progress was given.
type progressBar struct {
	tracker *progress.Tracker
	done    chan struct{}
}

func (a *app) startProgress(message string, total int) *progressBar {
	if !a.opts.progress || total == 0 {
		return nil
	}

	pw := progress.NewWriter()
	pw.SetOutputWriter(a.errOut)
	pw.SetAutoStop(true)
	pw.SetTrackerLength(30)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Visibility.ETA = true
	pw.Style().Visibility.Value = true

	bar := &progressBar{
		tracker: &progress.Tracker{Message: message, Total: int64(total)},
		done:    make(chan struct{}),
	}
	pw.AppendTracker(bar.tracker)

	go func() {
		pw.Render()
		close(bar.done)
	}()
	return bar
}

func (b *progressBar) Increment() {
	if b == nil {
		return
	}
	b.tracker.Increment(1)
}

// Finish marks the tracker done and waits for the final render.
func (b *progressBar) Finish() {
	if b == nil {
		return
	}
	b.tracker.MarkAsDone()
	<-b.done
}
