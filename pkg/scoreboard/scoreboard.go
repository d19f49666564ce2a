package scoreboard

import (
	"fmt"
	"io"
	"sort"

	"f1standings/pkg/helper"
	"f1standings/pkg/model"
	"f1standings/pkg/standings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	headerPosition = "Pos"
	headerCode     = "Code"
	headerDriver   = "Driver"
	headerPoints   = "Points"
)

type Entry struct {
	Standing    int
	Code        string
	Driver      string
	TotalPoints float64
}

// Entries returns the standings at the last race of the first upto races,
// best position first. Drivers without a row at that race are left out.
func Entries(season *standings.Season, roster model.Roster, upto int) []Entry {
	prefix := season.Prefix(upto)
	if len(prefix) == 0 {
		return nil
	}
	last := prefix[len(prefix)-1]

	entries := []Entry{}
	for _, d := range roster {
		r, ok := season.Find(d.Name, last)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Standing:    r.Standing,
			Code:        helper.GetDriverCodeName(d.Name),
			Driver:      d.Name,
			TotalPoints: r.TotalPoints,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Standing < entries[j].Standing
	})
	return entries
}

// Render writes entries as a table. An empty title omits the title row.
func Render(w io.Writer, title string, entries []Entry, style table.Style) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(style)
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(table.Row{headerPosition, headerCode, headerDriver, headerPoints})
	for _, e := range entries {
		t.AppendRow(table.Row{
			fmt.Sprintf("P%d", e.Standing),
			e.Code,
			e.Driver,
			helper.FormatPoints(e.TotalPoints),
		})
	}
	t.Render()
}

// Compact writes the two column variant used where width is scarce.
func Compact(w io.Writer, entries []Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendSeparator()
	t.AppendHeader(table.Row{headerPosition, headerCode, headerPoints})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Standing, e.Code, int(e.TotalPoints)})
	}
	t.Render()
}
