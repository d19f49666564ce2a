package chart

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"f1standings/pkg/model"
	"f1standings/pkg/standings"
)

func exampleSeason() (*standings.Season, model.Roster) {
	roster := model.Roster{
		{Name: "Max Verstappen", Color: "#213448"},
		{Name: "Lando Norris", Color: "#EB5B00"},
		{Name: "Oscar Piastri", Color: "#EB5B00"},
	}
	results := model.Results{
		{Driver: "Max Verstappen", Race: "Bahrain Grand Prix", Round: 1, Standing: 1, TotalPoints: 26},
		{Driver: "Max Verstappen", Race: "Saudi Arabian Grand Prix", Round: 2, Standing: 1, TotalPoints: 51},
		{Driver: "Max Verstappen", Race: "Australian Grand Prix", Round: 3, Standing: 1, TotalPoints: 51},
		{Driver: "Lando Norris", Race: "Bahrain Grand Prix", Round: 1, Standing: 6, TotalPoints: 12},
		{Driver: "Lando Norris", Race: "Australian Grand Prix", Round: 3, Standing: 4, TotalPoints: 27.5},
		{Driver: "Oscar Piastri", Race: "Bahrain Grand Prix", Round: 1, Standing: 5, TotalPoints: 12},
		{Driver: "Oscar Piastri", Race: "Saudi Arabian Grand Prix", Round: 2, Standing: 5, TotalPoints: 16},
		{Driver: "Oscar Piastri", Race: "Australian Grand Prix", Round: 3, Standing: 3, TotalPoints: 28},
	}
	return standings.Prepare(results, roster, standings.DefaultRaceNameLength), roster
}

func TestDrawKeepsFullSeasonCategories(t *testing.T) {
	season, roster := exampleSeason()
	all := season.Races()
	for upto := 1; upto <= season.Len(); upto++ {
		fig := Draw(season, roster, DefaultOptions(), upto)
		if !reflect.DeepEqual(fig.XAxis.Categories, all) {
			t.Fatalf("upto %d: categories %q, want %q", upto, fig.XAxis.Categories, all)
		}
		for _, s := range fig.Series {
			for _, p := range s.Points {
				if p.Index >= upto {
					t.Fatalf("upto %d: %s has a point at index %d", upto, s.Name, p.Index)
				}
			}
		}
		if !fig.YAxis.Reversed {
			t.Fatalf("upto %d: y axis not reversed", upto)
		}
	}
}

func TestDrawAnnotatesLastRaceOnly(t *testing.T) {
	season, roster := exampleSeason()

	fig := Draw(season, roster, DefaultOptions(), 2)
	got := map[string]string{}
	for _, a := range fig.Annotations {
		if a.Race != "Saudi Arab…" {
			t.Fatalf("annotation on %q, want last race", a.Race)
		}
		if a.ShowArrow {
			t.Fatal("annotations must not show arrows")
		}
		got[a.Text] = a.Race
	}
	if len(fig.Annotations) != 2 {
		t.Fatalf("expected 2 annotations (Norris absent), got %d", len(fig.Annotations))
	}
	if _, ok := got["51 pts"]; !ok {
		t.Fatalf("missing Verstappen total: %v", got)
	}
	if _, ok := got["16 pts"]; !ok {
		t.Fatalf("missing Piastri total: %v", got)
	}

	fig = Draw(season, roster, DefaultOptions(), 3)
	for _, a := range fig.Annotations {
		if a.Standing == 4 && a.Text != "27 pts" {
			t.Fatalf("expected integer formatted points, got %q", a.Text)
		}
	}
}

func TestDrawExample(t *testing.T) {
	roster := model.Roster{{Name: "Max Verstappen", Color: "#213448"}}
	results := model.Results{
		{Driver: "Max Verstappen", Race: "Bahrain Grand Prix", Round: 1, Standing: 1, TotalPoints: 26},
		{Driver: "Max Verstappen", Race: "Saudi Arabia Grand Prix", Round: 2, Standing: 1, TotalPoints: 51},
	}
	season := standings.Prepare(results, roster, standings.DefaultRaceNameLength)

	fig := Draw(season, roster, DefaultOptions(), 1)
	if len(fig.Series) != 1 || len(fig.Series[0].Points) != 1 {
		t.Fatalf("expected one point, got %+v", fig.Series)
	}
	if fig.Series[0].Points[0].Standing != 1 {
		t.Fatalf("unexpected standing %d", fig.Series[0].Points[0].Standing)
	}
	if len(fig.Annotations) != 1 || fig.Annotations[0].Text != "26 pts" {
		t.Fatalf("unexpected annotations %+v", fig.Annotations)
	}

	fig = Draw(season, roster, DefaultOptions(), 2)
	if len(fig.Series[0].Points) != 2 {
		t.Fatalf("expected two points, got %d", len(fig.Series[0].Points))
	}
	if len(fig.Annotations) != 1 || fig.Annotations[0].Text != "51 pts" || fig.Annotations[0].Index != 1 {
		t.Fatalf("unexpected annotations %+v", fig.Annotations)
	}
}

func TestDrawSharedDisplayNamePlotsEarliestRound(t *testing.T) {
	roster := model.Roster{{Name: "Max Verstappen", Color: "#213448"}}
	results := model.Results{
		{Driver: "Max Verstappen", Race: "Grand Prix of Italy", Round: 2, Standing: 2, TotalPoints: 40},
		{Driver: "Max Verstappen", Race: "Grand Prix of Austria", Round: 1, Standing: 1, TotalPoints: 25},
	}
	season := standings.Prepare(results, roster, standings.DefaultRaceNameLength)

	fig := Draw(season, roster, DefaultOptions(), 1)
	if len(fig.Series) != 1 || len(fig.Series[0].Points) != 1 {
		t.Fatalf("expected one point, got %+v", fig.Series)
	}
	if p := fig.Series[0].Points[0]; p.Standing != 1 || p.TotalPoints != 25 {
		t.Fatalf("expected the earliest round, got %+v", p)
	}
}

func TestDrawClampsAndHandlesZero(t *testing.T) {
	season, roster := exampleSeason()
	fig := Draw(season, roster, DefaultOptions(), 0)
	if len(fig.Series) != 0 || len(fig.Annotations) != 0 {
		t.Fatalf("expected empty figure, got %+v", fig)
	}
	fig = Draw(season, roster, DefaultOptions(), 42)
	if fig.Round != season.Len() {
		t.Fatalf("expected round clamped to %d, got %d", season.Len(), fig.Round)
	}
}

func TestSegmentsBreakOnGaps(t *testing.T) {
	season, roster := exampleSeason()
	fig := Draw(season, roster, DefaultOptions(), 3)
	for _, s := range fig.Series {
		segments := s.Segments()
		switch s.Name {
		case "Lando Norris":
			if len(segments) != 2 {
				t.Fatalf("expected gap to split Norris line, got %d segments", len(segments))
			}
		default:
			if len(segments) != 1 {
				t.Fatalf("%s: expected 1 segment, got %d", s.Name, len(segments))
			}
		}
	}
}

func TestDrawLayout(t *testing.T) {
	season, roster := exampleSeason()
	fig := Draw(season, roster, DefaultOptions(), 1)
	if fig.Width != 1800 || fig.Height != 700 {
		t.Fatalf("unexpected size %dx%d", fig.Width, fig.Height)
	}
	if fig.Margin != (Margin{Left: 60, Right: 300, Top: 80, Bottom: 80}) {
		t.Fatalf("unexpected margin %+v", fig.Margin)
	}
	if fig.XAxis.TickAngle != 45 || fig.FontSize != 16 || fig.LegendFontSize != 14 {
		t.Fatalf("unexpected fonts/ticks %+v", fig)
	}
	if fig.YAxis.Title != "Standing (1 = Best)" {
		t.Fatalf("unexpected y title %q", fig.YAxis.Title)
	}
}

func TestRenderSVGAndPNG(t *testing.T) {
	season, roster := exampleSeason()
	fig := Draw(season, roster, DefaultOptions(), 3)

	var svg bytes.Buffer
	if err := Render(&svg, fig, FormatSVG); err != nil {
		t.Fatalf("render svg: %v", err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Fatal("expected svg document")
	}

	var png bytes.Buffer
	if err := Render(&png, fig, FormatPNG); err != nil {
		t.Fatalf("render png: %v", err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Fatal("expected png signature")
	}
}

func TestRenderRejectsBadColor(t *testing.T) {
	season, _ := exampleSeason()
	roster := model.Roster{{Name: "Max Verstappen", Color: "orange"}}
	fig := Draw(season, roster, DefaultOptions(), 1)
	if err := Render(&bytes.Buffer{}, fig, FormatSVG); err == nil {
		t.Fatal("expected error for unparsable color")
	}
}
