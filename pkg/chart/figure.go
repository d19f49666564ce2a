package chart

import (
	"f1standings/pkg/helper"
	"f1standings/pkg/model"
	"f1standings/pkg/standings"
)

const (
	AnchorLeft   = "left"
	AnchorMiddle = "middle"
)

type Options struct {
	Title          string `json:"title" toml:"title"`
	Width          int    `json:"width" toml:"width"`
	Height         int    `json:"height" toml:"height"`
	MarginLeft     int    `json:"marginLeft" toml:"margin_left"`
	MarginRight    int    `json:"marginRight" toml:"margin_right"`
	MarginTop      int    `json:"marginTop" toml:"margin_top"`
	MarginBottom   int    `json:"marginBottom" toml:"margin_bottom"`
	FontSize       int    `json:"fontSize" toml:"font_size"`
	LegendFontSize int    `json:"legendFontSize" toml:"legend_font_size"`
	TickAngle      int    `json:"tickAngle" toml:"tick_angle"`
}

func DefaultOptions() Options {
	return Options{
		Title:          "🏁 F1 Driver Standings Progression",
		Width:          1800,
		Height:         700,
		MarginLeft:     60,
		MarginRight:    300,
		MarginTop:      80,
		MarginBottom:   80,
		FontSize:       16,
		LegendFontSize: 14,
		TickAngle:      45,
	}
}

type Margin struct {
	Left   int `json:"l"`
	Right  int `json:"r"`
	Top    int `json:"t"`
	Bottom int `json:"b"`
}

type Axis struct {
	Title      string   `json:"title"`
	Categories []string `json:"categories,omitempty"`
	TickAngle  int      `json:"tickAngle,omitempty"`
	Reversed   bool     `json:"reversed,omitempty"`
}

type Point struct {
	Race        string  `json:"race"`
	Index       int     `json:"index"`
	Standing    int     `json:"standing"`
	TotalPoints float64 `json:"totalPoints"`
}

type Series struct {
	Name    string  `json:"name"`
	Color   string  `json:"color"`
	Markers bool    `json:"markers"`
	Points  []Point `json:"points"`
}

// Segments splits the points in runs of consecutive races. A line is drawn
// per run so a missing race leaves a gap.
func (s Series) Segments() [][]Point {
	var segments [][]Point
	var current []Point
	for i, p := range s.Points {
		if i > 0 && p.Index != s.Points[i-1].Index+1 {
			segments = append(segments, current)
			current = nil
		}
		current = append(current, p)
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}
	return segments
}

type Annotation struct {
	Race        string `json:"race"`
	Index       int    `json:"index"`
	Standing    int    `json:"standing"`
	Text        string `json:"text"`
	ShowArrow   bool   `json:"showArrow"`
	FontSize    int    `json:"fontSize"`
	FontColor   string `json:"fontColor"`
	BgColor     string `json:"bgColor"`
	BorderColor string `json:"borderColor"`
	BorderWidth int    `json:"borderWidth"`
	BorderPad   int    `json:"borderPad"`
	XAnchor     string `json:"xAnchor"`
	YAnchor     string `json:"yAnchor"`
}

type Figure struct {
	Title          string       `json:"title"`
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	Margin         Margin       `json:"margin"`
	FontSize       int          `json:"fontSize"`
	LegendFontSize int          `json:"legendFontSize"`
	Round          int          `json:"round"`
	XAxis          Axis         `json:"xAxis"`
	YAxis          Axis         `json:"yAxis"`
	Series         []Series     `json:"series"`
	Annotations    []Annotation `json:"annotations"`
}

// Draw builds the figure showing the first uptoIdx races of the season.
// The x axis always carries the whole season so spacing does not change as
// races are revealed.
func Draw(season *standings.Season, roster model.Roster, opts Options, uptoIdx int) Figure {
	uptoIdx = season.Clamp(uptoIdx)
	races := season.Races()
	current := season.Prefix(uptoIdx)
	rows := season.UpTo(uptoIdx)

	fig := Figure{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Margin: Margin{
			Left:   opts.MarginLeft,
			Right:  opts.MarginRight,
			Top:    opts.MarginTop,
			Bottom: opts.MarginBottom,
		},
		FontSize:       opts.FontSize,
		LegendFontSize: opts.LegendFontSize,
		Round:          uptoIdx,
		XAxis: Axis{
			Title:      "Race",
			Categories: races,
			TickAngle:  opts.TickAngle,
		},
		YAxis: Axis{
			Title:    "Standing (1 = Best)",
			Reversed: true,
		},
		Series:      []Series{},
		Annotations: []Annotation{},
	}

	for _, driver := range roster {
		points := make([]Point, 0, len(current))
		for _, race := range current {
			// One point per category. When rounds share a display name the
			// earliest round is plotted and later ones are dropped.
			r, found := rows.Find(driver.Name, race)
			if !found {
				continue
			}
			idx, _ := season.RaceIndex(race)
			points = append(points, Point{
				Race:        race,
				Index:       idx,
				Standing:    r.Standing,
				TotalPoints: r.TotalPoints,
			})
		}
		if len(points) == 0 {
			continue
		}
		fig.Series = append(fig.Series, Series{
			Name:    driver.Name,
			Color:   driver.Color,
			Markers: true,
			Points:  points,
		})
	}

	if uptoIdx > 0 {
		lastRace := current[len(current)-1]
		lastIdx, _ := season.RaceIndex(lastRace)
		for _, driver := range roster {
			r, found := season.Find(driver.Name, lastRace)
			if !found {
				continue
			}
			fig.Annotations = append(fig.Annotations, Annotation{
				Race:        lastRace,
				Index:       lastIdx,
				Standing:    r.Standing,
				Text:        helper.FormatPoints(r.TotalPoints),
				ShowArrow:   false,
				FontSize:    14,
				FontColor:   "black",
				BgColor:     "white",
				BorderColor: "black",
				BorderWidth: 1,
				BorderPad:   4,
				XAnchor:     AnchorLeft,
				YAnchor:     AnchorMiddle,
			})
		}
	}

	return fig
}

// MaxStanding is the worst rank drawn, used to size the y axis.
func (f Figure) MaxStanding() int {
	max := 1
	for _, s := range f.Series {
		for _, p := range s.Points {
			if p.Standing > max {
				max = p.Standing
			}
		}
	}
	return max
}
