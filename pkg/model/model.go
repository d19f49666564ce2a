package model

import "golang.org/x/text/unicode/norm"

type Result struct {
	Driver      string  `json:"driver"`
	Race        string  `json:"race"`
	Round       int     `json:"round"`
	Standing    int     `json:"standing"`
	TotalPoints float64 `json:"totalPoints"`
}

type Results []Result

// Find returns the first row for the driver at the given race.
func (rs Results) Find(driver, race string) (Result, bool) {
	for _, r := range rs {
		if r.Driver == driver && r.Race == race {
			return r, true
		}
	}
	return Result{}, false
}

type Driver struct {
	Name  string `json:"name" toml:"name"`
	Color string `json:"color" toml:"color"`
	Image string `json:"image" toml:"image"`
}

// Roster is the ordered set of drivers shown in the chart. Order drives the
// series and legend order.
type Roster []Driver

func (r Roster) Names() []string {
	names := make([]string, 0, len(r))
	for _, d := range r {
		names = append(names, d.Name)
	}
	return names
}

// Get matches names in NFC form, so a decomposed accent in the data still
// finds the roster entry.
func (r Roster) Get(name string) (Driver, bool) {
	name = norm.NFC.String(name)
	for _, d := range r {
		if norm.NFC.String(d.Name) == name {
			return d, true
		}
	}
	return Driver{}, false
}

func DefaultRoster() Roster {
	return Roster{
		{Name: "Max Verstappen", Color: "#213448", Image: "https://a.espncdn.com/combiner/i?img=/i/headshots/rpm/players/full/4665.png"},
		{Name: "Lando Norris", Color: "#EB5B00", Image: "https://a.espncdn.com/combiner/i?img=/i/headshots/rpm/players/full/5579.png"},
		{Name: "Oscar Piastri", Color: "#EB5B00", Image: "https://a.espncdn.com/combiner/i?img=/i/headshots/rpm/players/full/5752.png"},
		{Name: "Lewis Hamilton", Color: "#819A91", Image: "https://a.espncdn.com/i/headshots/rpm/players/full/868.png"},
		{Name: "George Russell", Color: "#819A91", Image: "https://a.espncdn.com/combiner/i?img=/i/headshots/rpm/players/full/5503.png&w=350&h=254"},
		{Name: "Carlos Sainz", Color: "#DC3C22", Image: "https://a.espncdn.com/combiner/i?img=/i/headshots/rpm/players/full/4686.png"},
		{Name: "Charles Leclerc", Color: "#DC3C22", Image: "https://a.espncdn.com/combiner/i?img=/i/headshots/rpm/players/full/5498.png"},
	}
}
