package standings

import (
	"sort"

	"f1standings/pkg/helper"
	"f1standings/pkg/model"
)

const DefaultRaceNameLength = 10

// Season is the filtered results table plus the race order derived from it.
// It is built once and then only read.
type Season struct {
	results model.Results
	races   []string
	index   map[string]int
}

// Prepare keeps the rows of roster drivers, truncates race names to
// maxRaceName runes and orders races by round. When two rounds end up with
// the same display name the first one wins.
func Prepare(results model.Results, roster model.Roster, maxRaceName int) *Season {
	filtered := make(model.Results, 0, len(results))
	for _, r := range results {
		d, ok := roster.Get(r.Driver)
		if !ok {
			continue
		}
		r.Driver = d.Name
		r.Race = helper.TruncateRaceName(r.Race, maxRaceName)
		filtered = append(filtered, r)
	}

	// Rows stay in round order so lookups find the earliest round first.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Round < filtered[j].Round
	})

	s := &Season{
		results: filtered,
		index:   map[string]int{},
	}
	for _, r := range filtered {
		if _, seen := s.index[r.Race]; seen {
			continue
		}
		s.index[r.Race] = len(s.races)
		s.races = append(s.races, r.Race)
	}
	return s
}

func (s *Season) Len() int {
	return len(s.races)
}

// Races returns the full season order.
func (s *Season) Races() []string {
	races := make([]string, len(s.races))
	copy(races, s.races)
	return races
}

// Prefix returns the first n races, clamped to the season length.
func (s *Season) Prefix(n int) []string {
	n = s.Clamp(n)
	races := make([]string, n)
	copy(races, s.races[:n])
	return races
}

func (s *Season) Clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > len(s.races) {
		return len(s.races)
	}
	return n
}

// RaceIndex is the zero based position of race in the season order.
func (s *Season) RaceIndex(race string) (int, bool) {
	idx, ok := s.index[race]
	return idx, ok
}

func (s *Season) Results() model.Results {
	rs := make(model.Results, len(s.results))
	copy(rs, s.results)
	return rs
}

// UpTo returns the rows whose race belongs to the first n races.
func (s *Season) UpTo(n int) model.Results {
	n = s.Clamp(n)
	rows := model.Results{}
	for _, r := range s.results {
		if idx, ok := s.index[r.Race]; ok && idx < n {
			rows = append(rows, r)
		}
	}
	return rows
}

func (s *Season) Find(driver, race string) (model.Result, bool) {
	return s.results.Find(driver, race)
}
