package loader

import (
	"context"
	"log"

	"f1standings/pkg/config"
	"f1standings/pkg/model"
	"f1standings/pkg/standings"
	"f1standings/pkg/store"

	"github.com/pkg/errors"
)

// Load reads the raw results from the configured source: the SQLite
// database when set, the spreadsheet otherwise.
func Load(ctx context.Context, data config.Data) (model.Results, error) {
	if data.Database != "" {
		s, err := store.Open(data.Database)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		results, err := s.ListResults(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "load results from %s", data.Database)
		}
		log.Printf("loaded %d results from %s\n", len(results), data.Database)
		return results, nil
	}

	results, err := LoadXLSX(data.Path, data.Sheet)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d results from %s\n", len(results), data.Path)
	return results, nil
}

// LoadSeason loads the results and prepares the season for roster.
func LoadSeason(ctx context.Context, cfg *config.Config) (*standings.Season, error) {
	results, err := Load(ctx, cfg.Data)
	if err != nil {
		return nil, err
	}
	season := standings.Prepare(results, cfg.Drivers, cfg.Data.RaceNameMax)
	if season.Len() == 0 {
		return nil, errors.New("no results left for the configured drivers")
	}
	return season, nil
}
