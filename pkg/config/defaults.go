package config

import (
	"f1standings/pkg/chart"
	"f1standings/pkg/model"
	"f1standings/pkg/resources"
	"f1standings/pkg/standings"
)

const (
	defaultDataPath       = "data_f1_fix.xlsx"
	defaultIntervalMillis = 400
	defaultAddress        = ":8080"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Data: Data{
			Path:        defaultDataPath,
			RaceNameMax: standings.DefaultRaceNameLength,
		},
		Chart: chart.DefaultOptions(),
		Playback: Playback{
			IntervalMillis: defaultIntervalMillis,
		},
		Web: Web{
			Address:      defaultAddress,
			ResourcesDir: resources.ResourcesDir,
			CacheImages:  true,
		},
		Drivers: model.DefaultRoster(),
	}
}
