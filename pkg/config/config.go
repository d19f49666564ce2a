package config

import (
	_ "embed"
	"os"
	"strings"
	"time"

	"f1standings/pkg/chart"
	"f1standings/pkg/model"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	DefaultPath = "./f1standings.toml"

	EnvWebserverAddress = "WEBSERVER_ADDRESS"
	EnvTelegramToken    = "TELEGRAM_TOKEN"
	EnvData             = "F1STANDINGS_DATA"
)

type Data struct {
	Path        string `toml:"path"`
	Sheet       string `toml:"sheet"`
	Database    string `toml:"database"`
	RaceNameMax int    `toml:"race_name_max"`
}

type Playback struct {
	IntervalMillis int `toml:"interval_ms"`
}

func (p Playback) Interval() time.Duration {
	return time.Duration(p.IntervalMillis) * time.Millisecond
}

type Web struct {
	Address      string `toml:"address"`
	ResourcesDir string `toml:"resources_dir"`
	CacheImages  bool   `toml:"cache_images"`
}

type Telegram struct {
	Token string `toml:"token"`
	Debug bool   `toml:"debug"`
}

type Config struct {
	Data     Data          `toml:"data"`
	Chart    chart.Options `toml:"chart"`
	Playback Playback      `toml:"playback"`
	Web      Web           `toml:"web"`
	Telegram Telegram      `toml:"telegram"`
	Drivers  model.Roster  `toml:"drivers"`
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error; the second return value tells whether it existed.
func Load(path string) (*Config, bool, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	exists := false
	file, err := os.Open(path)
	switch {
	case err == nil:
		exists = true
		defer file.Close()
		// a listed roster replaces the default one instead of merging into it
		cfg.Drivers = nil
		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, true, errors.Wrapf(err, "parse config %s", path)
		}
	case os.IsNotExist(err):
	default:
		return nil, false, errors.Wrapf(err, "open config %s", path)
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, exists, err
	}
	return &cfg, exists, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvWebserverAddress); v != "" {
		c.Web.Address = v
	}
	if v := os.Getenv(EnvTelegramToken); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv(EnvData); v != "" {
		c.Data.Path = v
	}
}

func (c *Config) normalize() {
	c.Data.Path = strings.TrimSpace(c.Data.Path)
	c.Data.Sheet = strings.TrimSpace(c.Data.Sheet)
	c.Data.Database = strings.TrimSpace(c.Data.Database)
	c.Web.Address = strings.TrimSpace(c.Web.Address)
	c.Telegram.Token = strings.TrimSpace(c.Telegram.Token)
	if len(c.Drivers) == 0 {
		c.Drivers = model.DefaultRoster()
	}
}

func (c *Config) Validate() error {
	if c.Data.Path == "" && c.Data.Database == "" {
		return errors.New("data.path or data.database must be set")
	}
	if c.Data.RaceNameMax <= 0 {
		return errors.Errorf("data.race_name_max must be positive, got %d", c.Data.RaceNameMax)
	}
	if c.Playback.IntervalMillis <= 0 {
		return errors.Errorf("playback.interval_ms must be positive, got %d", c.Playback.IntervalMillis)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return errors.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if c.Chart.MarginLeft+c.Chart.MarginRight >= c.Chart.Width ||
		c.Chart.MarginTop+c.Chart.MarginBottom >= c.Chart.Height {
		return errors.New("chart margins leave no room for the plot")
	}
	if c.Web.Address == "" {
		return errors.New("web.address must be set")
	}
	seen := map[string]bool{}
	for i, d := range c.Drivers {
		if strings.TrimSpace(d.Name) == "" {
			return errors.Errorf("drivers[%d]: name is empty", i)
		}
		if seen[d.Name] {
			return errors.Errorf("drivers[%d]: duplicated driver %q", i, d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// WriteSample writes the commented sample configuration to path. It refuses
// to overwrite an existing file.
func WriteSample(path string) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("config %s already exists", path)
	}
	return errors.Wrap(os.WriteFile(path, []byte(sampleConfig), 0o644), "write sample config")
}
