package main

import (
	"context"
	"strings"
	"sync"

	"f1standings/pkg/config"
	"f1standings/pkg/loader"
	"f1standings/pkg/standings"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	seasonOnce sync.Once
	season     *standings.Season
	seasonErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureSeason loads the results once per invocation.
func (c *commandContext) ensureSeason(ctx context.Context) (*config.Config, *standings.Season, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	c.seasonOnce.Do(func() {
		c.season, c.seasonErr = loader.LoadSeason(ctx, cfg)
	})
	return cfg, c.season, c.seasonErr
}
