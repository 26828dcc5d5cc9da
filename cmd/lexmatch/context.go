package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lexmatch/internal/adapter/postgres"
	"github.com/heartmarshall/lexmatch/internal/app"
	"github.com/heartmarshall/lexmatch/internal/config"
	"github.com/heartmarshall/lexmatch/internal/domain"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		var cfg config.LogConfig
		if c.config != nil {
			cfg = c.config.Log
		}
		c.logger = app.NewLogger(cfg)
	})
	return c.logger
}

// openPool connects to the configured run store.
func (c *commandContext) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if !c.config.Database.Enabled() {
		return nil, domain.NewValidationError("database.dsn", "not configured")
	}
	pool, err := postgres.NewPool(ctx, c.config.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}
