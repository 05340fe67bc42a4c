package gamebuilder

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/park285/makhos/internal/adapter/gamepresenter"
	"github.com/park285/makhos/internal/config"
	"github.com/park285/makhos/internal/msgcat"
	svcgame "github.com/park285/makhos/internal/service/game"
)

type Deps struct {
	Service   *svcgame.Service
	Repo      svcgame.Repository
	Renderer  svcgame.BoardRenderer
	Catalog   *msgcat.Catalog
	Formatter *gamepresenter.Formatter

	closers []func() error
}

func New(cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := msgcat.New(cfg.MsgDir)
	if err != nil {
		return nil, fmt.Errorf("init message catalog: %w", err)
	}

	deps := &Deps{Catalog: catalog, Formatter: gamepresenter.NewFormatter(catalog)}

	// Sessions live in Redis when REDIS_URL is set, otherwise in-process.
	if strings.TrimSpace(cfg.RedisURL) != "" {
		redisRepo, err := svcgame.NewRedisRepository(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("init redis repository: %w", err)
		}
		deps.Repo = redisRepo
		deps.closers = append(deps.closers, redisRepo.Close)
		logger.Info("session repository: redis")
	} else {
		deps.Repo = svcgame.NewMemoryRepository()
	}

	deps.Renderer = svcgame.NewSVGBoardRenderer(cfg.RenderSize)

	service, err := svcgame.NewService(deps.Repo, deps.Renderer, svcgame.Config{DefaultVariant: cfg.DefaultVariant}, logger)
	if err != nil {
		return nil, err
	}
	deps.Service = service
	return deps, nil
}

// Close releases everything the builder opened.
func (d *Deps) Close() error {
	if d == nil {
		return nil
	}
	var first error
	for _, c := range d.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
