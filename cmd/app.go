package cmd

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/foomo/editor-prevnext/admin"
	"github.com/foomo/editor-prevnext/config"
	"github.com/foomo/editor-prevnext/render"
	"github.com/foomo/editor-prevnext/resolver"
	"github.com/foomo/editor-prevnext/service"
	"github.com/foomo/editor-prevnext/service/vo"
	"github.com/foomo/editor-prevnext/store/sqlstore"
)

type app struct {
	store    *sqlstore.Store
	service  service.Service
	registry *admin.Registry
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	dialect, err := sqlstore.DialectByName(cfg.Store.Driver)
	if err != nil {
		return nil, err
	}
	s, err := sqlstore.Open(dialect, cfg.Store.DSN, cfg.Store.TablePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", dialect.Name, err)
	}

	r := resolver.New(s,
		resolver.WithLogger(logger.Named("resolver")),
		resolver.WithMaxParentDepth(cfg.Resolver.MaxParentDepth),
		resolver.WithStatus(vo.Status(cfg.Resolver.Status)),
	)
	svc := service.NewService(logger.Named("service"), r, render.NewRenderer(cfg.Render))
	registry := admin.NewRegistry(logger.Named("admin"),
		admin.NavigationBox(svc, admin.TypeFilter{
			Include: cfg.Admin.Types,
			Exclude: cfg.Admin.ExcludedTypes,
		}),
	)
	return &app{
		store:    s,
		service:  svc,
		registry: registry,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
