package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"yelpcamp/pkg/common/config"
	campmodel "yelpcamp/pkg/core/campground/model"
	"yelpcamp/pkg/web/router"
)

func main() {
	cfg := config.Load()
	hlog.SetLevel(cfg.HlogLevel())
	if err := cfg.Validate(); err != nil {
		hlog.Fatalf("invalid configuration: %v", err)
	}

	db, err := cfg.InitDB()
	if err != nil {
		hlog.Fatalf("failed to initialize database: %v", err)
	}
	if err := campmodel.AutoMigrate(db); err != nil {
		hlog.Fatalf("failed to migrate database: %v", err)
	}

	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(int(cfg.Middleware.Security.MaxBodySize)),
	)

	router.RegisterAPIs(h, cfg, router.NewDependencies(cfg, db))

	hlog.Infof("listening on %s (ownership policy: %s)", cfg.Server.Address, cfg.Policy.Ownership)
	h.Spin()
}
