package main

import (
	"log"

	"tutorboard/internal/api"
	"tutorboard/internal/config"
	"tutorboard/internal/logging"
	"tutorboard/internal/observability"
	"tutorboard/internal/pages"
	"tutorboard/internal/query"
	"tutorboard/internal/router"
	"tutorboard/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "tutorboard")
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flush()

	client, err := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	if err != nil {
		lg.Sugar.Fatalw("api client", "err", err)
	}

	deps := &pages.Deps{
		API:       client,
		Cache:     query.NewCache(),
		Sessions:  session.NewManager(cfg.SessionSecret, cfg.Env == "prod"),
		Log:       lg.Base,
		AssetBase: cfg.AssetBaseURL,
	}

	r := router.New(deps, lg.Base, cfg.Env)

	lg.Sugar.Infow("dashboard listening", "addr", cfg.HTTPAddr, "api", cfg.APIBaseURL)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		lg.Sugar.Fatalw("server stopped", "err", err)
	}
}
