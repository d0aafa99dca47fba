package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "elegante_hospedagem/internal/adapters/http_server"
	"elegante_hospedagem/internal/adapters/observability"
	redisad "elegante_hospedagem/internal/adapters/redis"
	"elegante_hospedagem/internal/adapters/simulator"
	"elegante_hospedagem/internal/app"
	"elegante_hospedagem/internal/domain"
	"elegante_hospedagem/internal/shared"
	"elegante_hospedagem/internal/storage/memory"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	catalog := memory.New(memory.SeedRooms())

	// cache is optional; REDIS_ADDR=off runs without one
	var cache domain.Cache
	if cfg.RedisAddr != "" && cfg.RedisAddr != "off" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	} else {
		log.Info().Msg("running without a catalog cache")
	}

	backend := simulator.New(catalog, simulator.Options{
		AvailabilityDelay: cfg.AvailabilityDelay,
		PaymentDelay:      cfg.PaymentDelay,
		DiscountDelay:     cfg.DiscountDelay,
		LoginDelay:        cfg.LoginDelay,
		CardSuccessRate:   cfg.CardSuccessRate,
		DiscountAmount:    cfg.DiscountAmount,
		DropRooms:         []string{"3"},
	})

	q := app.NewCatalogService(catalog, cache, cfg.CacheTTL)
	sessions := app.NewSessionService(q, backend, cfg.Taxes, log.Logger)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		S:     sessions,
		Q:     q,
		Promo: domain.Promo{Title: cfg.PromoTitle, Deadline: cfg.PromoDeadline},
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
