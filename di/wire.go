//go:build wireinject
// +build wireinject

package di

import (
	"stayin/config"
	"stayin/infras/otel"
	"stayin/infras/redis"
	"stayin/infras/sqlite"
	billingHandler "stayin/internal/handlers/billing"
	occupancyHandler "stayin/internal/handlers/occupancy"
	"stayin/shared/cache"
	"stayin/transport/http"
	"stayin/transport/http/middleware"
	"stayin/transport/http/router"

	billingRepository "stayin/internal/domains/billing/repository"
	billingService "stayin/internal/domains/billing/service"
	"stayin/internal/domains/billing/session"
	occupancyRepository "stayin/internal/domains/occupancy/repository"
	occupancyService "stayin/internal/domains/occupancy/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	sqlite.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var billingDomain = wire.NewSet(
	session.NewManager,
	billingRepository.New,
	billingService.New,
)

var occupancyDomain = wire.NewSet(
	occupancyRepository.New,
	occupancyService.New,
)

var domains = wire.NewSet(
	billingDomain,
	occupancyDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	billingHandler.New,
	occupancyHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
