//go:build wireinject
// +build wireinject

package di

import (
	"resa/config"
	"resa/infras/jwt"
	"resa/infras/kafka"
	"resa/infras/otel"
	"resa/infras/postgres"
	"resa/infras/redis"
	"resa/infras/s3"
	"resa/permissions"
	"resa/shared/cache"
	"resa/transport/http"
	"resa/transport/http/middleware"
	"resa/transport/http/router"

	"github.com/google/wire"

	auditRepository "resa/internal/domains/audit/repository"
	auditService "resa/internal/domains/audit/service"
	authService "resa/internal/domains/auth/service"
	departmentRepository "resa/internal/domains/department/repository"
	departmentService "resa/internal/domains/department/service"
	notificationRepository "resa/internal/domains/notification/repository"
	notificationService "resa/internal/domains/notification/service"
	reservationRepository "resa/internal/domains/reservation/repository"
	reservationService "resa/internal/domains/reservation/service"
	roomRepository "resa/internal/domains/room/repository"
	roomService "resa/internal/domains/room/service"
	userRepository "resa/internal/domains/user/repository"
	userService "resa/internal/domains/user/service"

	auditHandler "resa/internal/handlers/audit"
	authHandler "resa/internal/handlers/auth"
	departmentHandler "resa/internal/handlers/department"
	notificationHandler "resa/internal/handlers/notification"
	reservationHandler "resa/internal/handlers/reservation"
	roomHandler "resa/internal/handlers/room"
	userHandler "resa/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var departmentDomain = wire.NewSet(
	departmentRepository.New,
	departmentService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var auditDomain = wire.NewSet(
	auditRepository.New,
	auditService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	roomDomain,
	reservationDomain,
	departmentDomain,
	notificationDomain,
	auditDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	reservationHandler.New,
	departmentHandler.New,
	notificationHandler.New,
	auditHandler.New,
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
