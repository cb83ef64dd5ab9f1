package app

import (
	"context"
	"log"
	"time"

	"jobsync/internal/config"
	"jobsync/internal/database"
	"jobsync/internal/database/migration"
	dbpostgres "jobsync/internal/database/postgres"
	"jobsync/internal/delivery/http/handler"
	"jobsync/internal/delivery/http/middleware"
	"jobsync/internal/infrastructure/cache"
	"jobsync/internal/pkg/jwt"
	"jobsync/internal/repository"
	"jobsync/internal/scheduler"
	"jobsync/internal/usecase"
	"jobsync/internal/ws"
)

// Container owns every long-lived dependency and the wiring between them.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	AuthMiddleware *middleware.AuthMiddleware

	HealthHandler          *handler.HealthHandler
	WSHandler              *ws.Handler
	AuthHandler            *handler.AuthHandler
	JobsHandler            *handler.JobsHandler
	RecommendationsHandler *handler.JobRecommendationHandler
	ApplicationsHandler    *handler.ApplicationsHandler
	UsersHandler           *handler.UserHandler
	ContactHandler         *handler.ContactHandler

	Scheduler *scheduler.Scheduler
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)
	notifier := ws.NewNotifier(hub)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	jobRepo := repository.NewPostgresJobRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)
	contactRepo := repository.NewPostgresContactRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, userRepo, notifier, logger)
	listUC := usecase.NewJobListUsecase(jobRepo, redisCache, cfg.Redis.TTL, logger)
	recUC := usecase.NewJobRecommendationUsecase(jobRepo, redisCache, cfg.Jobs.RecommendationTTL, logger)
	applicationUC := usecase.NewApplicationUsecase(appRepo, jobRepo, notifier, logger)
	contactUC := usecase.NewContactUsecase(contactRepo, nil, logger)

	c := &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,

		AuthMiddleware: middleware.NewAuthMiddleware(jwtSvc),

		HealthHandler:          handler.NewHealthHandler(db, redisCache),
		WSHandler:              ws.NewHandler(hub, logger),
		AuthHandler:            handler.NewAuthHandler(authUC),
		JobsHandler:            handler.NewJobsHandler(jobUC, listUC),
		RecommendationsHandler: handler.NewJobRecommendationHandler(recUC, userUC),
		ApplicationsHandler:    handler.NewApplicationsHandler(applicationUC),
		UsersHandler:           handler.NewUserHandler(userUC),
		ContactHandler:         handler.NewContactHandler(contactUC),

		Scheduler: scheduler.New(jobRepo, redisCache, cfg.Jobs.ExpireSweepSpec, logger),
	}

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
