package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ayaxan7/seller-dashboard/config"
	"github.com/ayaxan7/seller-dashboard/internal/controller"
	"github.com/ayaxan7/seller-dashboard/internal/infrastructure/blobstore"
	circuitbreaker "github.com/ayaxan7/seller-dashboard/internal/infrastructure/circuit-breaker"
	kafkainfra "github.com/ayaxan7/seller-dashboard/internal/infrastructure/message-queue/kafka"
	"github.com/ayaxan7/seller-dashboard/internal/infrastructure/tracing"
	"github.com/ayaxan7/seller-dashboard/internal/repository"
	"github.com/ayaxan7/seller-dashboard/internal/service"
	"github.com/ayaxan7/seller-dashboard/internal/session"
	"github.com/ayaxan7/seller-dashboard/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	PostgresDB *sqlx.DB
	MongoDB    *mongo.Database
	Config     *config.Config
	Server     *echo.Echo
}

func (app *App) Start() {
	e := echo.New()
	e.HideBanner = true
	app.Server = e

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
	}

	defer func() {
		if traceProvider == nil {
			return
		}
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}()

	if traceProvider != nil {
		tracer := traceProvider.Tracer("seller-dashboard-service")

		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				req := c.Request()
				c.SetRequest(req.WithContext(ctx))

				return next(c)
			}
		})
	}

	e.Use(echoprometheus.NewMiddleware("seller_dashboard"))

	go func() {
		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	g := e.Group("/api/v1")

	g.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogMethod:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("URI", v.URI).
				Int("status", v.Status).
				Int64("latency", v.Latency.Microseconds()).
				Str("remote IP", v.RemoteIP).
				Msg("Request")

			return nil
		},
	}))

	isLoggedIn := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(app.Config.JWTSecret),
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			errorResponse := map[string]interface{}{
				"status":  "error",
				"message": "Invalid or expired JWT",
				"errors":  nil,
			}
			return c.JSON(http.StatusUnauthorized, errorResponse)
		},
	})

	sessions := session.NewStore()

	var kafkaProducer service.EventProducer
	if app.Config.KafkaConfig.BrokerAddress != "" {
		kafkaProducer = kafkainfra.CreateKafkaProducer(app.Config)
	}

	cb := circuitbreaker.CreateCircuitBreaker("blob-store")
	blobStore := blobstore.CreateNewClient(app.Config.BlobStorageConfig, cb)

	userRepo := repository.CreateNewUserRepository(app.PostgresDB)
	productRepo := repository.CreateNewMongoDBRepository(app.MongoDB)

	authSvc := service.CreateNewAuthService(userRepo, *app.Config, sessions)
	blobSvc := service.CreateNewBlobService(blobStore)
	productSvc := service.CreateNewProductService(productRepo, blobStore, sessions, *app.Config, kafkaProducer)

	controller.CreateAuthController(g, authSvc, isLoggedIn)
	controller.CreateProductController(g, productSvc, blobSvc, isLoggedIn)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(
			5*time.Minute,
		),
		gocron.NewTask(
			productSvc.SweepOrphanedBlobs,
		),
	)
	if err != nil {
		panic(err)
	}

	scheduler.Start()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)))
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
