package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/company-admin/docs"
	appanalytics "github.com/jhoicas/company-admin/internal/application/analytics"
	"github.com/jhoicas/company-admin/internal/application/auth"
	"github.com/jhoicas/company-admin/internal/application/ports"
	"github.com/jhoicas/company-admin/internal/application/report"
	"github.com/jhoicas/company-admin/internal/application/usecase"
	"github.com/jhoicas/company-admin/internal/domain/repository"
	"github.com/jhoicas/company-admin/internal/infrastructure/events"
	"github.com/jhoicas/company-admin/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/company-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/company-admin/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/company-admin/internal/interfaces/http"
	"github.com/jhoicas/company-admin/pkg/config"
	"github.com/jhoicas/company-admin/pkg/logger"
)

// @title                       Company Admin API
// @version                     1.0
// @description                 Empresas y usuarios con filtros, paginación y estadísticas.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Repositorios: PostgreSQL o memoria según STORE_BACKEND
	var (
		companyRepo repository.CompanyRepository
		userRepo    repository.UserRepository
		txRunner    usecase.UserTxRunner
	)
	switch cfg.Store.Backend {
	case config.StoreMemory:
		users := memory.NewUserStore()
		companyRepo = memory.NewCompanyStore()
		userRepo = users
		txRunner = memory.NewTxRunner(users)
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres").Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		companyRepo = postgres.NewCompanyRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	// Eventos de usuarios: Kafka si hay brokers, si no se descartan
	var publisher ports.EventPublisher = events.Noop{}
	if cfg.Kafka.Enabled() {
		producer, err := events.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Error().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("kafka no disponible, eventos desactivados")
		} else {
			defer func() {
				if err := producer.Close(); err != nil {
					log.Error().Err(err).Msg("cerrar productor kafka")
				}
			}()
			publisher = producer
		}
	}

	companyUC := usecase.NewCompanyUseCase(companyRepo, log)
	userUC := usecase.NewUserUseCase(userRepo, txRunner, publisher, log)
	dashboardUC := appanalytics.NewDashboardUseCase(companyRepo, cfg.Query.ChartTopN, log)
	reportUC := report.NewCompanyReportUseCase(companyRepo, infrapdf.NewMarotoReportGenerator(), log)
	authUC := auth.NewAuthUseCase(userUC, userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Admin.Email != "" {
		created, err := userUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear admin inicial")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("admin inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Company Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Backend})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:       companyUC,
		UserUC:          userUC,
		DashboardUC:     dashboardUC,
		ReportUC:        reportUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
		DefaultPageSize: cfg.Query.DefaultPageSize,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
