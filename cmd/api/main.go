package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/application/report"
	"github.com/jhoicas/crm-api/internal/application/social"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	infraexcel "github.com/jhoicas/crm-api/internal/infrastructure/excel"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
	"github.com/jhoicas/crm-api/internal/infrastructure/meta"
	infrapdf "github.com/jhoicas/crm-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/crm-api/internal/interfaces/http"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.Session.Secret == config.DevSessionSecret {
		log.Warn().Msg("SESSION_SECRET no definido, usando secreto de desarrollo")
	}

	// Stores en memoria: el estado se pierde al reiniciar.
	userRepo := memory.NewUserRepository()
	clientRepo := memory.NewClientRepository()
	cardRepo := memory.NewCardRepository()
	messageRepo := memory.NewMessageRepository()

	userUC := usecase.NewUserUseCase(userRepo)
	seedUsers(log, userUC, cfg.Seed)

	// Gateway Meta: sin token todas las llamadas fallan con ErrGatewayNotConfigured.
	graph := meta.NewGraphClient(meta.Config{
		Token:   cfg.Meta.Token,
		BaseURL: cfg.Meta.BaseURL,
		PhoneID: cfg.Meta.PhoneID,
		Timeout: cfg.Meta.Timeout(),
	})
	if !graph.Configured() {
		log.Warn().Msg("META_API_TOKEN no definido, integración con redes sociales deshabilitada")
	}

	var sender ports.MessageSender
	if cfg.Meta.DeliverMessages {
		sender = graph
	}

	clientUC := usecase.NewClientUseCase(clientRepo)
	messageUC := usecase.NewMessageUseCase(messageRepo, clientRepo, sender)
	pipelineUC := pipeline.NewUseCase(cardRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(cardRepo, clientRepo, messageRepo, time.Local)
	socialUC := social.NewUseCase(graph, messageUC, log.Component("social"))

	// Reportes: Excel (excelize) y PDF (maroto)
	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.Reports.CompanyName, time.Now)
	reportUC := report.NewUseCase(report.Deps{
		Clients:  clientRepo,
		Cards:    cardRepo,
		Excel:    infraexcel.NewExcelizeReportGenerator(),
		PDF:      pdfGenerator,
		Social:   pdfGenerator,
		Insights: socialUC,
		Dir:      cfg.Reports.Dir,
		Log:      log.Component("report"),
	})

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM Monteiro Corretora API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		ClientUC:     clientUC,
		MessageUC:    messageUC,
		PipelineUC:   pipelineUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		SocialUC:     socialUC,
		JWTSecret:    cfg.Session.Secret,
		SessionTTL:   time.Duration(cfg.Session.Expiration) * time.Minute,
		SecureCookie: cfg.App.Env == "production",
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
