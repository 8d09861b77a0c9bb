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

	_ "github.com/itcguard/itc-api/docs"
	"github.com/itcguard/itc-api/internal/application/extraction"
	"github.com/itcguard/itc-api/internal/application/report"
	"github.com/itcguard/itc-api/internal/application/usecase"
	infraai "github.com/itcguard/itc-api/internal/infrastructure/ai"
	"github.com/itcguard/itc-api/internal/infrastructure/imaging"
	infrapdf "github.com/itcguard/itc-api/internal/infrastructure/pdf"
	"github.com/itcguard/itc-api/internal/infrastructure/store"
	httpRouter "github.com/itcguard/itc-api/internal/interfaces/http"
	"github.com/itcguard/itc-api/pkg/config"
	"github.com/itcguard/itc-api/pkg/logger"
)

// @title                       ITC Guard API
// @version                     1.0
// @description                 Invoice capture, GSTIN verification and GSTR-3B reporting for input tax credit.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("ai_provider", cfg.AI.Provider).
		Msg("starting")

	ctx := context.Background()
	repo, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open record store")
	}
	defer closeStore()

	model, err := infraai.New(ctx, cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("build model client")
	}
	defer model.Close()

	complianceUC := usecase.NewComplianceUseCase(repo, log)
	scanUC := usecase.NewScanUseCase(model, imaging.NewConverter(), extraction.NewNormalizer(), repo, cfg.AI.Timeout, log)
	assistantUC := usecase.NewAssistantUseCase(model, repo, cfg.AI.Timeout, log)
	gstr3bUC := report.NewGSTR3BUseCase(repo, infrapdf.NewMarotoGSTR3BGenerator(cfg.App.Name), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: cfg.AI.Timeout + 15*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ITC Guard API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:  cfg.App.Name,
		Store:        repo,
		ComplianceUC: complianceUC,
		ScanUC:       scanUC,
		AssistantUC:  assistantUC,
		GSTR3BUC:     gstr3bUC,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}
