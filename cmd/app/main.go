package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"resto/cmd"
	"resto/internal/adapters/out/postgres/accessrepo"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	config, err := cmd.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	root := cmd.NewCompositionRoot(config, gormDB, logger)

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := accessrepo.SeedDefaultRules(seedCtx, accessrepo.NewGormRuleRepository(gormDB)); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed permission rules")
	}

	jobManager := root.CreateJobManager(config.PaymentPendingTTL)
	if err := jobManager.StartAll(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start background jobs")
	}
	defer jobManager.StopAll()

	startWebServer(&root, config.HTTPPort, logger)
}

func startWebServer(root *cmd.CompositionRoot, port string, logger zerolog.Logger) {
	e := echo.New()
	e.HideBanner = true

	root.CreateHTTPServer().RegisterRoutes(e)

	logger.Info().Str("port", port).Msg("starting http server")
	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
		logger.Fatal().Err(err).Msg("http server stopped")
	}
}
