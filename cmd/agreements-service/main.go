package main

import (
	"fmt"
	"os"

	"github.com/nurpe/supply-agreements/internal/auth"
	"github.com/nurpe/supply-agreements/internal/config"
	"github.com/nurpe/supply-agreements/internal/db"
	"github.com/nurpe/supply-agreements/internal/excel"
	httphandler "github.com/nurpe/supply-agreements/internal/http"
	"github.com/nurpe/supply-agreements/internal/http/middleware"
	"github.com/nurpe/supply-agreements/internal/logger"
	"github.com/nurpe/supply-agreements/internal/pdf"
	"github.com/nurpe/supply-agreements/internal/repository"
	"github.com/nurpe/supply-agreements/internal/search"
	"github.com/nurpe/supply-agreements/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	agreementRepo := repository.NewAgreementRepository(database)
	referenceRepo := repository.NewReferenceRepository(database)
	ranker := search.NewRanker(cfg.Search.MinScore)

	agreementService := service.NewAgreementService(
		agreementRepo,
		referenceRepo,
		ranker,
		excel.NewGenerator(),
		pdf.NewGenerator(),
	)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(agreementService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.CORS.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting agreements service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
