package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon"
	"github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon/paapiclient"
	"github.com/vfg2006/product-feed-api/internal/api"
	"github.com/vfg2006/product-feed-api/internal/config"
	"github.com/vfg2006/product-feed-api/internal/scheduler"
	"github.com/vfg2006/product-feed-api/internal/usecases/enriching"
	"github.com/vfg2006/product-feed-api/internal/usecases/feeding"
	"github.com/vfg2006/product-feed-api/internal/usecases/generating"
	"github.com/vfg2006/product-feed-api/internal/usecases/parsing"
	"github.com/vfg2006/product-feed-api/internal/usecases/ranking"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cliente assinado da PA-API e o integrador por cima dele
	paapiClient := paapiclient.NewClient(cfg)
	amazonIntegrator := amazon.New(cfg, paapiClient)

	// Serviços do pipeline: parse, agregação/ranking, enriquecimento e feed
	parserService := parsing.NewService()
	rankingService := ranking.NewService()
	enrichingService := enriching.NewService(cfg, amazonIntegrator)
	feedingService := feeding.NewService()

	feedGenerator := generating.NewService(
		cfg,
		parserService,
		rankingService,
		enrichingService,
		feedingService,
	)

	// Agendador da geração periódica do feed
	feedSyncService := scheduler.NewFeedGenerationSyncService(feedGenerator, cfg)

	if err := feedSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de geração de feed")
	} else {
		logrus.Info("Agendador de geração de feed iniciado com sucesso")
	}

	server, err := api.New(cfg, feedGenerator, feedSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
