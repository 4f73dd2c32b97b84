// Package scheduler contém os serviços de agendamento da geração de feeds
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/product-feed-api/internal/config"
	"github.com/vfg2006/product-feed-api/internal/usecases/generating"
)

type FeedGenerationSyncConfig struct {
	CronSchedule string
	ReportPath   string
	SyncEnabled  bool
}

// FeedGenerationSyncService regenera o feed periodicamente a partir do
// relatório configurado. As execuções nunca se sobrepõem: a geração passa
// pela PA-API com pacing e pode levar vários minutos.
type FeedGenerationSyncService struct {
	scheduler           *gocron.Scheduler
	generator           generating.FeedGenerator
	config              FeedGenerationSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
	lastError           string
}

func NewFeedGenerationSyncService(
	generator generating.FeedGenerator,
	cfg *config.Config,
) *FeedGenerationSyncService {
	syncConfig := FeedGenerationSyncConfig{
		CronSchedule: cfg.FeedSync.CronSchedule, // Default: 7h da manhã todos os dias
		ReportPath:   cfg.FeedSync.ReportPath,
		SyncEnabled:  cfg.FeedSync.Enabled, // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"report_path":   syncConfig.ReportPath,
	}).Info("Configuração do agendador de geração de feed carregada")

	return &FeedGenerationSyncService{
		scheduler: scheduler,
		generator: generator,
		config:    syncConfig,
	}
}

func (s *FeedGenerationSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de geração de feed desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de geração de feed")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.SyncFeed(); err != nil {
			logrus.WithError(err).Error("Erro na geração agendada do feed")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar a geração de feed: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Parar o cron quando o contexto da aplicação for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de geração de feed")
		s.scheduler.Stop()
	}()

	return nil
}

// SyncFeed roda o pipeline completo sobre o relatório configurado
func (s *FeedGenerationSyncService) SyncFeed() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Geração de feed já está em execução")
		return nil
	}

	if s.config.ReportPath == "" {
		return fmt.Errorf("FEED_SYNC_REPORT_PATH não configurado")
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.WithField("report_path", s.config.ReportPath).Info("Iniciando geração agendada do feed")

	run, err := s.generator.GenerateFromFile(context.Background(), s.config.ReportPath)
	if err != nil {
		s.lastError = err.Error()
		return err
	}

	s.lastRunID = run.Summary.RunID
	s.lastError = ""

	logrus.WithFields(logrus.Fields{
		"run_id":       run.Summary.RunID,
		"feed_path":    run.Summary.FeedPath,
		"products":     run.Summary.TotalProducts,
		"success_rate": run.Summary.SuccessRate,
	}).Info("Geração agendada do feed concluída")

	return nil
}

// TriggerManualSync dispara uma geração fora do horário agendado
func (s *FeedGenerationSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Geração de feed já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando geração manual do feed")
	go func() {
		if err := s.SyncFeed(); err != nil {
			logrus.WithError(err).Error("Erro na geração manual do feed")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *FeedGenerationSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"report_path":            s.config.ReportPath,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_run_id":            s.lastRunID,
		"last_error":             s.lastError,
	}
}
