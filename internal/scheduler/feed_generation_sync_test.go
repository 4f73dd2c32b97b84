package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/product-feed-api/internal/domain"
	"github.com/vfg2006/product-feed-api/internal/usecases/generating/mocks"
	"go.uber.org/mock/gomock"
)

func TestFeedGenerationSyncService_SyncFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		config   FeedGenerationSyncConfig
		setup    func(generator *mocks.MockFeedGenerator)
		hasError bool
		validate func(t *testing.T, service *FeedGenerationSyncService)
	}{
		{
			name:   "Geração bem sucedida registra o identificador da execução",
			config: FeedGenerationSyncConfig{ReportPath: "/dados/relatorio.csv"},
			setup: func(generator *mocks.MockFeedGenerator) {
				generator.EXPECT().
					GenerateFromFile(gomock.Any(), "/dados/relatorio.csv").
					Return(&domain.FeedRun{
						Feed: &domain.Feed{Status: domain.FeedStatusOK},
						Summary: &domain.RunSummary{
							RunID:         "run123",
							FeedPath:      "/feeds/feed-run123.json",
							TotalProducts: 4,
							SuccessRate:   1.0,
						},
					}, nil)
			},
			hasError: false,
			validate: func(t *testing.T, service *FeedGenerationSyncService) {
				assert.Equal(t, "run123", service.lastRunID)
				assert.Empty(t, service.lastError)
				assert.False(t, service.lastSyncCompletedAt.IsZero())
			},
		},
		{
			name:   "Falha na geração registra o erro no status",
			config: FeedGenerationSyncConfig{ReportPath: "/dados/relatorio.csv"},
			setup: func(generator *mocks.MockFeedGenerator) {
				generator.EXPECT().
					GenerateFromFile(gomock.Any(), "/dados/relatorio.csv").
					Return(nil, assert.AnError)
			},
			hasError: true,
			validate: func(t *testing.T, service *FeedGenerationSyncService) {
				assert.NotEmpty(t, service.lastError)
			},
		},
		{
			name:     "Sem caminho do relatório configurado a execução falha",
			config:   FeedGenerationSyncConfig{},
			setup:    func(generator *mocks.MockFeedGenerator) {},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := mocks.NewMockFeedGenerator(ctrl)
			tt.setup(generator)

			service := &FeedGenerationSyncService{
				generator: generator,
				config:    tt.config,
			}

			err := service.SyncFeed()

			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.validate != nil {
				tt.validate(t, service)
			}
		})
	}
}

func TestFeedGenerationSyncService_SyncFeedSkipsWhenRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada ao gerador é esperada com uma execução em andamento
	generator := mocks.NewMockFeedGenerator(ctrl)

	service := &FeedGenerationSyncService{
		generator:   generator,
		config:      FeedGenerationSyncConfig{ReportPath: "/dados/relatorio.csv"},
		syncRunning: true,
	}

	err := service.SyncFeed()
	require.NoError(t, err)
}

func TestFeedGenerationSyncService_GetStatus(t *testing.T) {
	startedAt := time.Date(2026, 8, 31, 7, 0, 0, 0, time.UTC)

	service := &FeedGenerationSyncService{
		config: FeedGenerationSyncConfig{
			CronSchedule: "0 7 * * *",
			ReportPath:   "/dados/relatorio.csv",
			SyncEnabled:  true,
		},
		lastSyncStartedAt: startedAt,
		lastRunID:         "run123",
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 7 * * *", status["sync_cron"])
	assert.Equal(t, "/dados/relatorio.csv", status["report_path"])
	assert.Equal(t, startedAt, status["last_sync_started_at"])
	assert.Equal(t, "run123", status["last_run_id"])
}
