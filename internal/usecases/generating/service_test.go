package generating

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	amazondomain "github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon/mocks"
	"github.com/vfg2006/product-feed-api/internal/config"
	"github.com/vfg2006/product-feed-api/internal/domain"
	"github.com/vfg2006/product-feed-api/internal/usecases/enriching"
	"github.com/vfg2006/product-feed-api/internal/usecases/feeding"
	"github.com/vfg2006/product-feed-api/internal/usecases/parsing"
	"github.com/vfg2006/product-feed-api/internal/usecases/ranking"
	"go.uber.org/mock/gomock"
)

func pipelineConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Amazon: config.Amazon{
			AccessKey:     "AKIA_TEST",
			SecretKey:     "secret",
			PartnerTag:    "minhaloja-20",
			PartnerType:   "Associates",
			Marketplace:   "www.amazon.com",
			BatchSize:     10,
			BatchDelayMs:  1100,
			MaxAttempts:   3,
			BackoffBaseMs: 1000,
		},
		Feed: config.Feed{
			RankBy:    "revenue",
			OutputDir: t.TempDir(),
		},
	}
}

func TestGenerateFromReader_FullPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := pipelineConfig(t)
	mockAmazon := mocks.NewMockAmazonIntegrator(ctrl)

	service := NewService(
		cfg,
		parsing.NewService(),
		ranking.NewService(),
		enriching.NewService(cfg, mockAmazon),
		feeding.NewService(),
	)

	csvReport := strings.Join([]string{
		"ASIN,Ordered Items,Revenue,Earnings,Clicks",
		"B000000001,5,100.00,10.00,50",
		"B000000002,10,250.00,25.00,100",
		"B000000001,3,60.00,6.00,30",
	}, "\n")

	// A agregação deixa B000000002 (250) na frente de B000000001 (160)
	mockAmazon.EXPECT().
		GetItemsByASINs(gomock.Any(), []string{"B000000002", "B000000001"}).
		Return(&amazondomain.GetItemsResponse{
			ItemsResult: &amazondomain.ItemsResult{
				Items: []amazondomain.Item{
					{
						ASIN: "B000000002",
						ItemInfo: &amazondomain.ItemInfo{
							Title: &amazondomain.DisplayValue{DisplayValue: "Produto Campeão"},
						},
						Offers: &amazondomain.Offers{
							Listings: []amazondomain.Listing{
								{
									Price:       &amazondomain.Price{Amount: 29.99, Currency: "USD"},
									SavingBasis: &amazondomain.Price{Amount: 49.99},
								},
							},
						},
					},
					{
						ASIN: "B000000001",
						ItemInfo: &amazondomain.ItemInfo{
							Title: &amazondomain.DisplayValue{DisplayValue: "Produto Vice"},
						},
					},
				},
			},
		}, nil)

	run, err := service.GenerateFromReader(context.Background(), "relatorio.csv", strings.NewReader(csvReport))
	require.NoError(t, err)

	require.NotNil(t, run.Feed)
	require.NotNil(t, run.Summary)

	assert.Equal(t, domain.FeedStatusOK, run.Feed.Status)
	require.Len(t, run.Feed.Products, 2)
	assert.Equal(t, "B000000002", run.Feed.Products[0].ASIN)
	assert.Equal(t, 1, run.Feed.Products[0].Rank)
	assert.Equal(t, "Produto Campeão", run.Feed.Products[0].Title)

	summary := run.Summary
	assert.Equal(t, run.Feed.Metadata.FeedID, summary.RunID)
	assert.Equal(t, 3, summary.ReportRows)
	assert.Equal(t, 3, summary.ValidRows)
	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 1.0, summary.SuccessRate)
	assert.Equal(t, "revenue", summary.RankBy)
	assert.Equal(t, 1, summary.ProductsOnSale)

	require.Len(t, summary.TopProducts, 2)
	assert.Equal(t, "B000000002", summary.TopProducts[0].ASIN)
	assert.Equal(t, 250.0, summary.TopProducts[0].Revenue)

	// O feed gravado no disco é o mesmo que voltou na execução
	payload, err := os.ReadFile(summary.FeedPath)
	require.NoError(t, err)

	var persisted domain.Feed
	require.NoError(t, json.Unmarshal(payload, &persisted))
	assert.Equal(t, run.Feed.Status, persisted.Status)
	assert.Len(t, persisted.Products, 2)
}

func TestGenerateFromReader_InvalidRankKeyFailsBeforeEnrichment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := pipelineConfig(t)
	cfg.Feed.RankBy = "priceness"

	// Nenhuma chamada à PA-API é esperada: o erro de configuração
	// interrompe a execução antes de qualquer rede
	mockAmazon := mocks.NewMockAmazonIntegrator(ctrl)

	service := NewService(
		cfg,
		parsing.NewService(),
		ranking.NewService(),
		enriching.NewService(cfg, mockAmazon),
		feeding.NewService(),
	)

	csvReport := "ASIN,Ordered Items,Revenue,Earnings\nB000000001,5,100.00,10.00"

	_, err := service.GenerateFromReader(context.Background(), "relatorio.csv", strings.NewReader(csvReport))
	require.Error(t, err)

	var rankErr *ranking.InvalidRankKeyError
	assert.ErrorAs(t, err, &rankErr)
}

func TestGenerateFromFile_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := pipelineConfig(t)
	mockAmazon := mocks.NewMockAmazonIntegrator(ctrl)

	service := NewService(
		cfg,
		parsing.NewService(),
		ranking.NewService(),
		enriching.NewService(cfg, mockAmazon),
		feeding.NewService(),
	)

	_, err := service.GenerateFromFile(context.Background(), "/caminho/inexistente.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao abrir o relatório")
}
