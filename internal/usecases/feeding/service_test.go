package feeding

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/product-feed-api/internal/domain"
)

func floatPtr(f float64) *float64 {
	return &f
}

func enrichedProduct(asin string, rank int, price *float64, sale *domain.SaleInfo) domain.EnrichedProduct {
	return domain.EnrichedProduct{
		AggregatedProduct: domain.AggregatedProduct{
			ASIN:         asin,
			Rank:         rank,
			OrderedItems: 5,
			Revenue:      100,
			Earnings:     10,
			Clicks:       50,
		},
		Title:        "Produto " + asin,
		Price:        price,
		Currency:     "USD",
		DetailURL:    "https://www.amazon.com/dp/" + asin + "?tag=minhaloja-20",
		Availability: "Now",
		Sale:         sale,
	}
}

func TestAssemble_FormatsAndComputesMetadata(t *testing.T) {
	service := NewService()

	enrichment := &domain.EnrichmentResult{
		Enriched: []domain.EnrichedProduct{
			enrichedProduct("B000000001", 1, floatPtr(29.99), &domain.SaleInfo{
				OriginalPrice:      49.99,
				DiscountAmount:     20.00,
				DiscountPercentage: 40,
			}),
			enrichedProduct("B000000002", 2, floatPtr(10.01), nil),
		},
		Stats: domain.EnrichmentStats{
			TotalRequested: 2,
			EnrichedCount:  2,
			SuccessRate:    1.0,
		},
	}

	generatedAt := time.Date(2026, 8, 31, 7, 0, 0, 0, time.UTC)

	feed := service.Assemble(enrichment, Options{
		FeedID:      "a1b2c3",
		RankBy:      "revenue",
		GeneratedAt: generatedAt,
	})

	assert.Equal(t, domain.FeedStatusOK, feed.Status)
	require.Len(t, feed.Products, 2)

	first := feed.Products[0]
	assert.Equal(t, "B000000001", first.ASIN)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "Produto B000000001", first.Title)

	// Produto em promoção carrega os quatro campos
	require.NotNil(t, first.IsOnSale)
	assert.True(t, *first.IsOnSale)
	assert.Equal(t, 49.99, *first.OriginalPrice)
	assert.Equal(t, 20.00, *first.DiscountAmount)
	assert.Equal(t, 40, *first.DiscountPercentage)

	// Produto sem promoção não carrega nenhum
	second := feed.Products[1]
	assert.Nil(t, second.IsOnSale)
	assert.Nil(t, second.OriginalPrice)
	assert.Nil(t, second.DiscountAmount)
	assert.Nil(t, second.DiscountPercentage)

	metadata := feed.Metadata
	assert.Equal(t, "a1b2c3", metadata.FeedID)
	assert.Equal(t, generatedAt, metadata.GeneratedAt)
	assert.Equal(t, "revenue", metadata.RankBy)
	assert.Equal(t, 2, metadata.TotalProducts)
	assert.Equal(t, 200.0, metadata.TotalRevenue)
	assert.Equal(t, 20.0, metadata.AveragePrice)
	assert.Equal(t, 1, metadata.ProductsOnSale)
	assert.Equal(t, 50.0, metadata.OnSalePercentage)
	assert.Equal(t, 40.0, metadata.AverageDiscountPerc)
	assert.False(t, metadata.LowSuccessRate)
}

func TestAssemble_SalesOnly(t *testing.T) {
	service := NewService()

	enrichment := &domain.EnrichmentResult{
		Enriched: []domain.EnrichedProduct{
			enrichedProduct("B000000001", 1, floatPtr(29.99), &domain.SaleInfo{
				OriginalPrice:      49.99,
				DiscountAmount:     20.00,
				DiscountPercentage: 40,
			}),
			enrichedProduct("B000000002", 2, floatPtr(10.01), nil),
		},
		Stats: domain.EnrichmentStats{TotalRequested: 2, EnrichedCount: 2, SuccessRate: 1.0},
	}

	feed := service.Assemble(enrichment, Options{SalesOnly: true, RankBy: "revenue"})

	// Os somatórios consideram só o conjunto filtrado
	require.Len(t, feed.Products, 1)
	assert.Equal(t, "B000000001", feed.Products[0].ASIN)
	assert.Equal(t, 1, feed.Metadata.TotalProducts)
	assert.Equal(t, 100.0, feed.Metadata.TotalRevenue)
	assert.Equal(t, 100.0, feed.Metadata.OnSalePercentage)
}

func TestAssemble_SalesOnlyEmptyIsStatusNotError(t *testing.T) {
	service := NewService()

	enrichment := &domain.EnrichmentResult{
		Enriched: []domain.EnrichedProduct{
			enrichedProduct("B000000001", 1, floatPtr(29.99), nil),
		},
		Stats: domain.EnrichmentStats{TotalRequested: 1, EnrichedCount: 1, SuccessRate: 1.0},
	}

	feed := service.Assemble(enrichment, Options{SalesOnly: true})

	// Execução legítima sem promoções: status vazio, métricas zeradas
	assert.Equal(t, domain.FeedStatusEmpty, feed.Status)
	assert.Empty(t, feed.Products)
	assert.Equal(t, 0, feed.Metadata.TotalProducts)
	assert.Equal(t, 0.0, feed.Metadata.OnSalePercentage)
	assert.Equal(t, 0.0, feed.Metadata.AverageDiscountPerc)
}

func TestAssemble_ReappliesFallbacks(t *testing.T) {
	service := NewService()

	enrichment := &domain.EnrichmentResult{
		Enriched: []domain.EnrichedProduct{
			{AggregatedProduct: domain.AggregatedProduct{ASIN: "B000000001", Rank: 1}},
		},
		Stats: domain.EnrichmentStats{TotalRequested: 1, EnrichedCount: 1, SuccessRate: 1.0},
	}

	feed := service.Assemble(enrichment, Options{})

	product := feed.Products[0]
	assert.Equal(t, domain.FallbackTitle, product.Title)
	assert.Equal(t, domain.FallbackCurrency, product.Currency)
	assert.Equal(t, domain.FallbackAvailability, product.Availability)
	assert.Nil(t, product.Price)
	assert.Equal(t, 0.0, feed.Metadata.AveragePrice)
}

func TestAssemble_LowSuccessRateFlag(t *testing.T) {
	service := NewService()

	enrichment := &domain.EnrichmentResult{
		Enriched: []domain.EnrichedProduct{
			enrichedProduct("B000000001", 1, floatPtr(29.99), nil),
		},
		Stats: domain.EnrichmentStats{
			TotalRequested: 10,
			EnrichedCount:  1,
			FailedCount:    9,
			SuccessRate:    0.1,
		},
	}

	feed := service.Assemble(enrichment, Options{})

	assert.True(t, feed.Metadata.LowSuccessRate)
	assert.Equal(t, 0.1, feed.Metadata.SuccessRate)
	assert.Equal(t, 9, feed.Metadata.FailedCount)
}

func TestSerialize_RoundTrip(t *testing.T) {
	service := NewService()

	enrichment := &domain.EnrichmentResult{
		Enriched: []domain.EnrichedProduct{
			enrichedProduct("B000000001", 1, floatPtr(29.99), nil),
		},
		Stats: domain.EnrichmentStats{TotalRequested: 1, EnrichedCount: 1, SuccessRate: 1.0},
	}

	feed := service.Assemble(enrichment, Options{FeedID: "a1b2c3", RankBy: "revenue"})

	payload, err := Serialize(feed)
	require.NoError(t, err)

	// O feed serializado volta como um objeto válido com os campos mínimos
	var decoded struct {
		Status   string `json:"status"`
		Products []struct {
			ASIN  string   `json:"asin"`
			Title string   `json:"title"`
			Price *float64 `json:"price"`
			Rank  int      `json:"rank"`
		} `json:"products"`
	}

	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, domain.FeedStatusOK, decoded.Status)
	require.Len(t, decoded.Products, 1)
	assert.Equal(t, "B000000001", decoded.Products[0].ASIN)
	assert.Equal(t, "Produto B000000001", decoded.Products[0].Title)
	assert.Equal(t, 29.99, *decoded.Products[0].Price)
	assert.Equal(t, 1, decoded.Products[0].Rank)
}
