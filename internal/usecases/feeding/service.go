package feeding

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/product-feed-api/internal/domain"
	"github.com/vfg2006/product-feed-api/pkg/utils"
)

// Options controla a montagem do feed
type Options struct {
	FeedID      string
	RankBy      string
	SalesOnly   bool
	GeneratedAt time.Time
}

type Assembler interface {
	Assemble(enrichment *domain.EnrichmentResult, opts Options) *domain.Feed
}

type Service struct{}

func NewService() Assembler {
	return &Service{}
}

// Assemble formata os produtos enriquecidos no esquema público e calcula os
// metadados do feed. Com salesOnly, o feed e todos os somatórios consideram
// apenas os produtos em promoção; um resultado vazio é um status explícito,
// nunca um erro.
func (s *Service) Assemble(enrichment *domain.EnrichmentResult, opts Options) *domain.Feed {
	products := make([]domain.FormattedProduct, 0, len(enrichment.Enriched))

	for i := range enrichment.Enriched {
		product := &enrichment.Enriched[i]

		if opts.SalesOnly && !product.IsOnSale() {
			continue
		}

		products = append(products, formatProduct(product))
	}

	metadata := buildMetadata(products, enrichment.Stats, opts)

	status := domain.FeedStatusOK
	if len(products) == 0 {
		status = domain.FeedStatusEmpty
	}

	return &domain.Feed{
		Status:   status,
		Products: products,
		Metadata: metadata,
	}
}

// Serialize converte o feed para a representação transportável
func Serialize(feed *domain.Feed) ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(feed, "", "  ")
}

// formatProduct aplica o esquema público, reaplicando os fallbacks de
// extração para qualquer atributo ainda ausente
func formatProduct(product *domain.EnrichedProduct) domain.FormattedProduct {
	formatted := domain.FormattedProduct{
		ASIN:              product.ASIN,
		Rank:              product.Rank,
		Title:             product.Title,
		Price:             product.Price,
		Currency:          product.Currency,
		ImageURL:          product.ImageURL,
		DetailURL:         product.DetailURL,
		Availability:      product.Availability,
		OrderedItems:      product.OrderedItems,
		Revenue:           product.Revenue,
		Earnings:          product.Earnings,
		Clicks:            product.Clicks,
		ConversionRate:    product.ConversionRate,
		RevenuePerClick:   product.RevenuePerClick,
		EarningsPerClick:  product.EarningsPerClick,
		AverageOrderValue: product.AverageOrderValue,
		SourceTags:        product.SourceTags,
	}

	if formatted.Title == "" {
		formatted.Title = domain.FallbackTitle
	}

	if formatted.Currency == "" {
		formatted.Currency = domain.FallbackCurrency
	}

	if formatted.Availability == "" {
		formatted.Availability = domain.FallbackAvailability
	}

	// Os quatro campos de promoção nascem juntos do mesmo SaleInfo
	if product.Sale != nil {
		onSale := true
		originalPrice := product.Sale.OriginalPrice
		discountAmount := product.Sale.DiscountAmount
		discountPercentage := product.Sale.DiscountPercentage

		formatted.IsOnSale = &onSale
		formatted.OriginalPrice = &originalPrice
		formatted.DiscountAmount = &discountAmount
		formatted.DiscountPercentage = &discountPercentage
	}

	return formatted
}

// buildMetadata calcula os metadados sobre o conjunto filtrado, com as mesmas
// regras de divisão segura da agregação
func buildMetadata(products []domain.FormattedProduct, stats domain.EnrichmentStats, opts Options) domain.FeedMetadata {
	metadata := domain.FeedMetadata{
		FeedID:         opts.FeedID,
		GeneratedAt:    opts.GeneratedAt,
		RankBy:         opts.RankBy,
		SalesOnly:      opts.SalesOnly,
		TotalProducts:  len(products),
		EnrichedCount:  stats.EnrichedCount,
		FailedCount:    stats.FailedCount,
		SuccessRate:    stats.SuccessRate,
		LowSuccessRate: stats.TotalRequested > 0 && stats.SuccessRate < domain.LowSuccessRateThreshold,
	}

	var priceSum float64
	var pricedCount int
	var discountSum float64

	for i := range products {
		product := &products[i]

		metadata.TotalOrderedItems += product.OrderedItems
		metadata.TotalRevenue += product.Revenue
		metadata.TotalEarnings += product.Earnings
		metadata.TotalClicks += product.Clicks

		if product.Price != nil {
			priceSum += *product.Price
			pricedCount++
		}

		if product.IsOnSale != nil && *product.IsOnSale {
			metadata.ProductsOnSale++
			discountSum += float64(*product.DiscountPercentage)
		}
	}

	if pricedCount > 0 {
		metadata.AveragePrice = utils.RoundWithTwoDecimalPlace(priceSum / float64(pricedCount))
	}

	metadata.OnSalePercentage = utils.Percentage(float64(metadata.ProductsOnSale), float64(len(products)))

	if metadata.ProductsOnSale > 0 {
		metadata.AverageDiscountPerc = utils.RoundWithTwoDecimalPlace(discountSum / float64(metadata.ProductsOnSale))
	}

	return metadata
}
