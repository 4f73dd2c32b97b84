package domain

import "time"

// Status do feed montado. "empty" distingue uma execução legítima sem
// produtos (ex.: salesOnly sem promoções) de uma falha de montagem.
const (
	FeedStatusOK    = "ok"
	FeedStatusEmpty = "empty"
)

// LowSuccessRateThreshold é o percentual mínimo de enriquecimento abaixo do
// qual a execução é sinalizada para o notificador (condição reportável, não erro)
const LowSuccessRateThreshold = 0.95

// FormattedProduct é o produto no esquema público do feed
type FormattedProduct struct {
	ASIN              string   `json:"asin"`
	Rank              int      `json:"rank"`
	Title             string   `json:"title"`
	Price             *float64 `json:"price"`
	Currency          string   `json:"currency"`
	ImageURL          *string  `json:"image_url"`
	DetailURL         string   `json:"detail_url"`
	Availability      string   `json:"availability"`
	OrderedItems      float64  `json:"ordered_items"`
	Revenue           float64  `json:"revenue"`
	Earnings          float64  `json:"earnings"`
	Clicks            float64  `json:"clicks"`
	ConversionRate    float64  `json:"conversion_rate"`
	RevenuePerClick   float64  `json:"revenue_per_click"`
	EarningsPerClick  float64  `json:"earnings_per_click"`
	AverageOrderValue float64  `json:"average_order_value"`
	SourceTags        []string `json:"source_tags,omitempty"`

	// Campos de promoção: todos presentes ou todos ausentes
	IsOnSale           *bool    `json:"is_on_sale,omitempty"`
	OriginalPrice      *float64 `json:"original_price,omitempty"`
	DiscountAmount     *float64 `json:"discount_amount,omitempty"`
	DiscountPercentage *int     `json:"discount_percentage,omitempty"`
}

// FeedMetadata é o registro de metadados que acompanha o feed
type FeedMetadata struct {
	FeedID              string    `json:"feed_id"`
	GeneratedAt         time.Time `json:"generated_at"`
	RankBy              string    `json:"rank_by"`
	SalesOnly           bool      `json:"sales_only"`
	TotalProducts       int       `json:"total_products"`
	EnrichedCount       int       `json:"enriched_count"`
	FailedCount         int       `json:"failed_count"`
	SuccessRate         float64   `json:"success_rate"`
	LowSuccessRate      bool      `json:"low_success_rate"`
	TotalOrderedItems   float64   `json:"total_ordered_items"`
	TotalRevenue        float64   `json:"total_revenue"`
	TotalEarnings       float64   `json:"total_earnings"`
	TotalClicks         float64   `json:"total_clicks"`
	AveragePrice        float64   `json:"average_price"`
	ProductsOnSale      int       `json:"products_on_sale"`
	OnSalePercentage    float64   `json:"on_sale_percentage"`
	AverageDiscountPerc float64   `json:"average_discount_percentage"`
}

// Feed é a sequência ordenada de produtos formatados mais os metadados,
// serializáveis de forma independente
type Feed struct {
	Status   string             `json:"status"`
	Products []FormattedProduct `json:"products"`
	Metadata FeedMetadata       `json:"metadata"`
}
