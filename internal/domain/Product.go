package domain

import "github.com/vfg2006/product-feed-api/pkg/utils"

// AggregatedProduct é o resultado da agregação de todas as linhas do relatório
// que compartilham o mesmo ASIN, com as métricas derivadas já calculadas
type AggregatedProduct struct {
	ASIN         string
	OrderedItems float64
	Revenue      float64
	Earnings     float64
	Clicks       float64
	SourceTags   []string

	// Métricas derivadas, calculadas uma única vez após a soma
	ConversionRate    float64
	RevenuePerClick   float64
	EarningsPerClick  float64
	AverageOrderValue float64

	// Posição no ranking (1-based, denso), atribuída após a ordenação
	Rank int
}

// ComputeDerivedMetrics calcula as métricas derivadas do produto.
// Divisões por zero resultam em 0, nunca em NaN/Inf.
func (p *AggregatedProduct) ComputeDerivedMetrics() {
	if p.Clicks > 0 {
		p.ConversionRate = utils.RoundWithTwoDecimalPlace(p.OrderedItems / p.Clicks)
		p.RevenuePerClick = utils.RoundWithTwoDecimalPlace(p.Revenue / p.Clicks)
		p.EarningsPerClick = utils.RoundWithTwoDecimalPlace(p.Earnings / p.Clicks)
	}

	if p.OrderedItems > 0 {
		p.AverageOrderValue = utils.RoundWithTwoDecimalPlace(p.Revenue / p.OrderedItems)
	}
}

// AggregationSummary traz os totais da agregação para o relatório final
type AggregationSummary struct {
	ProductCount      int
	TotalOrderedItems float64
	TotalRevenue      float64
	TotalEarnings     float64
	TotalClicks       float64
}
