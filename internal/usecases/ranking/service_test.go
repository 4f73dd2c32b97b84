package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/product-feed-api/internal/domain"
)

func TestAggregateAndRank_Aggregation(t *testing.T) {
	service := NewService()

	// Três linhas, dois produtos: as linhas do mesmo ASIN somam
	items := []domain.LineItem{
		{ASIN: "B0000000A1", OrderedItems: 5, Revenue: 100, Earnings: 10, Clicks: 50, SourceTag: "blog"},
		{ASIN: "B0000000A1", OrderedItems: 3, Revenue: 60, Earnings: 6, Clicks: 30, SourceTag: "social"},
		{ASIN: "B0000000B2", OrderedItems: 10, Revenue: 50, Earnings: 5, Clicks: 100, SourceTag: "blog"},
	}

	result, err := service.AggregateAndRank(items, Options{RankBy: "revenue"})
	require.NoError(t, err)
	require.Len(t, result.Products, 2)

	first := result.Products[0]
	assert.Equal(t, "B0000000A1", first.ASIN)
	assert.Equal(t, 8.0, first.OrderedItems)
	assert.Equal(t, 160.0, first.Revenue)
	assert.Equal(t, 16.0, first.Earnings)
	assert.Equal(t, 80.0, first.Clicks)

	// Tags distintas das linhas do grupo são todas coletadas
	assert.Equal(t, []string{"blog", "social"}, first.SourceTags)

	// Métricas derivadas calculadas depois da soma
	assert.Equal(t, 0.1, first.ConversionRate)
	assert.Equal(t, 2.0, first.RevenuePerClick)
	assert.Equal(t, 0.2, first.EarningsPerClick)
	assert.Equal(t, 20.0, first.AverageOrderValue)

	// Resumo do relatório completo
	assert.Equal(t, 2, result.Summary.ProductCount)
	assert.Equal(t, 18.0, result.Summary.TotalOrderedItems)
	assert.Equal(t, 210.0, result.Summary.TotalRevenue)
}

func TestAggregateAndRank_RankingAndTopN(t *testing.T) {
	service := NewService()

	items := []domain.LineItem{
		{ASIN: "B0000000AA", Revenue: 10},
		{ASIN: "B0000000BB", Revenue: 50},
	}

	// Ranking por receita com corte em 1: só o maior volta, com rank 1
	result, err := service.AggregateAndRank(items, Options{RankBy: "revenue", TopN: 1})
	require.NoError(t, err)

	require.Len(t, result.Products, 1)
	assert.Equal(t, "B0000000BB", result.Products[0].ASIN)
	assert.Equal(t, 1, result.Products[0].Rank)
}

func TestAggregateAndRank_StableTies(t *testing.T) {
	service := NewService()

	// Três produtos com a mesma receita: empates preservam a ordem de
	// chegada no relatório
	items := []domain.LineItem{
		{ASIN: "B0000000CC", Revenue: 25},
		{ASIN: "B0000000AA", Revenue: 25},
		{ASIN: "B0000000BB", Revenue: 25},
		{ASIN: "B0000000DD", Revenue: 90},
	}

	result, err := service.AggregateAndRank(items, Options{RankBy: "revenue"})
	require.NoError(t, err)
	require.Len(t, result.Products, 4)

	assert.Equal(t, "B0000000DD", result.Products[0].ASIN)
	assert.Equal(t, "B0000000CC", result.Products[1].ASIN)
	assert.Equal(t, "B0000000AA", result.Products[2].ASIN)
	assert.Equal(t, "B0000000BB", result.Products[3].ASIN)

	for i, product := range result.Products {
		assert.Equal(t, i+1, product.Rank)
	}
}

func TestAggregateAndRank_TopNPreservesRanks(t *testing.T) {
	service := NewService()

	items := []domain.LineItem{
		{ASIN: "B0000000AA", Revenue: 10},
		{ASIN: "B0000000BB", Revenue: 50},
		{ASIN: "B0000000CC", Revenue: 30},
	}

	full, err := service.AggregateAndRank(items, Options{RankBy: "revenue"})
	require.NoError(t, err)

	truncated, err := service.AggregateAndRank(items, Options{RankBy: "revenue", TopN: 2})
	require.NoError(t, err)

	// Os ranks não são renumerados pelo corte: o mesmo produto tem o mesmo
	// rank com ou sem topN
	require.Len(t, truncated.Products, 2)
	for i, product := range truncated.Products {
		assert.Equal(t, full.Products[i].ASIN, product.ASIN)
		assert.Equal(t, full.Products[i].Rank, product.Rank)
	}
}

func TestAggregateAndRank_Filters(t *testing.T) {
	service := NewService()

	items := []domain.LineItem{
		{ASIN: "B0000000AA", Revenue: 10, OrderedItems: 1},
		{ASIN: "B0000000BB", Revenue: 50, OrderedItems: 5},
		{ASIN: "B0000000CC", Revenue: 30, OrderedItems: 3},
	}

	tests := []struct {
		name     string
		filters  *Filters
		expected []string
	}{
		{
			name:     "Piso de receita descarta produtos abaixo do valor",
			filters:  &Filters{MinValues: map[string]float64{"revenue": 20}},
			expected: []string{"B0000000BB", "B0000000CC"},
		},
		{
			name:     "Lista de inclusão mantém apenas os ASINs informados",
			filters:  &Filters{IncludeASINs: []string{"B0000000AA", "B0000000CC"}},
			expected: []string{"B0000000CC", "B0000000AA"},
		},
		{
			name:     "Lista de exclusão descarta os ASINs informados",
			filters:  &Filters{ExcludeASINs: []string{"B0000000BB"}},
			expected: []string{"B0000000CC", "B0000000AA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.AggregateAndRank(items, Options{RankBy: "revenue", Filters: tt.filters})
			require.NoError(t, err)

			asins := make([]string, 0, len(result.Products))
			for i, product := range result.Products {
				asins = append(asins, product.ASIN)
				// Os ranks refletem a lista filtrada
				assert.Equal(t, i+1, product.Rank)
			}
			assert.Equal(t, tt.expected, asins)
		})
	}
}

func TestAggregate_PartitionsMergeIntoWhole(t *testing.T) {
	items := []domain.LineItem{
		{ASIN: "B0000000A1", OrderedItems: 5, Revenue: 100, Earnings: 10, Clicks: 50, SourceTag: "blog"},
		{ASIN: "B0000000B2", OrderedItems: 10, Revenue: 50, Earnings: 5, Clicks: 100, SourceTag: "blog"},
		{ASIN: "B0000000A1", OrderedItems: 3, Revenue: 60, Earnings: 6, Clicks: 30, SourceTag: "social"},
		{ASIN: "B0000000C3", OrderedItems: 2, Revenue: 40, Earnings: 4},
		{ASIN: "B0000000B2", OrderedItems: 1, Revenue: 10, Earnings: 1, Clicks: 20, SourceTag: "newsletter"},
		{ASIN: "B0000000A1", OrderedItems: 2, Revenue: 20, Earnings: 2, Clicks: 10, SourceTag: "blog"},
	}

	whole, wholeSummary := aggregate(items)

	// Agregar duas partições em separado e somar os grupos por ASIN chega no
	// mesmo resultado da agregação do conjunto inteiro, para qualquer corte
	for split := 0; split <= len(items); split++ {
		left, leftSummary := aggregate(items[:split])
		right, rightSummary := aggregate(items[split:])

		merged := mergeAggregates(left, right)

		require.Len(t, merged, len(whole), "corte no índice %d", split)
		for i, product := range whole {
			assert.Equal(t, product, merged[i], "corte no índice %d", split)
		}

		assert.Equal(t, wholeSummary.ProductCount, len(merged))
		assert.Equal(t, wholeSummary.TotalOrderedItems, leftSummary.TotalOrderedItems+rightSummary.TotalOrderedItems)
		assert.Equal(t, wholeSummary.TotalRevenue, leftSummary.TotalRevenue+rightSummary.TotalRevenue)
		assert.Equal(t, wholeSummary.TotalEarnings, leftSummary.TotalEarnings+rightSummary.TotalEarnings)
		assert.Equal(t, wholeSummary.TotalClicks, leftSummary.TotalClicks+rightSummary.TotalClicks)
	}
}

// mergeAggregates soma os grupos de duas agregações parciais por ASIN e
// recalcula as métricas derivadas sobre os totais
func mergeAggregates(left, right []*domain.AggregatedProduct) []*domain.AggregatedProduct {
	groups := make(map[string]*domain.AggregatedProduct)
	order := make([]string, 0, len(left)+len(right))

	for _, partition := range [][]*domain.AggregatedProduct{left, right} {
		for _, product := range partition {
			merged, ok := groups[product.ASIN]
			if !ok {
				merged = &domain.AggregatedProduct{ASIN: product.ASIN}
				groups[product.ASIN] = merged
				order = append(order, product.ASIN)
			}

			merged.OrderedItems += product.OrderedItems
			merged.Revenue += product.Revenue
			merged.Earnings += product.Earnings
			merged.Clicks += product.Clicks

			for _, tag := range product.SourceTags {
				if !containsTag(merged.SourceTags, tag) {
					merged.SourceTags = append(merged.SourceTags, tag)
				}
			}
		}
	}

	result := make([]*domain.AggregatedProduct, 0, len(order))
	for _, asin := range order {
		product := groups[asin]
		product.ComputeDerivedMetrics()
		result = append(result, product)
	}

	return result
}

func TestAggregateAndRank_InvalidRankKey(t *testing.T) {
	service := NewService()

	_, err := service.AggregateAndRank(nil, Options{RankBy: "priceness"})
	require.Error(t, err)

	var rankErr *InvalidRankKeyError
	require.ErrorAs(t, err, &rankErr)

	// O erro lista as chaves válidas
	assert.Contains(t, err.Error(), "priceness")
	assert.Contains(t, err.Error(), "revenue")
	assert.Contains(t, err.Error(), "conversionRate")
}

func TestAggregateAndRank_UnknownFilterMetric(t *testing.T) {
	service := NewService()

	_, err := service.AggregateAndRank(nil, Options{
		RankBy:  "revenue",
		Filters: &Filters{MinValues: map[string]float64{"margem": 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "margem")
}

func TestAggregateAndRank_ZeroDivisionSafety(t *testing.T) {
	service := NewService()

	// Sem cliques e sem pedidos: métricas derivadas ficam em 0
	items := []domain.LineItem{
		{ASIN: "B0000000AA", Revenue: 10},
	}

	result, err := service.AggregateAndRank(items, Options{RankBy: "conversionRate"})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)

	product := result.Products[0]
	assert.Equal(t, 0.0, product.ConversionRate)
	assert.Equal(t, 0.0, product.RevenuePerClick)
	assert.Equal(t, 0.0, product.AverageOrderValue)
}
