package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vfg2006/product-feed-api/internal/domain"
)

// metricGetters expõe todos os campos somados e derivados de um produto
// agregado, tanto para ordenação quanto para filtros de valor mínimo
var metricGetters = map[string]func(*domain.AggregatedProduct) float64{
	"orderedItems":      func(p *domain.AggregatedProduct) float64 { return p.OrderedItems },
	"revenue":           func(p *domain.AggregatedProduct) float64 { return p.Revenue },
	"earnings":          func(p *domain.AggregatedProduct) float64 { return p.Earnings },
	"clicks":            func(p *domain.AggregatedProduct) float64 { return p.Clicks },
	"conversionRate":    func(p *domain.AggregatedProduct) float64 { return p.ConversionRate },
	"revenuePerClick":   func(p *domain.AggregatedProduct) float64 { return p.RevenuePerClick },
	"earningsPerClick":  func(p *domain.AggregatedProduct) float64 { return p.EarningsPerClick },
	"averageOrderValue": func(p *domain.AggregatedProduct) float64 { return p.AverageOrderValue },
}

// RankKeys são as chaves de ordenação aceitas
var RankKeys = []string{"orderedItems", "revenue", "earnings", "conversionRate", "revenuePerClick"}

// InvalidRankKeyError é retornado antes de qualquer chamada externa quando a
// chave de ranking não é reconhecida
type InvalidRankKeyError struct {
	Key string
}

func (e *InvalidRankKeyError) Error() string {
	return fmt.Sprintf("chave de ranking inválida %q, use uma de: %s",
		e.Key, strings.Join(RankKeys, ", "))
}

// Filters restringe os produtos considerados antes da atribuição de ranks
type Filters struct {
	// MinValues aplica um piso por métrica, com as mesmas chaves das
	// métricas somadas e derivadas
	MinValues map[string]float64

	// IncludeASINs, quando não vazio, mantém apenas os produtos listados
	IncludeASINs []string

	// ExcludeASINs descarta os produtos listados
	ExcludeASINs []string
}

// Options controla a agregação e o ranking
type Options struct {
	RankBy  string
	TopN    int
	Filters *Filters
}

// Result reúne os produtos ranqueados e o resumo da agregação do relatório
// completo, antes dos filtros
type Result struct {
	Products []*domain.AggregatedProduct
	Summary  domain.AggregationSummary
}

type Ranker interface {
	AggregateAndRank(items []domain.LineItem, opts Options) (*Result, error)
}

type Service struct{}

func NewService() Ranker {
	return &Service{}
}

// AggregateAndRank agrupa os itens de linha por ASIN, calcula as métricas
// derivadas, aplica os filtros e ordena pela chave escolhida
func (s *Service) AggregateAndRank(items []domain.LineItem, opts Options) (*Result, error) {
	rankBy, err := resolveRankKey(opts.RankBy)
	if err != nil {
		return nil, err
	}

	if opts.Filters != nil {
		for metric := range opts.Filters.MinValues {
			if _, ok := metricGetters[metric]; !ok {
				return nil, fmt.Errorf("métrica de filtro desconhecida: %q", metric)
			}
		}
	}

	products, summary := aggregate(items)

	filtered := applyFilters(products, opts.Filters)

	// Ordenação estável: empates preservam a ordem de chegada no relatório
	getter := metricGetters[rankBy]
	sort.SliceStable(filtered, func(i, j int) bool {
		return getter(filtered[i]) > getter(filtered[j])
	})

	for i, product := range filtered {
		product.Rank = i + 1
	}

	// O corte de topN acontece depois da atribuição: os ranks refletem a
	// posição na lista filtrada completa e não mudam conforme o corte
	if opts.TopN > 0 && opts.TopN < len(filtered) {
		filtered = filtered[:opts.TopN]
	}

	return &Result{
		Products: filtered,
		Summary:  summary,
	}, nil
}

func resolveRankKey(key string) (string, error) {
	for _, valid := range RankKeys {
		if key == valid {
			return key, nil
		}
	}
	return "", &InvalidRankKeyError{Key: key}
}

func aggregate(items []domain.LineItem) ([]*domain.AggregatedProduct, domain.AggregationSummary) {
	groups := make(map[string]*domain.AggregatedProduct)
	order := make([]string, 0)

	for _, item := range items {
		product, ok := groups[item.ASIN]
		if !ok {
			product = &domain.AggregatedProduct{ASIN: item.ASIN}
			groups[item.ASIN] = product
			order = append(order, item.ASIN)
		}

		product.OrderedItems += item.OrderedItems
		product.Revenue += item.Revenue
		product.Earnings += item.Earnings
		product.Clicks += item.Clicks

		if item.SourceTag != "" && !containsTag(product.SourceTags, item.SourceTag) {
			product.SourceTags = append(product.SourceTags, item.SourceTag)
		}
	}

	summary := domain.AggregationSummary{ProductCount: len(order)}

	products := make([]*domain.AggregatedProduct, 0, len(order))
	for _, asin := range order {
		product := groups[asin]

		// As métricas derivadas são calculadas uma única vez, depois de
		// somar todas as linhas do grupo
		product.ComputeDerivedMetrics()

		summary.TotalOrderedItems += product.OrderedItems
		summary.TotalRevenue += product.Revenue
		summary.TotalEarnings += product.Earnings
		summary.TotalClicks += product.Clicks

		products = append(products, product)
	}

	return products, summary
}

func applyFilters(products []*domain.AggregatedProduct, filters *Filters) []*domain.AggregatedProduct {
	if filters == nil {
		return products
	}

	include := asSet(filters.IncludeASINs)
	exclude := asSet(filters.ExcludeASINs)

	filtered := make([]*domain.AggregatedProduct, 0, len(products))

	for _, product := range products {
		if len(include) > 0 {
			if _, ok := include[product.ASIN]; !ok {
				continue
			}
		}

		if _, ok := exclude[product.ASIN]; ok {
			continue
		}

		if !meetsMinValues(product, filters.MinValues) {
			continue
		}

		filtered = append(filtered, product)
	}

	return filtered
}

func meetsMinValues(product *domain.AggregatedProduct, minValues map[string]float64) bool {
	for metric, min := range minValues {
		if metricGetters[metric](product) < min {
			return false
		}
	}
	return true
}

func containsTag(tags []string, tag string) bool {
	for _, existing := range tags {
		if existing == tag {
			return true
		}
	}
	return false
}

func asSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
