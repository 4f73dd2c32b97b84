package enriching

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon"
	"github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon/paapiclient"
	"github.com/vfg2006/product-feed-api/internal/config"
	"github.com/vfg2006/product-feed-api/internal/domain"
)

// Sleeper isola as esperas de pacing e backoff do relógio real
type Sleeper interface {
	Sleep(d time.Duration)
}

type defaultSleeper struct{}

func (defaultSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}

type Enricher interface {
	Enrich(ctx context.Context, products []*domain.AggregatedProduct) (*domain.EnrichmentResult, error)
}

// Service enriquece os produtos ranqueados com os atributos de catálogo da
// PA-API. Os lotes são processados estritamente em sequência: a cota da API
// é de uma requisição por segundo e o excesso arrisca throttling da conta.
type Service struct {
	cfg           *config.Config
	amazonService amazon.AmazonIntegrator
	sleeper       Sleeper
}

func NewService(cfg *config.Config, amazonService amazon.AmazonIntegrator) Enricher {
	return &Service{
		cfg:           cfg,
		amazonService: amazonService,
		sleeper:       defaultSleeper{},
	}
}

// Enrich particiona os produtos em lotes, chama a PA-API respeitando o
// intervalo mínimo entre lotes e consolida sucessos e falhas por ASIN
func (s *Service) Enrich(ctx context.Context, products []*domain.AggregatedProduct) (*domain.EnrichmentResult, error) {
	start := time.Now()

	byASIN := make(map[string]*domain.AggregatedProduct, len(products))
	asins := make([]string, 0, len(products))
	for _, product := range products {
		byASIN[product.ASIN] = product
		asins = append(asins, product.ASIN)
	}

	batches := chunk(asins, s.cfg.Amazon.BatchSize)
	result := &domain.EnrichmentResult{}

	for i, batch := range batches {
		// O intervalo vale entre lotes consecutivos, nunca depois do último
		if i > 0 {
			s.sleeper.Sleep(s.cfg.Amazon.BatchDelay())
		}

		// Cancelamento só é observado entre lotes: um lote em andamento
		// corre até o fim
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "enriquecimento interrompido")
		}

		batchResult := s.enrichBatch(ctx, batch)

		for _, attrs := range batchResult.Attributes {
			enriched := domain.MergeRemoteAttributes(*byASIN[attrs.ASIN], attrs)
			result.Enriched = append(result.Enriched, enriched)
		}

		for _, failure := range batchResult.Failures {
			result.Failed = append(result.Failed, failure.ASIN)
			result.Errors = append(result.Errors, failure)
		}
	}

	result.Stats = domain.EnrichmentStats{
		TotalRequested: len(asins),
		EnrichedCount:  len(result.Enriched),
		FailedCount:    len(result.Failed),
		BatchCount:     len(batches),
		ElapsedMs:      time.Since(start).Milliseconds(),
	}

	if result.Stats.TotalRequested > 0 {
		result.Stats.SuccessRate = float64(result.Stats.EnrichedCount) / float64(result.Stats.TotalRequested)
	}

	logrus.WithFields(logrus.Fields{
		"total_requested": result.Stats.TotalRequested,
		"enriched":        result.Stats.EnrichedCount,
		"failed":          result.Stats.FailedCount,
		"batches":         result.Stats.BatchCount,
		"success_rate":    result.Stats.SuccessRate,
		"elapsed_ms":      result.Stats.ElapsedMs,
	}).Info("Enriquecimento concluído")

	return result, nil
}

// enrichBatch executa um lote com retry e backoff exponencial. Só falhas de
// transporte, throttling e erros de servidor são retentadas: a rejeição item
// a item é um desfecho definitivo e não consome tentativas.
func (s *Service) enrichBatch(ctx context.Context, batch []string) domain.BatchResult {
	maxAttempts := s.cfg.Amazon.MaxAttempts

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		response, err := s.amazonService.GetItemsByASINs(ctx, batch)
		if err == nil {
			return buildBatchResult(batch, response, s.cfg.Amazon.Marketplace, s.cfg.Amazon.PartnerTag)
		}

		lastErr = err

		var reqErr *paapiclient.RequestError
		retryable := errors.As(err, &reqErr) && reqErr.Retryable

		if !retryable || attempt == maxAttempts {
			break
		}

		backoff := s.cfg.Amazon.BackoffBase() << (attempt - 1)

		logrus.WithFields(logrus.Fields{
			"attempt":    attempt,
			"backoff":    backoff.String(),
			"item_count": len(batch),
			"error":      err.Error(),
		}).Warn("Falha no lote de enriquecimento, tentando novamente")

		s.sleeper.Sleep(backoff)
	}

	// Tentativas esgotadas ou rejeição definitiva: todo ASIN do lote falha
	// com o código sintético de falha de lote
	failures := make([]domain.ItemFailure, 0, len(batch))
	for _, asin := range batch {
		failures = append(failures, domain.ItemFailure{
			ASIN:    asin,
			Code:    domain.ErrorCodeBatchRequestFailed,
			Message: lastErr.Error(),
		})
	}

	return domain.BatchResult{Failures: failures}
}

// chunk particiona os ASINs em lotes de tamanho fixo, preservando a ordem
func chunk(asins []string, size int) [][]string {
	if len(asins) == 0 {
		return nil
	}

	batches := make([][]string, 0, (len(asins)+size-1)/size)
	for start := 0; start < len(asins); start += size {
		end := start + size
		if end > len(asins) {
			end = len(asins)
		}
		batches = append(batches, asins[start:end])
	}

	return batches
}
