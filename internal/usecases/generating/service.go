package generating

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/product-feed-api/internal/config"
	"github.com/vfg2006/product-feed-api/internal/domain"
	"github.com/vfg2006/product-feed-api/internal/usecases/enriching"
	"github.com/vfg2006/product-feed-api/internal/usecases/feeding"
	"github.com/vfg2006/product-feed-api/internal/usecases/parsing"
	"github.com/vfg2006/product-feed-api/internal/usecases/ranking"
	"github.com/vfg2006/product-feed-api/pkg/utils"
)

// topProductsLimit é quantos produtos bem ranqueados entram no resumo para o notificador
const topProductsLimit = 5

// FeedGenerator orquestra o pipeline completo: parse do relatório, agregação
// e ranking, enriquecimento na PA-API e montagem do feed
type FeedGenerator interface {
	GenerateFromFile(ctx context.Context, reportPath string) (*domain.FeedRun, error)
	GenerateFromReader(ctx context.Context, filename string, reader io.Reader) (*domain.FeedRun, error)
}

type Service struct {
	cfg       *config.Config
	parser    parsing.ReportParser
	ranker    ranking.Ranker
	enricher  enriching.Enricher
	assembler feeding.Assembler
}

func NewService(
	cfg *config.Config,
	parser parsing.ReportParser,
	ranker ranking.Ranker,
	enricher enriching.Enricher,
	assembler feeding.Assembler,
) FeedGenerator {
	return &Service{
		cfg:       cfg,
		parser:    parser,
		ranker:    ranker,
		enricher:  enricher,
		assembler: assembler,
	}
}

// GenerateFromFile roda o pipeline sobre um relatório no disco, usado pela
// sincronização agendada
func (s *Service) GenerateFromFile(ctx context.Context, reportPath string) (*domain.FeedRun, error) {
	file, err := os.Open(reportPath)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir o relatório")
	}
	defer file.Close()

	return s.GenerateFromReader(ctx, filepath.Base(reportPath), file)
}

// GenerateFromReader roda o pipeline sobre um relatório já aberto, usado pelo
// upload via API
func (s *Service) GenerateFromReader(ctx context.Context, filename string, reader io.Reader) (*domain.FeedRun, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar o identificador da execução")
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id":   runID,
		"filename": filename,
	})

	parseResult, err := s.parser.ParseReport(filename, reader, parsing.Options{
		Strict: s.cfg.ReportUploads.StrictMode,
	})
	if err != nil {
		return nil, err
	}

	rankResult, err := s.ranker.AggregateAndRank(parseResult.Items, ranking.Options{
		RankBy: s.cfg.Feed.RankBy,
		TopN:   s.cfg.Feed.TopN,
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"valid_rows": parseResult.Diagnostics.ValidRows,
		"products":   len(rankResult.Products),
		"rank_by":    s.cfg.Feed.RankBy,
	}).Info("Relatório agregado e ranqueado")

	enrichment, err := s.enricher.Enrich(ctx, rankResult.Products)
	if err != nil {
		return nil, err
	}

	generatedAt := time.Now().UTC()

	feed := s.assembler.Assemble(enrichment, feeding.Options{
		FeedID:      runID,
		RankBy:      s.cfg.Feed.RankBy,
		SalesOnly:   s.cfg.Feed.SalesOnly,
		GeneratedAt: generatedAt,
	})

	feedPath, err := s.writeFeed(runID, feed)
	if err != nil {
		return nil, err
	}

	summary := buildSummary(runID, feedPath, generatedAt, s.cfg.Feed.RankBy, parseResult, feed)

	logger.WithFields(logrus.Fields{
		"feed_path":    feedPath,
		"status":       feed.Status,
		"products":     feed.Metadata.TotalProducts,
		"success_rate": feed.Metadata.SuccessRate,
	}).Info("Feed gerado")

	logger.Debug("Resumo da execução: ", utils.PrettyJson(summary))

	return &domain.FeedRun{Feed: feed, Summary: summary}, nil
}

func (s *Service) writeFeed(runID string, feed *domain.Feed) (string, error) {
	payload, err := feeding.Serialize(feed)
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar o feed")
	}

	if err := os.MkdirAll(s.cfg.Feed.OutputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "erro ao criar o diretório de feeds")
	}

	feedPath := filepath.Join(s.cfg.Feed.OutputDir, fmt.Sprintf("feed-%s.json", runID))

	if err := os.WriteFile(feedPath, payload, 0o644); err != nil {
		return "", errors.Wrap(err, "erro ao gravar o feed")
	}

	return feedPath, nil
}

// buildSummary monta o payload estruturado que o notificador externo consome
// sem precisar rederivar nada do feed
func buildSummary(
	runID, feedPath string,
	generatedAt time.Time,
	rankBy string,
	parseResult *parsing.Result,
	feed *domain.Feed,
) *domain.RunSummary {
	limit := topProductsLimit
	if len(feed.Products) < limit {
		limit = len(feed.Products)
	}

	topProducts := make([]domain.TopProduct, 0, limit)
	for _, product := range feed.Products[:limit] {
		topProducts = append(topProducts, domain.TopProduct{
			ASIN:    product.ASIN,
			Rank:    product.Rank,
			Title:   product.Title,
			Revenue: product.Revenue,
		})
	}

	return &domain.RunSummary{
		RunID:          runID,
		FeedPath:       feedPath,
		GeneratedAt:    generatedAt,
		ReportRows:     parseResult.Diagnostics.TotalRows,
		ValidRows:      parseResult.Diagnostics.ValidRows,
		TotalProducts:  feed.Metadata.TotalProducts,
		EnrichedCount:  feed.Metadata.EnrichedCount,
		FailedCount:    feed.Metadata.FailedCount,
		SuccessRate:    feed.Metadata.SuccessRate,
		LowSuccessRate: feed.Metadata.LowSuccessRate,
		RankBy:         rankBy,
		TopProducts:    topProducts,
		TotalRevenue:   feed.Metadata.TotalRevenue,
		TotalEarnings:  feed.Metadata.TotalEarnings,
		ProductsOnSale: feed.Metadata.ProductsOnSale,
	}
}
