package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/product-feed-api/internal/config"
	"github.com/vfg2006/product-feed-api/internal/usecases/generating"
	"github.com/vfg2006/product-feed-api/internal/usecases/parsing"
	"github.com/vfg2006/product-feed-api/internal/usecases/ranking"
	"github.com/vfg2006/product-feed-api/pkg/apiErrors"
	"github.com/vfg2006/product-feed-api/pkg/log"
)

// reportFormField é o nome do campo multipart com o arquivo do relatório
const reportFormField = "report"

// UploadReport recebe o relatório de desempenho por upload e roda o pipeline
// completo, devolvendo o feed gerado e o resumo da execução
func UploadReport(generator generating.FeedGenerator, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		maxBytes := int64(cfg.ReportUploads.MaxSizeMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrReportTooLarge,
				"Relatório acima do tamanho máximo permitido", map[string]any{
					"max_size_mb": cfg.ReportUploads.MaxSizeMB,
				})
			return
		}

		file, header, err := r.FormFile(reportFormField)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData,
				"Arquivo do relatório ausente no campo 'report'", nil)
			return
		}
		defer file.Close()

		run, err := generator.GenerateFromReader(r.Context(), header.Filename, file)
		if err != nil {
			writeGenerationError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(run); err != nil {
			logger.WithError(err).Error("Erro ao enviar a resposta da geração do feed")
		}
	}
}

// GetFeed devolve um feed já gerado pelo identificador da execução
func GetFeed(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		feedID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		// O identificador compõe o nome do arquivo: nada de separadores
		if feedID == "" || strings.ContainsAny(feedID, "./\\") {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"Identificador de feed inválido", nil)
			return
		}

		feedPath := filepath.Join(cfg.Feed.OutputDir, "feed-"+feedID+".json")

		payload, err := os.ReadFile(feedPath)
		if err != nil {
			if os.IsNotExist(err) {
				apiErrors.WriteError(w, apiErrors.ErrFeedNotFound,
					"Nenhum feed encontrado para o identificador", map[string]any{
						"feed_id": feedID,
					})
				return
			}

			logger.WithError(err).Error("Erro ao ler o feed do disco")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler o feed", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(payload); err != nil {
			logger.WithError(err).Error("Erro ao enviar o feed")
		}
	}
}

// writeGenerationError traduz as falhas do pipeline para os códigos da API
func writeGenerationError(w http.ResponseWriter, logger log.Logger, err error) {
	var missingErr *parsing.MissingColumnsError
	var rankErr *ranking.InvalidRankKeyError

	switch {
	case errors.As(err, &missingErr):
		apiErrors.WriteError(w, apiErrors.ErrMissingColumns, missingErr.Error(), map[string]any{
			"missing_roles":     missingErr.MissingRoles,
			"available_headers": missingErr.AvailableHeaders,
		})

	case errors.Is(err, parsing.ErrUnsupportedFormat):
		writeFromError(w, err, apiErrors.ErrUnsupportedFormat)

	case errors.Is(err, parsing.ErrEmptyReport):
		writeFromError(w, err, apiErrors.ErrReportUnreadable)

	case errors.As(err, &rankErr):
		writeFromError(w, err, apiErrors.ErrInvalidRankKey)

	default:
		logger.WithError(err).Error("Erro ao gerar o feed")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar o feed", nil)
	}
}

func writeFromError(w http.ResponseWriter, err error, code string) {
	apiErr := apiErrors.FromError(err, code)
	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
