package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidRankKey      = "VAL_004" // Métrica de ranking inválida

	// Erros de parsing de relatório (3000-3999)
	ErrReportUnreadable    = "RPT_001" // Arquivo de relatório ilegível
	ErrMissingColumns      = "RPT_002" // Colunas obrigatórias não resolvidas
	ErrUnsupportedFormat   = "RPT_003" // Formato de arquivo não suportado
	ErrReportTooLarge      = "RPT_004" // Arquivo acima do tamanho máximo

	// Erros de feed (4000-4999)
	ErrFeedNotFound = "FEED_001" // Feed não encontrado para o identificador

	// Erros do servidor (5000-5999)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_003" // Erro em serviço externo (PA-API)
	ErrCommunication   = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrInvalidRankKey:      http.StatusBadRequest,
	ErrReportUnreadable:    http.StatusUnprocessableEntity,
	ErrMissingColumns:      http.StatusUnprocessableEntity,
	ErrUnsupportedFormat:   http.StatusUnsupportedMediaType,
	ErrReportTooLarge:      http.StatusRequestEntityTooLarge,
	ErrFeedNotFound:        http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrCommunication:       http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
