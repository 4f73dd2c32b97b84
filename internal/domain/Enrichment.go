package domain

// Códigos sintéticos de falha do enriquecimento. Distinguem a falha de
// transporte do lote inteiro da rejeição item a item devolvida pela API.
const (
	ErrorCodeBatchRequestFailed = "BATCH_REQUEST_FAILED"
	ErrorCodeNoResponse         = "NO_RESPONSE"
)

// ItemFailure registra a falha definitiva de um ASIN durante o enriquecimento
type ItemFailure struct {
	ASIN    string
	Code    string
	Message string
}

// BatchResult é o desfecho de um lote: todo ASIN requisitado aparece em
// exatamente uma das duas listas
type BatchResult struct {
	Attributes []RemoteAttributes
	Failures   []ItemFailure
}

// EnrichmentStats traz a contabilidade do enriquecimento.
// Invariante: EnrichedCount + FailedCount == TotalRequested.
type EnrichmentStats struct {
	TotalRequested int
	EnrichedCount  int
	FailedCount    int
	BatchCount     int
	SuccessRate    float64
	ElapsedMs      int64
}

// EnrichmentResult é o resultado consolidado de uma execução de enriquecimento
type EnrichmentResult struct {
	Enriched []EnrichedProduct
	Failed   []string
	Errors   []ItemFailure
	Stats    EnrichmentStats
}
