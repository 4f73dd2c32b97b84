package domain

import "time"

// TopProduct é a visão resumida de um produto bem ranqueado para o notificador
type TopProduct struct {
	ASIN    string  `json:"asin"`
	Rank    int     `json:"rank"`
	Title   string  `json:"title"`
	Revenue float64 `json:"revenue"`
}

// RunSummary é o payload estruturado que o notificador externo consome para
// montar a mensagem de resumo, sem precisar rederivar nada do feed
type RunSummary struct {
	RunID          string       `json:"run_id"`
	FeedPath       string       `json:"feed_path"`
	GeneratedAt    time.Time    `json:"generated_at"`
	ReportRows     int          `json:"report_rows"`
	ValidRows      int          `json:"valid_rows"`
	TotalProducts  int          `json:"total_products"`
	EnrichedCount  int          `json:"enriched_count"`
	FailedCount    int          `json:"failed_count"`
	SuccessRate    float64      `json:"success_rate"`
	LowSuccessRate bool         `json:"low_success_rate"`
	RankBy         string       `json:"rank_by"`
	TopProducts    []TopProduct `json:"top_products"`
	TotalRevenue   float64      `json:"total_revenue"`
	TotalEarnings  float64      `json:"total_earnings"`
	ProductsOnSale int          `json:"products_on_sale"`
}

// FeedRun é o resultado completo de uma execução do pipeline
type FeedRun struct {
	Feed    *Feed       `json:"feed"`
	Summary *RunSummary `json:"summary"`
}
