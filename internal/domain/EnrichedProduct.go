package domain

// Valores de fallback aplicados quando a PA-API não retorna o atributo
const (
	FallbackTitle        = "Unknown Product"
	FallbackCurrency     = "USD"
	FallbackAvailability = "Unknown"
)

// SaleInfo agrupa os campos de promoção. Os quatro campos são derivados
// juntos a partir do preço de lista (saving basis): ou todos existem, ou
// nenhum existe — nunca um subconjunto.
type SaleInfo struct {
	OriginalPrice      float64
	DiscountAmount     float64
	DiscountPercentage int
}

// RemoteAttributes são os atributos extraídos da resposta da PA-API para um ASIN
type RemoteAttributes struct {
	ASIN         string
	Title        string
	Price        *float64
	Currency     string
	ImageURL     *string
	DetailURL    string
	Availability string
	Sale         *SaleInfo
}

// EnrichedProduct é o AggregatedProduct com os atributos remotos mesclados.
// Todos os campos calculados pela agregação são preservados.
type EnrichedProduct struct {
	AggregatedProduct

	Title        string
	Price        *float64
	Currency     string
	ImageURL     *string
	DetailURL    string
	Availability string
	Sale         *SaleInfo
}

// IsOnSale indica se o produto está em promoção
func (p *EnrichedProduct) IsOnSale() bool {
	return p.Sale != nil
}

// MergeRemoteAttributes aplica os atributos remotos sobre o produto agregado
func MergeRemoteAttributes(product AggregatedProduct, attrs RemoteAttributes) EnrichedProduct {
	return EnrichedProduct{
		AggregatedProduct: product,
		Title:             attrs.Title,
		Price:             attrs.Price,
		Currency:          attrs.Currency,
		ImageURL:          attrs.ImageURL,
		DetailURL:         attrs.DetailURL,
		Availability:      attrs.Availability,
		Sale:              attrs.Sale,
	}
}
