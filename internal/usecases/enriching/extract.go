package enriching

import (
	"fmt"
	"math"
	"strings"

	amazondomain "github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/product-feed-api/internal/domain"
	"github.com/vfg2006/product-feed-api/pkg/utils"
)

// buildBatchResult consolida a resposta de um lote. Todo ASIN requisitado
// termina em exatamente uma das duas listas: atributos extraídos, rejeição
// explícita da API ou, na ausência de ambos, falha sintética de sem resposta.
func buildBatchResult(requested []string, response *amazondomain.GetItemsResponse, marketplace, partnerTag string) domain.BatchResult {
	attrsByASIN := make(map[string]domain.RemoteAttributes)
	if response.ItemsResult != nil {
		for _, item := range response.ItemsResult.Items {
			attrsByASIN[item.ASIN] = extractAttributes(item, marketplace, partnerTag)
		}
	}

	failuresByASIN := make(map[string]domain.ItemFailure)
	for _, itemErr := range response.Errors {
		asin := matchASIN(itemErr.Message, requested)
		if asin == "" {
			continue
		}

		failuresByASIN[asin] = domain.ItemFailure{
			ASIN:    asin,
			Code:    itemErr.Code,
			Message: itemErr.Message,
		}
	}

	var result domain.BatchResult

	for _, asin := range requested {
		if attrs, ok := attrsByASIN[asin]; ok {
			result.Attributes = append(result.Attributes, attrs)
			continue
		}

		if failure, ok := failuresByASIN[asin]; ok {
			result.Failures = append(result.Failures, failure)
			continue
		}

		result.Failures = append(result.Failures, domain.ItemFailure{
			ASIN:    asin,
			Code:    domain.ErrorCodeNoResponse,
			Message: "o item não apareceu na resposta da PA-API",
		})
	}

	return result
}

// matchASIN localiza na mensagem de erro o ASIN rejeitado. A PA-API não
// devolve o ASIN em um campo próprio, só embutido no texto da mensagem.
func matchASIN(message string, requested []string) string {
	tokens := strings.FieldsFunc(message, func(r rune) bool {
		return !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})

	for _, token := range tokens {
		candidate := domain.NormalizeASIN(token)
		if !domain.IsValidASIN(candidate) {
			continue
		}

		for _, asin := range requested {
			if candidate == asin {
				return asin
			}
		}
	}

	return ""
}

// extractAttributes mapeia um item da resposta para os atributos do feed,
// aplicando os fallbacks de cada campo
func extractAttributes(item amazondomain.Item, marketplace, partnerTag string) domain.RemoteAttributes {
	attrs := domain.RemoteAttributes{
		ASIN:         item.ASIN,
		Title:        domain.FallbackTitle,
		Currency:     domain.FallbackCurrency,
		Availability: domain.FallbackAvailability,
	}

	if item.ItemInfo != nil && item.ItemInfo.Title != nil && item.ItemInfo.Title.DisplayValue != "" {
		attrs.Title = item.ItemInfo.Title.DisplayValue
	}

	if item.Images != nil && item.Images.Primary != nil && item.Images.Primary.Medium != nil {
		if url := item.Images.Primary.Medium.URL; url != "" {
			attrs.ImageURL = &url
		}
	}

	if listing := firstListing(item.Offers); listing != nil {
		if listing.Price != nil {
			amount := listing.Price.Amount
			attrs.Price = &amount

			if listing.Price.Currency != "" {
				attrs.Currency = listing.Price.Currency
			}
		}

		if listing.Availability != nil && listing.Availability.Type != "" {
			attrs.Availability = listing.Availability.Type
		}

		attrs.Sale = deriveSale(listing)
	}

	attrs.DetailURL = item.DetailPageURL
	if attrs.DetailURL == "" {
		attrs.DetailURL = fmt.Sprintf("https://%s/dp/%s?tag=%s", marketplace, item.ASIN, partnerTag)
	}

	return attrs
}

// deriveSale deriva os campos de promoção a partir do preço de lista. Os
// quatro campos nascem juntos: sem preço de lista estritamente maior que o
// preço atual, nenhum campo de promoção existe.
func deriveSale(listing *amazondomain.Listing) *domain.SaleInfo {
	if listing.Price == nil || listing.SavingBasis == nil {
		return nil
	}

	price := listing.Price.Amount
	listPrice := listing.SavingBasis.Amount

	if listPrice <= price {
		return nil
	}

	discount := listPrice - price

	return &domain.SaleInfo{
		OriginalPrice:      listPrice,
		DiscountAmount:     utils.RoundWithTwoDecimalPlace(discount),
		DiscountPercentage: int(math.Round(discount / listPrice * 100)),
	}
}

func firstListing(offers *amazondomain.Offers) *amazondomain.Listing {
	if offers == nil || len(offers.Listings) == 0 {
		return nil
	}
	return &offers.Listings[0]
}
