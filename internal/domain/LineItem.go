package domain

import "strings"

// ASINLength é o comprimento fixo de um ASIN da Amazon
const ASINLength = 10

// LineItem representa uma linha válida do relatório de desempenho do associado.
// Imutável após a criação; linhas com ASIN inválido nunca viram LineItem.
type LineItem struct {
	ASIN         string
	OrderedItems float64
	Revenue      float64
	Earnings     float64
	Clicks       float64
	SourceTag    string
}

// NormalizeASIN remove espaços e normaliza o ASIN para maiúsculas.
// A normalização sempre acontece antes da validação e de qualquer uso do ASIN.
func NormalizeASIN(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsValidASIN valida a sintaxe de um ASIN já normalizado: 10 caracteres,
// alfabeto A-Z0-9 e primeiro caractere alfabético
func IsValidASIN(asin string) bool {
	if len(asin) != ASINLength {
		return false
	}

	first := asin[0]
	if first < 'A' || first > 'Z' {
		return false
	}

	for i := 0; i < len(asin); i++ {
		c := asin[i]
		isLetter := c >= 'A' && c <= 'Z'
		isDigit := c >= '0' && c <= '9'
		if !isLetter && !isDigit {
			return false
		}
	}

	return true
}
