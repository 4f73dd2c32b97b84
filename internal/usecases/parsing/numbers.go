package parsing

import (
	"math"
	"strconv"
	"strings"
)

// currencyReplacer remove símbolos de moeda e separadores de milhar antes da
// conversão numérica. Relatórios exportados trazem valores como "R$ 1.234,56"
// ou "$1,234.56" dependendo da localidade.
var currencyReplacer = strings.NewReplacer(
	"R$", "",
	"US$", "",
	"$", "",
	"€", "",
	"£", "",
	"%", "",
	"\u00a0", "",
	" ", "",
)

// coerceNumber converte o texto de uma célula em número. A coerção nunca
// falha: células vazias, texto não numérico, NaN e infinitos viram 0.
func coerceNumber(raw string) float64 {
	cell := currencyReplacer.Replace(strings.TrimSpace(raw))
	if cell == "" {
		return 0
	}

	// Com separador de milhar e decimal presentes ("1.234,56"), o último
	// separador é o decimal. Com apenas vírgulas, a vírgula final é decimal
	// e as demais são de milhar.
	cell = normalizeSeparators(cell)

	value, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}

	if value < 0 {
		return 0
	}

	return value
}

func normalizeSeparators(cell string) string {
	lastComma := strings.LastIndex(cell, ",")
	lastDot := strings.LastIndex(cell, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// formato brasileiro: ponto de milhar, vírgula decimal
			cell = strings.ReplaceAll(cell, ".", "")
			cell = strings.Replace(cell, ",", ".", 1)
		} else {
			cell = strings.ReplaceAll(cell, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(cell, ",") == 1 && len(cell)-lastComma-1 != 3 {
			cell = strings.Replace(cell, ",", ".", 1)
		} else {
			cell = strings.ReplaceAll(cell, ",", "")
		}
	}

	return cell
}
