package parsing

import "strings"

// Role é o papel semântico de uma coluna do relatório
type Role string

const (
	RoleID           Role = "id"
	RoleOrderedItems Role = "orderedItems"
	RoleRevenue      Role = "revenue"
	RoleEarnings     Role = "earnings"
	RoleClicks       Role = "clicks"
	RoleSourceTag    Role = "sourceTag"
)

// roleAliases mapeia cada papel para os cabeçalhos aceitos, já em minúsculas.
// Os relatórios dos associados variam de formato conforme a origem e o idioma
// da exportação; a resolução é por nome, independente da ordem das colunas.
var roleAliases = map[Role][]string{
	RoleID: {
		"asin",
		"child asin",
		"(child) asin",
		"product id",
		"item id",
		"codigo do produto",
		"código do produto",
	},
	RoleOrderedItems: {
		"ordered items",
		"items ordered",
		"units ordered",
		"qty",
		"quantity",
		"itens pedidos",
		"itens encomendados",
		"unidades pedidas",
	},
	RoleRevenue: {
		"revenue",
		"ordered revenue",
		"product sales",
		"revenue($)",
		"receita",
		"vendas de produtos",
		"faturamento",
	},
	RoleEarnings: {
		"earnings",
		"ad fees",
		"fees",
		"commission",
		"earnings($)",
		"ganhos",
		"comissao",
		"comissão",
	},
	RoleClicks: {
		"clicks",
		"click-throughs",
		"clickthroughs",
		"cliques",
	},
	RoleSourceTag: {
		"tag",
		"tracking id",
		"tracking tag",
		"id de rastreamento",
	},
}

// requiredRoles são os papéis sem os quais o parse falha
var requiredRoles = []Role{RoleID, RoleOrderedItems, RoleRevenue, RoleEarnings}

// numericRoles são os papéis cujos valores passam por coerção numérica
var numericRoles = []Role{RoleOrderedItems, RoleRevenue, RoleEarnings, RoleClicks}

// columnMap resolve papel -> índice da coluna no cabeçalho
type columnMap map[Role]int

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// resolveColumns resolve cada papel para o primeiro cabeçalho que casa com
// algum alias. Retorna também os papéis obrigatórios não resolvidos.
func resolveColumns(headers []string) (columnMap, []Role) {
	normalized := make([]string, len(headers))
	for i, header := range headers {
		normalized[i] = normalizeHeader(header)
	}

	columns := make(columnMap)

	for role, aliases := range roleAliases {
		for i, header := range normalized {
			if header == "" {
				continue
			}

			for _, alias := range aliases {
				if header == alias {
					if _, resolved := columns[role]; !resolved {
						columns[role] = i
					}
					break
				}
			}
		}
	}

	missing := make([]Role, 0)
	for _, role := range requiredRoles {
		if _, ok := columns[role]; !ok {
			missing = append(missing, role)
		}
	}

	return columns, missing
}

// headerRowIndicators verifica se uma linha parece ser o cabeçalho real do
// relatório: precisa conter um indicador de coluna de identificador e um de
// coluna de métrica
func looksLikeHeaderRow(row []string) bool {
	hasID := false
	hasMetric := false

	for _, cell := range row {
		header := normalizeHeader(cell)
		if header == "" {
			continue
		}

		for _, alias := range roleAliases[RoleID] {
			if header == alias {
				hasID = true
			}
		}

		for _, role := range numericRoles {
			for _, alias := range roleAliases[role] {
				if header == alias {
					hasMetric = true
				}
			}
		}
	}

	return hasID && hasMetric
}
