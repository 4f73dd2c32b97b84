package parsing

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/product-feed-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Options controla o comportamento do parse de um relatório
type Options struct {
	// Strict registra nos diagnósticos cada linha descartada, com número e
	// motivo. Sem strict as linhas inválidas são descartadas em silêncio.
	Strict bool
}

// SkippedRow registra uma linha descartada no modo strict. RowNumber é o
// número da linha no arquivo original, começando em 1.
type SkippedRow struct {
	RowNumber int    `json:"rowNumber"`
	Reason    string `json:"reason"`
}

// Diagnostics resume o que foi lido do relatório
type Diagnostics struct {
	TotalRows     int                `json:"totalRows"`
	ValidRows     int                `json:"validRows"`
	DistinctASINs int                `json:"distinctAsins"`
	ColumnSums    map[string]float64 `json:"columnSums"`
	SkippedRows   []SkippedRow       `json:"skippedRows,omitempty"`
	Warnings      []string           `json:"warnings,omitempty"`
}

// Result é a saída do parse: os itens de linha normalizados e os diagnósticos
type Result struct {
	Items       []domain.LineItem `json:"items"`
	Diagnostics Diagnostics       `json:"diagnostics"`
}

// ReportParser lê relatórios de desempenho de associados em CSV ou XLSX
type ReportParser interface {
	ParseReport(filename string, reader io.Reader, opts Options) (*Result, error)
}

type Service struct{}

func NewService() ReportParser {
	return &Service{}
}

// ParseReport detecta o formato pela extensão do arquivo, extrai as linhas e
// as converte em itens normalizados
func (s *Service) ParseReport(filename string, reader io.Reader, opts Options) (*Result, error) {
	var rows [][]string
	var err error

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		rows, err = readCSV(reader)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(reader)
	default:
		return nil, ErrUnsupportedFormat
	}

	if err != nil {
		return nil, err
	}

	result, err := buildResult(rows, opts)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"filename":   filename,
		"total_rows": result.Diagnostics.TotalRows,
		"valid_rows": result.Diagnostics.ValidRows,
		"skipped":    result.Diagnostics.TotalRows - result.Diagnostics.ValidRows,
	}).Info("Relatório de desempenho processado")

	return result, nil
}

func readCSV(reader io.Reader) ([][]string, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o CSV: %w", err)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		// exportações do Excel costumam prefixar o arquivo com BOM
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	return rows, nil
}

func readXLSX(reader io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir a planilha: %w", err)
	}
	defer file.Close()

	sheet := chooseSheet(file.GetSheetList())
	if sheet == "" {
		return nil, ErrEmptyReport
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a aba %q: %w", sheet, err)
	}

	return rows, nil
}

// chooseSheet escolhe a aba de dados quando a planilha tem várias: primeiro
// uma aba de ganhos, depois uma de pedidos, senão a primeira
func chooseSheet(sheets []string) string {
	if len(sheets) == 0 {
		return ""
	}

	for _, sheet := range sheets {
		name := strings.ToLower(sheet)
		if strings.Contains(name, "earning") || strings.Contains(name, "ganho") {
			return sheet
		}
	}

	for _, sheet := range sheets {
		name := strings.ToLower(sheet)
		if strings.Contains(name, "order") || strings.Contains(name, "pedido") {
			return sheet
		}
	}

	return sheets[0]
}

// headerScanLimit limita a busca pelo cabeçalho real quando a planilha tem
// linhas de título ou banner antes dos dados
const headerScanLimit = 10

func findHeaderRow(rows [][]string) int {
	limit := headerScanLimit
	if len(rows) < limit {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		if looksLikeHeaderRow(rows[i]) {
			return i
		}
	}

	return 0
}

func buildResult(rows [][]string, opts Options) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyReport
	}

	headerIdx := findHeaderRow(rows)
	headers := rows[headerIdx]

	columns, missing := resolveColumns(headers)
	if len(missing) > 0 {
		available := make([]string, 0, len(headers))
		for _, header := range headers {
			if strings.TrimSpace(header) != "" {
				available = append(available, strings.TrimSpace(header))
			}
		}

		return nil, &MissingColumnsError{
			MissingRoles:     missing,
			AvailableHeaders: available,
		}
	}

	diagnostics := Diagnostics{
		ColumnSums: map[string]float64{
			string(RoleOrderedItems): 0,
			string(RoleRevenue):      0,
			string(RoleEarnings):     0,
			string(RoleClicks):       0,
		},
	}

	if _, hasClicks := columns[RoleClicks]; !hasClicks {
		diagnostics.Warnings = append(diagnostics.Warnings,
			"coluna de cliques não encontrada, as métricas por clique serão zero")
	}

	items := make([]domain.LineItem, 0, len(rows)-headerIdx-1)
	seen := make(map[string]struct{})

	for i, row := range rows[headerIdx+1:] {
		rowNumber := headerIdx + i + 2

		diagnostics.TotalRows++

		if isEmptyRow(row) {
			skip(&diagnostics, opts, rowNumber, "linha vazia")
			continue
		}

		rawID := cellAt(row, columns[RoleID])
		asin := domain.NormalizeASIN(rawID)

		if asin == "" {
			skip(&diagnostics, opts, rowNumber, "identificador de produto vazio")
			continue
		}

		if !domain.IsValidASIN(asin) {
			skip(&diagnostics, opts, rowNumber,
				fmt.Sprintf("identificador de produto inválido: %q", rawID))
			continue
		}

		item := domain.LineItem{
			ASIN:         asin,
			OrderedItems: coerceNumber(cellAt(row, columns[RoleOrderedItems])),
			Revenue:      coerceNumber(cellAt(row, columns[RoleRevenue])),
			Earnings:     coerceNumber(cellAt(row, columns[RoleEarnings])),
		}

		if idx, ok := columns[RoleClicks]; ok {
			item.Clicks = coerceNumber(cellAt(row, idx))
		}

		if idx, ok := columns[RoleSourceTag]; ok {
			item.SourceTag = strings.TrimSpace(cellAt(row, idx))
		}

		diagnostics.ColumnSums[string(RoleOrderedItems)] += item.OrderedItems
		diagnostics.ColumnSums[string(RoleRevenue)] += item.Revenue
		diagnostics.ColumnSums[string(RoleEarnings)] += item.Earnings
		diagnostics.ColumnSums[string(RoleClicks)] += item.Clicks

		if _, ok := seen[asin]; !ok {
			seen[asin] = struct{}{}
			diagnostics.DistinctASINs++
		}

		diagnostics.ValidRows++
		items = append(items, item)
	}

	return &Result{
		Items:       items,
		Diagnostics: diagnostics,
	}, nil
}

func skip(diagnostics *Diagnostics, opts Options, rowNumber int, reason string) {
	if !opts.Strict {
		return
	}

	diagnostics.SkippedRows = append(diagnostics.SkippedRows, SkippedRow{
		RowNumber: rowNumber,
		Reason:    reason,
	})
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
