package parsing

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedFormat indica uma extensão de arquivo não reconhecida
	ErrUnsupportedFormat = errors.New("formato de relatório não suportado, use CSV ou XLSX")

	// ErrEmptyReport indica um relatório sem nenhuma linha de dados
	ErrEmptyReport = errors.New("relatório sem linhas de dados")
)

// MissingColumnsError é retornado quando o cabeçalho do relatório não contém
// todas as colunas obrigatórias. Lista os papéis ausentes e os cabeçalhos
// encontrados para facilitar o diagnóstico do associado.
type MissingColumnsError struct {
	MissingRoles     []Role
	AvailableHeaders []string
}

func (e *MissingColumnsError) Error() string {
	missing := make([]string, len(e.MissingRoles))
	for i, role := range e.MissingRoles {
		missing[i] = string(role)
	}

	return fmt.Sprintf(
		"colunas obrigatórias ausentes no relatório: %s (cabeçalhos encontrados: %s)",
		strings.Join(missing, ", "),
		strings.Join(e.AvailableHeaders, ", "),
	)
}
