// Package spreadsheet lê planilhas de vendas (xlsx ou csv) e gera os arquivos de exportação
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("formato de planilha não suportado")
	ErrUnreadableFile    = errors.New("não foi possível ler a planilha")
)

// Row é uma linha da planilha indexada pelo nome do cabeçalho. Células vazias
// ficam fora da linha, do mesmo jeito que planilhas esparsas chegam do Excel.
// Headers guarda os cabeçalhos preenchidos na ordem das colunas da planilha.
type Row struct {
	Headers []string
	Cells   map[string]any
}

// NewRow monta uma linha a partir de cabeçalhos e valores na ordem da planilha.
// Valores nulos ou em branco são descartados.
func NewRow(headers []string, values ...any) Row {
	row := Row{Cells: make(map[string]any, len(headers))}
	for i, header := range headers {
		if i >= len(values) {
			break
		}
		row.Set(header, values[i])
	}
	return row
}

// Set grava a célula; um cabeçalho novo entra no fim da ordem
func (r *Row) Set(header string, value any) {
	if strings.TrimSpace(header) == "" || isBlank(value) {
		return
	}
	if r.Cells == nil {
		r.Cells = make(map[string]any)
	}
	if _, exists := r.Cells[header]; !exists {
		r.Headers = append(r.Headers, header)
	}
	r.Cells[header] = value
}

// Get devolve o valor da célula ou nil
func (r Row) Get(header string) any {
	return r.Cells[header]
}

// Len é o número de células preenchidas
func (r Row) Len() int {
	return len(r.Headers)
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ReadRows lê a primeira aba do arquivo e usa a primeira linha como cabeçalho.
// O formato é decidido pela extensão do nome do arquivo.
func ReadRows(filename string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(r)
	case ".csv", ".txt":
		return readCSV(r)
	case ".xls":
		// excelize só abre OOXML; o formato binário do Excel 97-2003 fica de fora
		return nil, errors.Wrap(ErrUnsupportedFormat, "arquivo .xls (Excel 97-2003): salve a planilha como .xlsx ou .csv")
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "arquivo %q", filename)
	}
}

func readWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return []Row{}, nil
	}

	// valores crus: datas chegam como número serial e valores sem formatação de moeda
	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler a aba %q", sheet)
	}

	return gridToRows(grid), nil
}

func readCSV(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	grid, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}

	return gridToRows(grid), nil
}

// detectDelimiter escolhe entre ';' (padrão do Excel em pt-BR) e ','
func detectDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}

func gridToRows(grid [][]string) []Row {
	if len(grid) == 0 {
		return []Row{}
	}

	headers := grid[0]
	rows := make([]Row, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := Row{Cells: make(map[string]any, len(headers))}
		for i, cell := range cells {
			if i >= len(headers) {
				break
			}
			row.Set(headers[i], cell)
		}
		if row.Len() == 0 {
			continue
		}
		rows = append(rows, row)
	}

	return rows
}
