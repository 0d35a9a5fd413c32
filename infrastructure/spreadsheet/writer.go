package spreadsheet

import (
	"slices"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	numFmtMoney   = 4  // #,##0.00
	numFmtPercent = 10 // 0.00%
)

// Table descreve uma aba simples: cabeçalho e linhas na ordem das colunas
type Table struct {
	Sheet          string
	Headers        []string
	Rows           [][]any
	PercentColumns []int // índices (base 0) formatados como porcentagem
	TextColumns    []int // índices sem formato numérico
}

// WriteTable gera um .xlsx em memória com uma única aba
func WriteTable(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, t.Sheet); err != nil {
		return nil, errors.Wrap(err, "erro ao nomear a aba")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar estilo do cabeçalho")
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar estilo monetário")
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtPercent})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar estilo de porcentagem")
	}

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Sheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "erro ao escrever cabeçalho")
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if err := f.SetSheetRow(t.Sheet, cell, &row); err != nil {
			return nil, errors.Wrapf(err, "erro ao escrever linha %d", i+2)
		}
	}

	lastRow := len(t.Rows) + 1
	lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := f.SetCellStyle(t.Sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, errors.WithStack(err)
	}

	if lastRow > 1 {
		for col := range t.Headers {
			style := moneyStyle
			switch {
			case slices.Contains(t.TextColumns, col):
				continue
			case slices.Contains(t.PercentColumns, col):
				style = percentStyle
			}

			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			if err := f.SetCellStyle(t.Sheet, name+"2", name+strconv.Itoa(lastRow), style); err != nil {
				return nil, errors.WithStack(err)
			}
		}
	}

	if err := f.SetColWidth(t.Sheet, "A", lastCol, 16); err != nil {
		return nil, errors.WithStack(err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar arquivo xlsx")
	}

	return buf.Bytes(), nil
}
