package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, grid [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range grid {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadRows(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		input    func(t *testing.T) *bytes.Buffer
		validate func(t *testing.T, rows []Row, err error)
	}{
		{
			name:     "xlsx com cabeçalho e duas vendas",
			filename: "vendas.xlsx",
			input: func(t *testing.T) *bytes.Buffer {
				return buildWorkbook(t, [][]any{
					{"DataVenda", "Vendedor", "PrecoTotalBruto", "PrecoUnit"},
					{"15/01/2024", "joão", 1000, 900},
					{"16/01/2024", "maria", 800, 1000},
				})
			},
			validate: func(t *testing.T, rows []Row, err error) {
				require.NoError(t, err)
				require.Len(t, rows, 2)
				assert.Equal(t, "15/01/2024", rows[0].Get("DataVenda"))
				assert.Equal(t, "joão", rows[0].Get("Vendedor"))
				assert.Equal(t, "1000", rows[0].Get("PrecoTotalBruto"))
				assert.Equal(t, "900", rows[0].Get("PrecoUnit"))
				assert.Equal(t, "maria", rows[1].Get("Vendedor"))
				assert.Equal(t, []string{"DataVenda", "Vendedor", "PrecoTotalBruto", "PrecoUnit"}, rows[0].Headers)
			},
		},
		{
			name:     "xlsx com células vazias omite as chaves",
			filename: "VENDAS.XLSX",
			input: func(t *testing.T) *bytes.Buffer {
				return buildWorkbook(t, [][]any{
					{"Data", "Cliente", "M2"},
					{"2024-02-01", "", 3.5},
					{"", "", ""},
				})
			},
			validate: func(t *testing.T, rows []Row, err error) {
				require.NoError(t, err)
				require.Len(t, rows, 1)
				_, hasClient := rows[0].Cells["Cliente"]
				assert.False(t, hasClient)
				assert.Equal(t, "3.5", rows[0].Get("M2"))
				assert.Equal(t, []string{"Data", "M2"}, rows[0].Headers)
			},
		},
		{
			name:     "xlsx só com cabeçalho retorna lista vazia",
			filename: "vazia.xlsx",
			input: func(t *testing.T) *bytes.Buffer {
				return buildWorkbook(t, [][]any{{"Data", "Vendedor"}})
			},
			validate: func(t *testing.T, rows []Row, err error) {
				require.NoError(t, err)
				assert.Empty(t, rows)
			},
		},
		{
			name:     "csv separado por ponto e vírgula com BOM",
			filename: "vendas.csv",
			input: func(t *testing.T) *bytes.Buffer {
				return bytes.NewBufferString("\xef\xbb\xbfData;Vendedor;PrecoTotalBruto\n15/01/2024;Ana;\"R$ 1.234,56\"\n")
			},
			validate: func(t *testing.T, rows []Row, err error) {
				require.NoError(t, err)
				require.Len(t, rows, 1)
				assert.Equal(t, "15/01/2024", rows[0].Get("Data"))
				assert.Equal(t, "R$ 1.234,56", rows[0].Get("PrecoTotalBruto"))
			},
		},
		{
			name:     "csv separado por vírgula",
			filename: "vendas.csv",
			input: func(t *testing.T) *bytes.Buffer {
				return bytes.NewBufferString("Data,Material\n2024-03-10,Granito Preto\n")
			},
			validate: func(t *testing.T, rows []Row, err error) {
				require.NoError(t, err)
				require.Len(t, rows, 1)
				assert.Equal(t, "Granito Preto", rows[0].Get("Material"))
			},
		},
		{
			name:     "extensão desconhecida",
			filename: "vendas.pdf",
			input: func(t *testing.T) *bytes.Buffer {
				return bytes.NewBufferString("qualquer coisa")
			},
			validate: func(t *testing.T, rows []Row, err error) {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				assert.Nil(t, rows)
			},
		},
		{
			name:     "xls antigo pede conversão",
			filename: "vendas.xls",
			input: func(t *testing.T) *bytes.Buffer {
				return bytes.NewBufferString("\xd0\xcf\x11\xe0")
			},
			validate: func(t *testing.T, rows []Row, err error) {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				assert.Contains(t, err.Error(), ".xlsx ou .csv")
				assert.Nil(t, rows)
			},
		},
		{
			name:     "xlsx corrompido",
			filename: "quebrada.xlsx",
			input: func(t *testing.T) *bytes.Buffer {
				return bytes.NewBufferString("isto não é um zip")
			},
			validate: func(t *testing.T, rows []Row, err error) {
				assert.True(t, errors.Is(err, ErrUnreadableFile))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ReadRows(tt.filename, tt.input(t))
			tt.validate(t, rows, err)
		})
	}
}

func TestWriteTable(t *testing.T) {
	data, err := WriteTable(Table{
		Sheet:          "DRE Anual",
		Headers:        []string{"Mês", "Faturamento Bruto", "Margem %"},
		Rows:           [][]any{{"jan", 100000.0, 0.245}, {"fev", 0.0, 0.0}},
		PercentColumns: []int{2},
		TextColumns:    []int{0},
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "DRE Anual", f.GetSheetName(0))

	rows, err := f.GetRows("DRE Anual", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Mês", "Faturamento Bruto", "Margem %"}, rows[0])
	assert.Equal(t, "jan", rows[1][0])
	assert.Equal(t, "100000", rows[1][1])
	assert.True(t, strings.HasPrefix(rows[1][2], "0.245"))
}
