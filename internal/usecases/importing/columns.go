package importing

import "strings"

// Field é um campo canônico da venda que precisa ser achado na planilha
type Field string

const (
	FieldDate     Field = "date"
	FieldSeller   Field = "seller"
	FieldClient   Field = "client"
	FieldMaterial Field = "material"
	FieldArea     Field = "area"
	FieldCost     Field = "cost"
	FieldGross    Field = "gross"
	FieldUnit     Field = "unit"
)

// Candidatos de cabeçalho por campo, em ordem de prioridade
var fieldCandidates = map[Field][]string{
	FieldDate:     {"DataVenda", "Data", "Emissao"},
	FieldSeller:   {"Vendedor", "VendedorNome"},
	FieldClient:   {"Cliente", "ClienteNome"},
	FieldMaterial: {"Material", "Produto", "Descricao"},
	FieldArea:     {"Total_M2_Venda", "M2", "Qtd"},
	FieldCost:     {"CustoTotalM2", "Custo", "CMV"},
	FieldGross:    {"PrecoTotalBruto", "ValorBruto"},
	FieldUnit:     {"PrecoUnit", "ValorUnit", "ValorLiquido"},
}

// ColumnMap liga cada campo encontrado ao nome real da coluna
type ColumnMap map[Field]string

// ResolveColumn procura primeiro um nome idêntico (sem caixa e espaços nas pontas)
// e depois uma coluna que contenha o candidato. O candidato de maior prioridade vence.
func ResolveColumn(headers []string, candidates []string) (string, bool) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, candidate := range candidates {
		c := strings.ToLower(candidate)
		for i, h := range normalized {
			if h == c {
				return headers[i], true
			}
		}
	}

	for _, candidate := range candidates {
		c := strings.ToLower(candidate)
		for i, h := range normalized {
			if strings.Contains(h, c) {
				return headers[i], true
			}
		}
	}

	return "", false
}

// ResolveColumns resolve todos os campos conhecidos para um conjunto de cabeçalhos.
// Os cabeçalhos devem vir na ordem da planilha: no empate por substring vence a
// coluna mais à esquerda.
func ResolveColumns(headers []string) ColumnMap {
	columns := make(ColumnMap, len(fieldCandidates))
	for field, candidates := range fieldCandidates {
		if name, ok := ResolveColumn(headers, candidates); ok {
			columns[field] = name
		}
	}

	return columns
}
