package importing

// SplitRevenueFreight separa receita e frete a partir do preço bruto e do unitário.
//
// Só existe frete quando o bruto passa do unitário: o excedente é frete e a receita
// é o unitário. Quando o bruto é menor ou igual, a diferença já é desconto embutido
// no bruto, a receita é o bruto e o frete é zero. Sem coluna de unitário, usa o bruto.
// Valores negativos (devoluções) contam como zero, então receita e frete nunca são negativos.
func SplitRevenueFreight(gross, unit *float64) (revenue, freight float64) {
	var g float64
	if gross != nil {
		g = max(*gross, 0)
	}

	u := g
	if unit != nil {
		u = max(*unit, 0)
	}

	if g > u {
		return u, g - u
	}

	return g, 0
}
