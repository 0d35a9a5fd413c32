package domain

// Overview são os indicadores do topo do painel
type Overview struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCost       float64 `json:"total_cost"`
	TotalFreight    float64 `json:"total_freight"`
	EstimatedProfit float64 `json:"estimated_profit"`
	AverageTicket   float64 `json:"average_ticket"`
	SalesCount      int     `json:"sales_count"`
}

// RevenuePoint é um ponto da série mensal de faturamento (ex: jan/2024)
type RevenuePoint struct {
	Label    string   `json:"label"`
	MonthKey MonthKey `json:"month_key"`
	Revenue  float64  `json:"revenue"`
	Profit   float64  `json:"profit"`
}

type AnnualDRERow struct {
	Month     int      `json:"month"`
	MonthName string   `json:"month_name"`
	MonthKey  MonthKey `json:"month_key"`
	DRE
}

type AnnualDREReport struct {
	Year      int            `json:"year"`
	Scenario  Scenario       `json:"scenario"`
	Rows      []AnnualDRERow `json:"rows"`
	Totals    DRE            `json:"totals"`
	ProfitPct float64        `json:"profit_pct"`
}

type MaterialRankingItem struct {
	Material string    `json:"material"`
	Category SaleClass `json:"category"`
	Revenue  float64   `json:"revenue"`
	AreaM2   float64   `json:"m2"`
	Count    int       `json:"count"`
}

type MaterialGroup struct {
	Items       []MaterialRankingItem `json:"items"`
	TotalAreaM2 float64               `json:"total_m2"`
	TotalCount  int                   `json:"total_count"`
}

type MaterialRanking struct {
	High MaterialGroup `json:"high"`
	Low  MaterialGroup `json:"low"`
}

type SellerStats struct {
	Name        string   `json:"name"`
	Revenue     float64  `json:"revenue"`
	RevenueHigh float64  `json:"revenue_high"`
	RevenueLow  float64  `json:"revenue_low"`
	AreaM2      float64  `json:"m2"`
	Cost        float64  `json:"cost"`
	Freight     float64  `json:"freight"`
	Count       int      `json:"count"`
	CountHigh   int      `json:"count_high"`
	CountLow    int      `json:"count_low"`
	Margin      float64  `json:"margin"`
	Goal        *float64 `json:"goal,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
}

// ClientStats nas listas HIGH e LOW traz só a parte da categoria em Revenue, Cost, Freight e Margin
type ClientStats struct {
	Name        string  `json:"name"`
	Revenue     float64 `json:"revenue"`
	RevenueHigh float64 `json:"revenue_high"`
	RevenueLow  float64 `json:"revenue_low"`
	Cost        float64 `json:"cost"`
	Freight     float64 `json:"freight"`
	AreaM2      float64 `json:"m2"`
	Count       int     `json:"count"`
	Margin      float64 `json:"margin"`
}

type ClientRankings struct {
	Total []ClientStats `json:"total"`
	High  []ClientStats `json:"high"`
	Low   []ClientStats `json:"low"`
}

// SellerAnalysis traz a lista de vendedores sempre completa; Sellers e Clients respeitam o filtro de vendedor
type SellerAnalysis struct {
	SellerNames []string       `json:"seller_names"`
	Sellers     []SellerStats  `json:"sellers"`
	Clients     ClientRankings `json:"clients"`
}

// MaterialDetail agrupa os materiais vendidos por (material, categoria)
type MaterialDetail struct {
	Material string    `json:"material"`
	Category SaleClass `json:"category"`
	Count    int       `json:"count"`
	AreaM2   float64   `json:"m2"`
	Revenue  float64   `json:"revenue"`
}
