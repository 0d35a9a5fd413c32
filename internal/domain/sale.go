package domain

import "time"

// SaleClass classifica a venda pelo preço por m²
type SaleClass string

const (
	SaleClassHigh SaleClass = "HIGH"
	SaleClassLow  SaleClass = "LOW"
)

// DefaultHighValueThreshold é o preço por m² a partir do qual a venda é HIGH (material nobre)
const DefaultHighValueThreshold = 300.0

type SalesRecord struct {
	ID           int64     `json:"id"`
	OwnerID      int       `json:"owner_id"`
	BatchID      string    `json:"batch_id"`
	SaleDate     time.Time `json:"sale_date"`
	SellerName   string    `json:"seller_name"`
	ClientName   string    `json:"client_name"`
	MaterialName string    `json:"material_name"`
	Revenue      float64   `json:"revenue"`
	Cost         float64   `json:"cost"`
	Freight      float64   `json:"freight"`
	AreaM2       float64   `json:"m2_total"`
	SaleType     SaleClass `json:"sale_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// PricePerArea retorna receita / m², ou 0 quando não há área
func PricePerArea(revenue, area float64) float64 {
	if area == 0 {
		return 0
	}
	return revenue / area
}

// Classify retorna HIGH quando o preço por m² atinge o limite. Área zero é sempre LOW.
func Classify(revenue, area, threshold float64) SaleClass {
	if area == 0 {
		return SaleClassLow
	}
	if PricePerArea(revenue, area) >= threshold {
		return SaleClassHigh
	}
	return SaleClassLow
}

// SalesFilter limita a consulta de vendas por período
type SalesFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Contains informa se a data está dentro do filtro (limites inclusivos, por dia)
func (f SalesFilter) Contains(t time.Time) bool {
	day := truncateDay(t)
	if f.StartDate != nil && day.Before(truncateDay(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && day.After(truncateDay(*f.EndDate)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthlyAggregate é a soma das vendas de um mês
type MonthlyAggregate struct {
	MonthKey MonthKey `json:"month_key"`
	Revenue  float64  `json:"revenue"`
	Cost     float64  `json:"cost"`
	Freight  float64  `json:"freight"`
	Count    int      `json:"count"`
}
