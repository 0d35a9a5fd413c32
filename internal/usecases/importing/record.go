package importing

import (
	"fmt"
	"strings"
	"time"

	"github.com/grupold/bi-marmoraria-api/infrastructure/spreadsheet"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
)

const (
	defaultSeller   = "DESCONHECIDO"
	defaultClient   = "Consumidor"
	defaultMaterial = "Indefinido"
)

// RawSale é a linha da planilha já validada e tipada, antes de virar SalesRecord
type RawSale struct {
	SaleDate time.Time
	Seller   string
	Client   string
	Material string
	AreaM2   float64
	Cost     float64
	Gross    *float64
	Unit     *float64
}

// ExtractRawSale resolve as colunas da linha e normaliza as células.
// Retorna false quando a linha não tem coluna de data.
func ExtractRawSale(row spreadsheet.Row, now time.Time) (RawSale, bool) {
	columns := ResolveColumns(row.Headers)

	dateCol, ok := columns[FieldDate]
	if !ok {
		return RawSale{}, false
	}

	saleDate := ParseDate(row.Get(dateCol), now)

	raw := RawSale{
		SaleDate: time.Date(saleDate.Year(), saleDate.Month(), saleDate.Day(), 0, 0, 0, 0, time.UTC),
		Seller:   strings.ToUpper(textOr(row, columns, FieldSeller, defaultSeller)),
		Client:   textOr(row, columns, FieldClient, defaultClient),
		Material: textOr(row, columns, FieldMaterial, defaultMaterial),
		AreaM2:   numberOf(row, columns, FieldArea),
		Cost:     numberOf(row, columns, FieldCost),
	}

	if col, ok := columns[FieldGross]; ok {
		v := ParseNumber(row.Get(col))
		raw.Gross = &v
	}
	if col, ok := columns[FieldUnit]; ok {
		v := ParseNumber(row.Get(col))
		raw.Unit = &v
	}

	return raw, true
}

// ToRecord aplica a regra de frete e a classificação por preço do m²
func (r RawSale) ToRecord(ownerID int, batchID string, threshold float64) *domain.SalesRecord {
	revenue, freight := SplitRevenueFreight(r.Gross, r.Unit)

	return &domain.SalesRecord{
		OwnerID:      ownerID,
		BatchID:      batchID,
		SaleDate:     r.SaleDate,
		SellerName:   r.Seller,
		ClientName:   r.Client,
		MaterialName: r.Material,
		Revenue:      revenue,
		Cost:         r.Cost,
		Freight:      freight,
		AreaM2:       r.AreaM2,
		SaleType:     domain.Classify(revenue, r.AreaM2, threshold),
	}
}

func textOr(row spreadsheet.Row, columns ColumnMap, field Field, fallback string) string {
	col, ok := columns[field]
	if !ok || row.Get(col) == nil {
		return fallback
	}

	text := strings.TrimSpace(fmt.Sprint(row.Get(col)))
	if text == "" {
		return fallback
	}
	return text
}

func numberOf(row spreadsheet.Row, columns ColumnMap, field Field) float64 {
	col, ok := columns[field]
	if !ok {
		return 0
	}
	return ParseNumber(row.Get(col))
}
