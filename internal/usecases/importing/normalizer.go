package importing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ParseNumber converte o valor de uma célula em número. Nunca falha: lixo vira 0.
func ParseNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case decimal.Decimal:
		f, _ := n.Float64()
		return f
	case string:
		return parseNumericString(n)
	default:
		return parseNumericString(fmt.Sprint(v))
	}
}

// parseNumericString aceita "R$ 1.234,56", "1234,5", "1.234.567" e "1,234.56"
func parseNumericString(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot > lastComma:
		// vírgula como milhar e ponto decimal
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case lastComma >= 0:
		intPart := strings.NewReplacer(".", "", ",", "").Replace(cleaned[:lastComma])
		cleaned = intPart + "." + cleaned[lastComma+1:]
	case strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}

	f, _ := d.Float64()
	return f
}

// Formatos aceitos para datas sem barra. Horário sem fuso é lido como UTC.
var isoLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05.999999999",
	"02-01-2006",
	"02.01.2006",
}

// ParseDate converte o valor de uma célula em data. Valores inválidos viram now.
func ParseDate(v any, now time.Time) time.Time {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return now
		}
		return d
	case *time.Time:
		if d == nil || d.IsZero() {
			return now
		}
		return *d
	case string:
		return parseDateString(strings.TrimSpace(d), now)
	case nil:
		return now
	default:
		if serial := ParseNumber(d); serial > 0 {
			if t, ok := fromExcelSerial(serial); ok {
				return t
			}
		}
		return now
	}
}

func parseDateString(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}

	if strings.Contains(s, "/") {
		if t, ok := parseDayMonthYear(s); ok {
			return t
		}
		return now
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, ok := fromExcelSerial(serial); ok {
			return t
		}
	}

	return now
}

// parseDayMonthYear lê d/m/a. Ano com dois dígitos é 20aa. Hora após o ano é ignorada.
func parseDayMonthYear(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	yearField := strings.Fields(parts[2])
	if len(yearField) == 0 {
		return time.Time{}, false
	}

	day, errDay := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, errMonth := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, errYear := strconv.Atoi(yearField[0])
	if errDay != nil || errMonth != nil || errYear != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// 31/02 normalizaria para março
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}

	return t, true
}

// maior serial aceito pelo Excel (31/12/9999)
const maxExcelSerial = 2958465

func fromExcelSerial(serial float64) (time.Time, bool) {
	if serial < 1 || serial > maxExcelSerial {
		return time.Time{}, false
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
