package importing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{name: "moeda brasileira com milhar", input: "R$ 1.234,56", expected: 1234.56},
		{name: "vírgula decimal sem milhar", input: "1234,5", expected: 1234.5},
		{name: "ponto decimal", input: "99.90", expected: 99.9},
		{name: "milhar com pontos sem decimal", input: "1.234.567", expected: 1234567},
		{name: "formato americano", input: "1,234.56", expected: 1234.56},
		{name: "negativo", input: "-R$ 10,00", expected: -10},
		{name: "texto vazio", input: "", expected: 0},
		{name: "lixo", input: "abc", expected: 0},
		{name: "sinal solto", input: "-", expected: 0},
		{name: "nil", input: nil, expected: 0},
		{name: "float64 passa direto", input: 1234.56, expected: 1234.56},
		{name: "int passa direto", input: 42, expected: 42},
		{name: "int64 passa direto", input: int64(7), expected: 7},
		{name: "decimal passa direto", input: decimal.RequireFromString("10.25"), expected: 10.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParseNumber(tt.input), 1e-9)
		})
	}
}

func TestParseNumber_Idempotente(t *testing.T) {
	for _, v := range []float64{0, 1, 1234.56, -3.5, 1e6} {
		assert.Equal(t, v, ParseNumber(ParseNumber(v)))
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	native := time.Date(2023, 11, 5, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    any
		expected time.Time
	}{
		{name: "data nativa passa direto", input: native, expected: native},
		{name: "dia/mês/ano", input: "15/01/2024", expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "dia/mês/ano sem zero à esquerda", input: "5/3/2024", expected: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "ano com dois dígitos", input: "15/01/24", expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "dia/mês/ano com hora", input: "15/01/2024 10:30", expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "ISO", input: "2024-02-29", expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "data e hora", input: "2024-02-29 13:45:00", expected: time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC)},
		{name: "ISO com hora sem fuso", input: "2024-05-10T10:00:00", expected: time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)},
		{name: "ISO com minutos sem fuso", input: "2024-05-10T10:00", expected: time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)},
		{name: "data e hora sem segundos", input: "2024-05-10 10:00", expected: time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)},
		{name: "ISO com milissegundos", input: "2024-05-10T10:00:00.123", expected: time.Date(2024, 5, 10, 10, 0, 0, 123000000, time.UTC)},
		{name: "ISO com fuso", input: "2024-05-10T10:00:00-03:00", expected: time.Date(2024, 5, 10, 13, 0, 0, 0, time.UTC)},
		{name: "dia-mês-ano com hífen", input: "10-05-2024", expected: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
		{name: "serial do Excel em texto", input: "45306", expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "serial do Excel numérico", input: 45306.0, expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "dia inexistente cai para hoje", input: "31/02/2024", expected: now},
		{name: "barras incompletas caem para hoje", input: "01/2024", expected: now},
		{name: "texto inválido cai para hoje", input: "ontem", expected: now},
		{name: "vazio cai para hoje", input: "", expected: now},
		{name: "nil cai para hoje", input: nil, expected: now},
		{name: "data zero cai para hoje", input: time.Time{}, expected: now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(ParseDate(tt.input, now)), "esperado %s, obtido %s", tt.expected, ParseDate(tt.input, now))
		})
	}
}
