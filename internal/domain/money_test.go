package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundingMode_Round2(t *testing.T) {
	halfway := decimal.RequireFromString("10.125")

	// Arredondamento bancário vai para o par; half-up sobe sempre.
	assert.Equal(t, "10.12", RoundHalfEven.Round2(halfway).StringFixed(2))
	assert.Equal(t, "10.13", RoundHalfUp.Round2(halfway).StringFixed(2))

	above := decimal.RequireFromString("10.1251")
	assert.Equal(t, "10.13", RoundHalfEven.Round2(above).StringFixed(2))
}

func TestRoundingMode_Round4(t *testing.T) {
	halfway := decimal.RequireFromString("0.33335")

	assert.Equal(t, "0.3334", RoundHalfEven.Round4(halfway).StringFixed(4))
	assert.Equal(t, "0.3334", RoundHalfUp.Round4(halfway).StringFixed(4))

	even := decimal.RequireFromString("0.33325")
	assert.Equal(t, "0.3332", RoundHalfEven.Round4(even).StringFixed(4))
	assert.Equal(t, "0.3333", RoundHalfUp.Round4(even).StringFixed(4))
}

func TestPercent(t *testing.T) {
	base := decimal.NewFromInt(50000)

	assert.Equal(t, "10000", Percent(base, decimal.NewFromInt(20)).String())
	assert.Equal(t, "3000", Percent(base, decimal.NewFromInt(6)).String())
	assert.True(t, Percent(decimal.Zero, decimal.NewFromInt(20)).IsZero())
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(1), Cents(decimal.RequireFromString("0.01")))
	assert.Equal(t, int64(10003), Cents(decimal.RequireFromString("100.03")))
	assert.Equal(t, int64(0), Cents(decimal.Zero))
}

func TestNonNil(t *testing.T) {
	value := decimal.NewFromInt(42)
	assert.Equal(t, "42", NonNil(&value).String())
	assert.True(t, NonNil(nil).IsZero())
}

func TestCanonicalFunctionID(t *testing.T) {
	assert.Equal(t, CanonicalFunctionID("OPERADOR-SR"), CanonicalFunctionID("operadorsr"))
	assert.Equal(t, "supervisor", CanonicalFunctionID("SUPER-VISOR"))
	assert.NotEqual(t, CanonicalFunctionID("operador_sr"), CanonicalFunctionID("operadorsr"))
}
