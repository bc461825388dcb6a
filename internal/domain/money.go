package domain

import "github.com/shopspring/decimal"

// RoundingMode define a política de arredondamento dos valores monetários.
// O padrão é o arredondamento bancário (half-even), que evita viés acumulado
// nas somas mensais do razão de custos.
type RoundingMode string

const (
	RoundHalfEven RoundingMode = "half_even"
	RoundHalfUp   RoundingMode = "half_up"
)

// Round2 arredonda um valor monetário para 2 casas no momento de persistir.
func (m RoundingMode) Round2(d decimal.Decimal) decimal.Decimal {
	if m == RoundHalfUp {
		return d.Round(2)
	}
	return d.RoundBank(2)
}

// Round4 arredonda valores intermediários de cálculo para 4 casas.
func (m RoundingMode) Round4(d decimal.Decimal) decimal.Decimal {
	if m == RoundHalfUp {
		return d.Round(4)
	}
	return d.RoundBank(4)
}

// NonNil converte um valor opcional em zero monetário quando ausente.
// O motor nunca propaga nil em aritmética de custos.
func NonNil(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// Cents converte um valor com 2 casas em centavos inteiros, usado no
// controle de resíduo do rateio.
func Cents(d decimal.Decimal) int64 {
	return d.Shift(2).IntPart()
}

// Percent aplica uma taxa percentual (0..100) sobre uma base.
func Percent(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(decimal.NewFromInt(100))
}
