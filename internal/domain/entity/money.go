package entity

import "github.com/shopspring/decimal"

// MoneyScale decimales de los montos persistidos (NUMERIC(12,2)).
const MoneyScale = 2

// ValidPrice precio o monto positivo con a lo sumo MoneyScale decimales.
func ValidPrice(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(MoneyScale))
}
