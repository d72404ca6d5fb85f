package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Region is the market a holding trades on
type Region string

const (
	RegionTW Region = "TW"
	RegionUS Region = "US"
)

// Currency returns the trading currency of the region.
func (r Region) Currency() string {
	if r == RegionUS {
		return "USD"
	}
	return "TWD"
}

// Valid reports whether r is a known region.
func (r Region) Valid() bool {
	return r == RegionTW || r == RegionUS
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Stock is a portfolio holding keyed by its symbol.
type Stock struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Region       Region          `json:"region"`
	Quantity     decimal.Decimal `json:"quantity"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Currency     string          `json:"currency"`
}

// MarketValue returns CurrentPrice × Quantity in the stock's own currency.
func (s Stock) MarketValue() decimal.Decimal {
	return s.CurrentPrice.Mul(s.Quantity)
}

// CostBasis returns AvgCost × Quantity in the stock's own currency.
func (s Stock) CostBasis() decimal.Decimal {
	return s.AvgCost.Mul(s.Quantity)
}
