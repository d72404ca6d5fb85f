package metrics

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/wealthflow/internal/models"
)

// Holding is a stock with its derived figures, home-currency values included.
type Holding struct {
	Stock     models.Stock
	PL        decimal.Decimal // stock currency
	PLPercent decimal.Decimal
	Value     decimal.Decimal // home currency
	Cost      decimal.Decimal // home currency
}

// PortfolioSummary aggregates every holding in the home currency.
type PortfolioSummary struct {
	Holdings []Holding
	Value    decimal.Decimal
	Cost     decimal.Decimal
}

// PL is the total unrealized gain in the home currency.
func (p PortfolioSummary) PL() decimal.Decimal {
	return p.Value.Sub(p.Cost)
}

// PLPercent is the total gain over cost in percent, or 0 with no cost.
func (p PortfolioSummary) PLPercent() decimal.Decimal {
	if p.Cost.IsZero() {
		return decimal.Zero
	}
	return p.PL().Div(p.Cost).Mul(hundred)
}

// Portfolio computes per-holding and total figures in portfolio order.
func Portfolio(s *models.AppState, rates Rates) PortfolioSummary {
	sum := PortfolioSummary{Value: decimal.Zero, Cost: decimal.Zero}
	for _, st := range s.Portfolio {
		h := Holding{
			Stock:     st,
			PL:        UnrealizedPL(st),
			PLPercent: PLPercent(st),
			Value:     StockValue(st, rates),
			Cost:      rates.ToHome(st.CostBasis(), st.Currency),
		}
		sum.Holdings = append(sum.Holdings, h)
		sum.Value = sum.Value.Add(h.Value)
		sum.Cost = sum.Cost.Add(h.Cost)
	}
	return sum
}

// TopHoldings returns up to n stocks ordered by home-currency value, largest first.
// The snapshot's portfolio order is left as is.
func TopHoldings(s *models.AppState, rates Rates, n int) []models.Stock {
	sorted := slices.Clone(s.Portfolio)
	slices.SortStableFunc(sorted, func(a, b models.Stock) int {
		return StockValue(b, rates).Cmp(StockValue(a, rates))
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
