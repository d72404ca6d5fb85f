// Package metrics computes read-only projections of a snapshot.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/wealthflow/internal/models"
)

// DefaultUSDRate is the fixed USD -> TWD factor used when normalising to the home
// currency. There is deliberately no live FX lookup.
var DefaultUSDRate = decimal.NewFromInt(31)

// DefaultHomeCurrency is the currency every total is reported in.
const DefaultHomeCurrency = "TWD"

// Rates converts amounts into the home currency.
type Rates struct {
	Home    string
	USDRate decimal.Decimal
}

// DefaultRates returns TWD with the fixed USD factor.
func DefaultRates() Rates {
	return Rates{Home: DefaultHomeCurrency, USDRate: DefaultUSDRate}
}

// ToHome converts amount in currency to the home currency. Only USD is converted;
// any other currency is taken at face value.
func (r Rates) ToHome(amount decimal.Decimal, currency string) decimal.Decimal {
	if currency == "USD" && r.Home != "USD" {
		return amount.Mul(r.USDRate)
	}
	return amount
}

// TotalBalance sums every account balance in the home currency.
func TotalBalance(s *models.AppState, rates Rates) decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Accounts {
		total = total.Add(rates.ToHome(a.Balance, a.Currency))
	}
	return total
}

// StockValue is the market value of the holding in the home currency.
func StockValue(st models.Stock, rates Rates) decimal.Decimal {
	return rates.ToHome(st.MarketValue(), st.Currency)
}

// NetWorth is the account total plus the market value of the portfolio.
func NetWorth(s *models.AppState, rates Rates) decimal.Decimal {
	total := TotalBalance(s, rates)
	for _, st := range s.Portfolio {
		total = total.Add(StockValue(st, rates))
	}
	return total
}

// Scope selects which transactions the "monthly" totals cover.
type Scope int

const (
	// ScopeAllHistory sums every transaction regardless of date.
	ScopeAllHistory Scope = iota
	// ScopeCalendarMonth sums only transactions dated in the reference month.
	ScopeCalendarMonth
)

// DefaultMonthlyScope keeps the dashboard's long-standing behaviour of summing the
// whole history under the "this month" label.
const DefaultMonthlyScope = ScopeAllHistory

// ParseScope maps the config names "all" and "month".
func ParseScope(name string) Scope {
	if name == "month" {
		return ScopeCalendarMonth
	}
	return ScopeAllHistory
}

// Totals are the income and expense sums of a set of transactions.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net is income minus expense.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// MonthlyTotals sums INCOME and EXPENSE amounts within scope. now is only used by
// ScopeCalendarMonth.
func MonthlyTotals(s *models.AppState, scope Scope, now time.Time) Totals {
	ref := models.DateOf(now)
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range s.Transactions {
		if scope == ScopeCalendarMonth && !tx.Date.SameMonth(ref) {
			continue
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			totals.Income = totals.Income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(tx.Amount)
		}
	}
	return totals
}

var hundred = decimal.NewFromInt(100)

// UnrealizedPL is (currentPrice - avgCost) × quantity in the stock's currency.
func UnrealizedPL(st models.Stock) decimal.Decimal {
	return st.CurrentPrice.Sub(st.AvgCost).Mul(st.Quantity)
}

// PLPercent is the gain over average cost in percent, or 0 when avgCost is 0.
func PLPercent(st models.Stock) decimal.Decimal {
	if st.AvgCost.IsZero() {
		return decimal.Zero
	}
	return st.CurrentPrice.Sub(st.AvgCost).Div(st.AvgCost).Mul(hundred)
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category models.Category
	Total    decimal.Decimal
}

// CategoryBreakdown sums EXPENSE transactions per EXPENSE category, in category
// order, leaving out categories with nothing spent.
func CategoryBreakdown(s *models.AppState) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range s.Transactions {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		sums[tx.CategoryID] = sums[tx.CategoryID].Add(tx.Amount)
	}

	var out []CategoryTotal
	for _, c := range s.Categories {
		if c.Type != models.CategoryTypeExpense {
			continue
		}
		total, ok := sums[c.ID]
		if !ok || total.IsZero() {
			continue
		}
		out = append(out, CategoryTotal{Category: c, Total: total})
	}
	return out
}
