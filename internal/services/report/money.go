package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// currency returns a never-nil currency; unknown codes get go-money's default formatting.
func currency(code string) money.Currency {
	return *money.New(0, code).Currency()
}

// FormatMoney renders amount with the currency's symbol, grouping and fraction digits.
func FormatMoney(amount decimal.Decimal, code string) string {
	cur := currency(code)
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// FormatSignedMoney prefixes gains with "+". Zero renders as "-".
func FormatSignedMoney(amount decimal.Decimal, code string) string {
	switch {
	case amount.IsZero():
		return "-"
	case amount.IsPositive():
		return "+" + FormatMoney(amount, code)
	}
	return FormatMoney(amount, code)
}

// FormatSignedPct renders a percentage with two decimals and an explicit sign.
func FormatSignedPct(pct decimal.Decimal) string {
	s := pct.StringFixed(2) + "%"
	if pct.IsPositive() {
		return "+" + s
	}
	return s
}
