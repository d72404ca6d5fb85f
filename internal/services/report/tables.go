// Package report renders snapshots as markdown tables and PNG charts.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/wealthflow/internal/models"
	"github.com/bobmcallan/wealthflow/internal/services/metrics"
)

// Options controls currency conversion and the monthly window.
type Options struct {
	Rates metrics.Rates
	Scope metrics.Scope
	Now   time.Time
}

// DefaultOptions uses the fixed rates, the default scope and the current time.
func DefaultOptions() Options {
	return Options{Rates: metrics.DefaultRates(), Scope: metrics.DefaultMonthlyScope, Now: time.Now()}
}

func (o Options) home() string {
	if o.Rates.Home == "" {
		return metrics.DefaultHomeCurrency
	}
	return o.Rates.Home
}

// Summary renders the dashboard headline figures.
func Summary(s *models.AppState, opts Options) string {
	home := opts.home()
	totals := metrics.MonthlyTotals(s, opts.Scope, opts.Now)
	pf := metrics.Portfolio(s, opts.Rates)

	var sb strings.Builder
	if s.User != nil {
		sb.WriteString(fmt.Sprintf("# %s 的財務總覽\n\n", s.User.Name))
	} else {
		sb.WriteString("# 財務總覽\n\n")
	}
	sb.WriteString(fmt.Sprintf("**淨資產:** %s\n", FormatMoney(metrics.NetWorth(s, opts.Rates), home)))
	sb.WriteString(fmt.Sprintf("**帳戶總額:** %s\n", FormatMoney(metrics.TotalBalance(s, opts.Rates), home)))
	sb.WriteString(fmt.Sprintf("**股票市值:** %s (%s)\n", FormatMoney(pf.Value, home), FormatSignedPct(pf.PLPercent())))
	sb.WriteString(fmt.Sprintf("**收入:** %s\n", FormatMoney(totals.Income, home)))
	sb.WriteString(fmt.Sprintf("**支出:** %s\n", FormatMoney(totals.Expense, home)))
	sb.WriteString(fmt.Sprintf("**結餘:** %s\n\n", FormatSignedMoney(totals.Net(), home)))

	if breakdown := metrics.CategoryBreakdown(s); len(breakdown) > 0 {
		sb.WriteString("## 支出分類\n\n")
		sb.WriteString("| 分類 | 金額 |\n")
		sb.WriteString("|------|------|\n")
		for _, ct := range breakdown {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", ct.Category.Name, FormatMoney(ct.Total, home)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Accounts renders every account with its balance in its own currency.
func Accounts(s *models.AppState) string {
	var sb strings.Builder
	sb.WriteString("| ID | 名稱 | 類型 | 銀行 | 帳號 | 餘額 |\n")
	sb.WriteString("|----|------|------|------|------|------|\n")
	for _, a := range s.Accounts {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			a.ID, a.Name, a.Type.Label(), orDash(a.BankName), orDash(a.AccountNumber),
			FormatMoney(a.Balance, a.Currency)))
	}
	return sb.String()
}

// Transactions renders resolved rows, newest first.
func Transactions(rows []metrics.TransactionRow) string {
	if len(rows) == 0 {
		return "沒有符合條件的交易紀錄。\n"
	}

	var sb strings.Builder
	sb.WriteString("| 日期 | 類型 | 分類 | 帳戶 | 備註 | 金額 |\n")
	sb.WriteString("|------|------|------|------|------|------|\n")
	for _, r := range rows {
		tx := r.Transaction
		code := metrics.DefaultHomeCurrency
		if r.Account != nil {
			code = r.Account.Currency
		}
		amount := FormatMoney(tx.Amount, code)
		switch tx.Type {
		case models.TransactionTypeIncome:
			amount = "+" + amount
		case models.TransactionTypeExpense:
			amount = "-" + amount
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Type.Label(), r.CategoryName(), r.AccountName(), orDash(tx.Note), amount))
	}
	return sb.String()
}

// Portfolio renders holdings with prices in their own currency and totals in the home currency.
func Portfolio(s *models.AppState, opts Options) string {
	home := opts.home()
	pf := metrics.Portfolio(s, opts.Rates)

	var sb strings.Builder
	sb.WriteString("| 代號 | 名稱 | 市場 | 股數 | 均價 | 現價 | 市值 | 損益 | 報酬率 |\n")
	sb.WriteString("|------|------|------|------|------|------|------|------|--------|\n")
	for _, h := range pf.Holdings {
		st := h.Stock
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			st.Symbol, st.Name, st.Region, st.Quantity.String(),
			FormatMoney(st.AvgCost, st.Currency), FormatMoney(st.CurrentPrice, st.Currency),
			FormatMoney(h.Value, home), FormatSignedMoney(h.PL, st.Currency), FormatSignedPct(h.PLPercent)))
	}
	sb.WriteString(fmt.Sprintf("\n**總市值:** %s | **總成本:** %s | **未實現損益:** %s (%s)\n",
		FormatMoney(pf.Value, home), FormatMoney(pf.Cost, home),
		FormatSignedMoney(pf.PL(), home), FormatSignedPct(pf.PLPercent())))
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
