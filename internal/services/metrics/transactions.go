package metrics

import (
	"strings"

	"github.com/bobmcallan/wealthflow/internal/models"
)

// TransactionRow is a transaction with its references resolved for display.
// Account and Category are nil when the reference dangles.
type TransactionRow struct {
	Transaction models.Transaction
	Account     *models.Account
	Category    *models.Category
}

// AccountName returns the account name or "unlinked".
func (r TransactionRow) AccountName() string {
	if r.Account == nil {
		return "unlinked"
	}
	return r.Account.Name
}

// CategoryName returns the category name or "uncategorized".
func (r TransactionRow) CategoryName() string {
	if r.Category == nil {
		return "uncategorized"
	}
	return r.Category.Name
}

// ResolveTransactions joins every transaction with its account and category.
func ResolveTransactions(s *models.AppState) []TransactionRow {
	rows := make([]TransactionRow, 0, len(s.Transactions))
	for _, tx := range s.Transactions {
		row := TransactionRow{Transaction: tx}
		if a := s.FindAccount(tx.AccountID); a != nil {
			acc := *a
			row.Account = &acc
		}
		if c := s.FindCategory(tx.CategoryID); c != nil {
			cat := *c
			row.Category = &cat
		}
		rows = append(rows, row)
	}
	return rows
}

// FilterTransactions keeps rows of typ (empty means all) whose note or category
// name contains term.
func FilterTransactions(rows []TransactionRow, typ models.TransactionType, term string) []TransactionRow {
	var out []TransactionRow
	for _, r := range rows {
		if typ != "" && r.Transaction.Type != typ {
			continue
		}
		if term != "" && !strings.Contains(r.Transaction.Note, term) &&
			(r.Category == nil || !strings.Contains(r.Category.Name, term)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
