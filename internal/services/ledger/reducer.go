// Package ledger holds the pure state transitions applied to an AppState snapshot.
//
// Every function takes the current snapshot and returns a new one. Inputs are never
// modified, and slices that a transition does not touch are shared with the input.
// The functions assume well-formed arguments; validation happens in input.go.
package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/wealthflow/internal/models"
)

// shallow copies the snapshot header so slices can be replaced individually.
func shallow(s *models.AppState) *models.AppState {
	if s == nil {
		return &models.AppState{}
	}
	c := *s
	return &c
}

// AddAccount appends account. Ids are not checked for uniqueness.
func AddAccount(s *models.AppState, account models.Account) *models.AppState {
	next := shallow(s)
	next.Accounts = append(slices.Clip(next.Accounts), account)
	return next
}

// DeleteAccount removes every account with id. Transactions referencing it are kept.
func DeleteAccount(s *models.AppState, id string) *models.AppState {
	next := shallow(s)
	if !slices.ContainsFunc(next.Accounts, func(a models.Account) bool { return a.ID == id }) {
		return next
	}
	accounts := make([]models.Account, 0, len(next.Accounts))
	for _, a := range next.Accounts {
		if a.ID != id {
			accounts = append(accounts, a)
		}
	}
	next.Accounts = accounts
	return next
}

// BalanceEffect is the signed change t applies to its account.
// TRANSFER has no destination account in the model, so it moves nothing.
func BalanceEffect(t models.Transaction) decimal.Decimal {
	switch t.Type {
	case models.TransactionTypeIncome:
		return t.Amount
	case models.TransactionTypeExpense:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// AddTransaction records t as the newest transaction and applies its balance effect
// to the matching account. A transaction whose account does not exist is still recorded.
func AddTransaction(s *models.AppState, t models.Transaction) *models.AppState {
	next := shallow(s)

	transactions := make([]models.Transaction, 0, len(next.Transactions)+1)
	transactions = append(transactions, t)
	next.Transactions = append(transactions, next.Transactions...)

	effect := BalanceEffect(t)
	if effect.IsZero() {
		return next
	}

	idx := slices.IndexFunc(next.Accounts, func(a models.Account) bool { return a.ID == t.AccountID })
	if idx < 0 {
		return next
	}
	accounts := slices.Clone(next.Accounts)
	for i := range accounts {
		if accounts[i].ID == t.AccountID {
			accounts[i].Balance = accounts[i].Balance.Add(effect)
		}
	}
	next.Accounts = accounts
	return next
}

// AddStock appends stock. Symbols are not deduplicated.
func AddStock(s *models.AppState, stock models.Stock) *models.AppState {
	next := shallow(s)
	next.Portfolio = append(slices.Clip(next.Portfolio), stock)
	return next
}

// UpdateStock merges patch into every holding with symbol.
func UpdateStock(s *models.AppState, symbol string, patch StockPatch) *models.AppState {
	next := shallow(s)
	if !slices.ContainsFunc(next.Portfolio, func(st models.Stock) bool { return st.Symbol == symbol }) {
		return next
	}
	portfolio := slices.Clone(next.Portfolio)
	for i := range portfolio {
		if portfolio[i].Symbol == symbol {
			portfolio[i] = patch.Apply(portfolio[i])
		}
	}
	next.Portfolio = portfolio
	return next
}

// ApplyPrices replaces the portfolio with perturb's result. perturb must not modify its input.
func ApplyPrices(s *models.AppState, perturb func([]models.Stock) []models.Stock) *models.AppState {
	next := shallow(s)
	next.Portfolio = perturb(next.Portfolio)
	return next
}

// AttachUser sets the signed-in principal.
func AttachUser(s *models.AppState, user models.User) *models.AppState {
	next := shallow(s)
	next.User = &user
	return next
}

// DetachUser clears the principal.
func DetachUser(s *models.AppState) *models.AppState {
	next := shallow(s)
	next.User = nil
	return next
}
