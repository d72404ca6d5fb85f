package models

import "github.com/shopspring/decimal"

// TransactionType is the kind of money movement
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
	// TransactionTypeTransfer is declared for compatibility with stored data but has no
	// destination account, so it never changes a balance.
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// Label returns the zh-TW display name used by the reports.
func (t TransactionType) Label() string {
	switch t {
	case TransactionTypeIncome:
		return "收入"
	case TransactionTypeExpense:
		return "支出"
	case TransactionTypeTransfer:
		return "轉帳"
	}
	return string(t)
}

// Transaction is an immutable record of money moving in or out of an account.
type Transaction struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"account_id"`
	Type       TransactionType `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Date       Date            `json:"date"`
	CategoryID string          `json:"category_id"`
	Note       string          `json:"note"`
}
