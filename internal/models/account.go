package models

import "github.com/shopspring/decimal"

// AccountType classifies where money is held
type AccountType string

const (
	AccountTypeBank       AccountType = "BANK"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeInvestment AccountType = "INVESTMENT"
	AccountTypeCredit     AccountType = "CREDIT"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeBank, AccountTypeCash, AccountTypeInvestment, AccountTypeCredit:
		return true
	}
	return false
}

// Label returns the zh-TW display name used by the reports.
func (t AccountType) Label() string {
	switch t {
	case AccountTypeBank:
		return "銀行"
	case AccountTypeCash:
		return "現金"
	case AccountTypeInvestment:
		return "證券"
	case AccountTypeCredit:
		return "信用卡"
	}
	return string(t)
}

// Account is a place money is held. Balance only changes through transactions.
type Account struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	BankName      string          `json:"bank_name,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
}
