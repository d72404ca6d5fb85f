package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/wealthflow/internal/models"
)

var (
	// ErrInvalidInput wraps every rejection made before a value reaches the reducer.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTransferUnsupported is returned for TRANSFER transactions until the model
	// carries a destination account.
	ErrTransferUnsupported = errors.New("transfer transactions are not supported")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// newID mints identifiers for new records. Tests replace it.
var newID = func() string { return uuid.NewString() }

// AccountInput is the raw form for a new account.
type AccountInput struct {
	Name          string
	Type          models.AccountType
	Balance       *decimal.Decimal
	Currency      string
	BankName      string
	AccountNumber string
}

// NewAccount validates in and returns an account with a fresh id.
func NewAccount(in AccountInput) (models.Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Account{}, invalid("account name is required")
	}
	if in.Balance == nil {
		return models.Account{}, invalid("opening balance is required")
	}
	typ := in.Type
	if typ == "" {
		typ = models.AccountTypeBank
	}
	if !typ.Valid() {
		return models.Account{}, invalid("unknown account type %q", in.Type)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "TWD"
	}
	return models.Account{
		ID:            newID(),
		Name:          name,
		Type:          typ,
		Balance:       *in.Balance,
		Currency:      currency,
		BankName:      strings.TrimSpace(in.BankName),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
	}, nil
}

// TransactionInput is the raw form for a new transaction.
type TransactionInput struct {
	AccountID  string
	Type       models.TransactionType
	Amount     decimal.Decimal
	Date       models.Date
	CategoryID string
	Note       string
}

// NewTransaction validates in and returns a transaction with a fresh id.
// A zero Date defaults to today.
func NewTransaction(in TransactionInput) (models.Transaction, error) {
	typ := in.Type
	if typ == "" {
		typ = models.TransactionTypeExpense
	}
	switch typ {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
	case models.TransactionTypeTransfer:
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrInvalidInput, ErrTransferUnsupported)
	default:
		return models.Transaction{}, invalid("unknown transaction type %q", in.Type)
	}
	if !in.Amount.IsPositive() {
		return models.Transaction{}, invalid("amount must be greater than zero")
	}
	if strings.TrimSpace(in.AccountID) == "" {
		return models.Transaction{}, invalid("account is required")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return models.Transaction{}, invalid("category is required")
	}
	date := in.Date
	if date.IsZero() {
		date = models.Today()
	}
	return models.Transaction{
		ID:         newID(),
		AccountID:  strings.TrimSpace(in.AccountID),
		Type:       typ,
		Amount:     in.Amount,
		Date:       date,
		CategoryID: strings.TrimSpace(in.CategoryID),
		Note:       in.Note,
	}, nil
}

// StockInput is the raw form for a new holding.
type StockInput struct {
	Symbol       string
	Name         string
	Region       models.Region
	Quantity     decimal.Decimal
	AvgCost      decimal.Decimal
	CurrentPrice decimal.Decimal
}

// NewStock validates in and fills the defaults: upper-cased symbol, name from symbol,
// current price from average cost and currency from region.
func NewStock(in StockInput) (models.Stock, error) {
	symbol := models.NormalizeSymbol(in.Symbol)
	if symbol == "" {
		return models.Stock{}, invalid("symbol is required")
	}
	if !in.Quantity.IsPositive() {
		return models.Stock{}, invalid("quantity must be greater than zero")
	}
	if in.AvgCost.IsNegative() || in.CurrentPrice.IsNegative() {
		return models.Stock{}, invalid("prices must not be negative")
	}
	region := in.Region
	if region == "" {
		region = models.RegionTW
	}
	if !region.Valid() {
		return models.Stock{}, invalid("unknown region %q", in.Region)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = symbol
	}
	price := in.CurrentPrice
	if price.IsZero() {
		price = in.AvgCost
	}
	return models.Stock{
		Symbol:       symbol,
		Name:         name,
		Region:       region,
		Quantity:     in.Quantity,
		AvgCost:      in.AvgCost,
		CurrentPrice: price,
		Currency:     region.Currency(),
	}, nil
}

// ValidatePatch rejects negative numeric fields and unknown regions.
func ValidatePatch(p StockPatch) error {
	if p.IsEmpty() {
		return invalid("nothing to update")
	}
	for _, v := range []*decimal.Decimal{p.Quantity, p.AvgCost, p.CurrentPrice} {
		if v != nil && v.IsNegative() {
			return invalid("values must not be negative")
		}
	}
	if p.Region != nil && !p.Region.Valid() {
		return invalid("unknown region %q", *p.Region)
	}
	return nil
}
