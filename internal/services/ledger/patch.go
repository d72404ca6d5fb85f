package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/wealthflow/internal/models"
)

// StockPatch lists the holding fields to overwrite. Nil fields are left unchanged.
// Symbol is the holding's key and cannot be patched.
type StockPatch struct {
	Name         *string
	Region       *models.Region
	Quantity     *decimal.Decimal
	AvgCost      *decimal.Decimal
	CurrentPrice *decimal.Decimal
	Currency     *string
}

// Apply returns st with the supplied fields replaced.
func (p StockPatch) Apply(st models.Stock) models.Stock {
	if p.Name != nil {
		st.Name = *p.Name
	}
	if p.Region != nil {
		st.Region = *p.Region
	}
	if p.Quantity != nil {
		st.Quantity = *p.Quantity
	}
	if p.AvgCost != nil {
		st.AvgCost = *p.AvgCost
	}
	if p.CurrentPrice != nil {
		st.CurrentPrice = *p.CurrentPrice
	}
	if p.Currency != nil {
		st.Currency = *p.Currency
	}
	return st
}

// IsEmpty reports whether the patch changes nothing.
func (p StockPatch) IsEmpty() bool {
	return p.Name == nil && p.Region == nil && p.Quantity == nil &&
		p.AvgCost == nil && p.CurrentPrice == nil && p.Currency == nil
}

// WithName sets Name.
func (p StockPatch) WithName(name string) StockPatch {
	p.Name = &name
	return p
}

// WithQuantity sets Quantity.
func (p StockPatch) WithQuantity(q decimal.Decimal) StockPatch {
	p.Quantity = &q
	return p
}

// WithAvgCost sets AvgCost.
func (p StockPatch) WithAvgCost(c decimal.Decimal) StockPatch {
	p.AvgCost = &c
	return p
}

// WithCurrentPrice sets CurrentPrice.
func (p StockPatch) WithCurrentPrice(price decimal.Decimal) StockPatch {
	p.CurrentPrice = &price
	return p
}
