package ledger

import "github.com/bobmcallan/wealthflow/internal/models"

// Action is a command the controller dispatches against the current snapshot.
type Action interface {
	Apply(s *models.AppState) *models.AppState
	Name() string
}

type AddAccountAction struct{ Account models.Account }

func (a AddAccountAction) Apply(s *models.AppState) *models.AppState { return AddAccount(s, a.Account) }
func (AddAccountAction) Name() string                                { return "add_account" }

type DeleteAccountAction struct{ ID string }

func (a DeleteAccountAction) Apply(s *models.AppState) *models.AppState { return DeleteAccount(s, a.ID) }
func (DeleteAccountAction) Name() string                                { return "delete_account" }

type AddTransactionAction struct{ Transaction models.Transaction }

func (a AddTransactionAction) Apply(s *models.AppState) *models.AppState {
	return AddTransaction(s, a.Transaction)
}
func (AddTransactionAction) Name() string { return "add_transaction" }

type AddStockAction struct{ Stock models.Stock }

func (a AddStockAction) Apply(s *models.AppState) *models.AppState { return AddStock(s, a.Stock) }
func (AddStockAction) Name() string                                { return "add_stock" }

type UpdateStockAction struct {
	Symbol string
	Patch  StockPatch
}

func (a UpdateStockAction) Apply(s *models.AppState) *models.AppState {
	return UpdateStock(s, a.Symbol, a.Patch)
}
func (UpdateStockAction) Name() string { return "update_stock" }

// PriceTickAction is the synthetic action emitted by the price simulator.
type PriceTickAction struct {
	Perturb func([]models.Stock) []models.Stock
}

func (a PriceTickAction) Apply(s *models.AppState) *models.AppState { return ApplyPrices(s, a.Perturb) }
func (PriceTickAction) Name() string                                { return "price_tick" }

type SignInAction struct{ User models.User }

func (a SignInAction) Apply(s *models.AppState) *models.AppState { return AttachUser(s, a.User) }
func (SignInAction) Name() string                                { return "sign_in" }

type SignOutAction struct{}

func (SignOutAction) Apply(s *models.AppState) *models.AppState { return DetachUser(s) }
func (SignOutAction) Name() string                              { return "sign_out" }
