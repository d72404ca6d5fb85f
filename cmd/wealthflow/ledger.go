package main

import (
	"context"
	"flag"
	"strings"

	"github.com/google/subcommands"

	"github.com/bobmcallan/wealthflow/internal/models"
	"github.com/bobmcallan/wealthflow/internal/services/ledger"
	"github.com/bobmcallan/wealthflow/internal/services/report"
)

type addAccountCmd struct {
	name     string
	typ      string
	balance  string
	currency string
	bank     string
	number   string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "open an account with an opening balance" }
func (*addAccountCmd) Usage() string {
	return `wealthflow add-account -name <name> -balance <amount> [-type BANK|CASH|INVESTMENT|CREDIT] [-currency TWD] [-bank <bank>] [-number <account no>]
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name")
	f.StringVar(&c.typ, "type", string(models.AccountTypeBank), "Account type")
	f.StringVar(&c.balance, "balance", "", "Opening balance")
	f.StringVar(&c.currency, "currency", "TWD", "Account currency")
	f.StringVar(&c.bank, "bank", "", "Bank name")
	f.StringVar(&c.number, "number", "", "Account number, usually masked")
}

func (c *addAccountCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	balance, err := parseAmount("balance", c.balance)
	if err != nil {
		errorf("%v\n", err)
		return subcommands.ExitUsageError
	}
	account, err := ledger.NewAccount(ledger.AccountInput{
		Name:          c.name,
		Type:          models.AccountType(strings.ToUpper(c.typ)),
		Balance:       &balance,
		Currency:      c.currency,
		BankName:      c.bank,
		AccountNumber: c.number,
	})
	if err != nil {
		errorf("%v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	a.Controller.Dispatch(ledger.AddAccountAction{Account: account})
	printf("Added account %s (%s) %s\n", account.ID, account.Name, report.FormatMoney(account.Balance, account.Currency))
	return subcommands.ExitSuccess
}

type deleteAccountCmd struct{}

func (*deleteAccountCmd) Name() string     { return "delete-account" }
func (*deleteAccountCmd) Synopsis() string { return "remove an account; its transactions are kept" }
func (*deleteAccountCmd) Usage() string {
	return `wealthflow delete-account <account id>

  Removes the account. Transactions that referenced it remain and are shown
  as unlinked. Deleting an unknown id changes nothing.
`
}
func (*deleteAccountCmd) SetFlags(*flag.FlagSet) {}

func (*deleteAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		errorf("delete-account takes exactly one account id\n")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if a.Controller.State().FindAccount(id) == nil {
		printf("No account %s\n", id)
		return subcommands.ExitSuccess
	}
	a.Controller.Dispatch(ledger.DeleteAccountAction{ID: id})
	printf("Deleted account %s\n", id)
	return subcommands.ExitSuccess
}

type addTxCmd struct {
	account  string
	typ      string
	amount   string
	date     string
	category string
	note     string
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "record income or an expense against an account" }
func (*addTxCmd) Usage() string {
	return `wealthflow add-tx -account <id> -amount <amount> -category <id> [-type EXPENSE|INCOME] [-date YYYY-MM-DD] [-note <text>]

  The account balance moves by the amount: up for INCOME, down for EXPENSE.
`
}

func (c *addTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account id")
	f.StringVar(&c.typ, "type", string(models.TransactionTypeExpense), "INCOME or EXPENSE")
	f.StringVar(&c.amount, "amount", "", "Amount, positive")
	f.StringVar(&c.date, "date", "", "Date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.category, "category", "", "Category id")
	f.StringVar(&c.note, "note", "", "Free-text note")
}

func (c *addTxCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount("amount", c.amount)
	if err != nil {
		errorf("%v\n", err)
		return subcommands.ExitUsageError
	}
	var date models.Date
	if c.date != "" {
		if date, err = models.ParseDate(c.date); err != nil {
			errorf("Invalid -date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	tx, err := ledger.NewTransaction(ledger.TransactionInput{
		AccountID:  c.account,
		Type:       models.TransactionType(strings.ToUpper(c.typ)),
		Amount:     amount,
		Date:       date,
		CategoryID: c.category,
		Note:       c.note,
	})
	if err != nil {
		errorf("%v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	s := a.Controller.State()
	if s.FindAccount(tx.AccountID) == nil {
		errorf("Unknown account %q\n", tx.AccountID)
		return subcommands.ExitUsageError
	}
	if s.FindCategory(tx.CategoryID) == nil {
		errorf("Unknown category %q\n", tx.CategoryID)
		return subcommands.ExitUsageError
	}

	next := a.Controller.Dispatch(ledger.AddTransactionAction{Transaction: tx})
	acc := next.FindAccount(tx.AccountID)
	printf("Recorded %s %s on %s, %s balance %s\n",
		tx.Type.Label(), report.FormatMoney(tx.Amount, acc.Currency), tx.Date, acc.Name,
		report.FormatMoney(acc.Balance, acc.Currency))
	return subcommands.ExitSuccess
}

type addStockCmd struct {
	symbol string
	name   string
	region string
	qty    string
	cost   string
	price  string
}

func (*addStockCmd) Name() string     { return "add-stock" }
func (*addStockCmd) Synopsis() string { return "add a holding to the portfolio" }
func (*addStockCmd) Usage() string {
	return `wealthflow add-stock -symbol <symbol> -qty <shares> -cost <avg cost> [-name <name>] [-region TW|US] [-price <current price>]

  The current price defaults to the average cost; the currency follows the region.
`
}

func (c *addStockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Ticker symbol")
	f.StringVar(&c.name, "name", "", "Display name, defaults to the symbol")
	f.StringVar(&c.region, "region", string(models.RegionTW), "TW or US")
	f.StringVar(&c.qty, "qty", "", "Number of shares")
	f.StringVar(&c.cost, "cost", "", "Average cost per share")
	f.StringVar(&c.price, "price", "", "Current price per share")
}

func (c *addStockCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	qty, err := parseAmount("qty", c.qty)
	if err != nil {
		errorf("%v\n", err)
		return subcommands.ExitUsageError
	}
	cost, err := parseAmount("cost", c.cost)
	if err != nil {
		errorf("%v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := optionalAmount("price", c.price)
	if err != nil {
		errorf("%v\n", err)
		return subcommands.ExitUsageError
	}
	stock, err := ledger.NewStock(ledger.StockInput{
		Symbol:       c.symbol,
		Name:         c.name,
		Region:       models.Region(strings.ToUpper(c.region)),
		Quantity:     qty,
		AvgCost:      cost,
		CurrentPrice: price,
	})
	if err != nil {
		errorf("%v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if a.Controller.State().FindStock(stock.Symbol) != nil {
		printf("Note: %s is already held; use update-stock to change it\n", stock.Symbol)
	}
	a.Controller.Dispatch(ledger.AddStockAction{Stock: stock})
	printf("Added %s %s x %s @ %s\n", stock.Symbol, stock.Name, stock.Quantity, report.FormatMoney(stock.AvgCost, stock.Currency))
	return subcommands.ExitSuccess
}

type updateStockCmd struct {
	name     string
	region   string
	qty      string
	cost     string
	price    string
	currency string
}

func (*updateStockCmd) Name() string     { return "update-stock" }
func (*updateStockCmd) Synopsis() string { return "change fields of a holding" }
func (*updateStockCmd) Usage() string {
	return `wealthflow update-stock [-name <name>] [-region TW|US] [-qty <shares>] [-cost <avg cost>] [-price <price>] [-currency <code>] <symbol>

  Only the flags given are changed.
`
}

func (c *updateStockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New display name")
	f.StringVar(&c.region, "region", "", "New region")
	f.StringVar(&c.qty, "qty", "", "New number of shares")
	f.StringVar(&c.cost, "cost", "", "New average cost")
	f.StringVar(&c.price, "price", "", "New current price")
	f.StringVar(&c.currency, "currency", "", "New currency")
}

// patch builds a StockPatch from the flags that were given.
func (c *updateStockCmd) patch(set map[string]bool) (ledger.StockPatch, error) {
	var p ledger.StockPatch
	if set["name"] {
		p = p.WithName(c.name)
	}
	if set["region"] {
		r := models.Region(strings.ToUpper(c.region))
		p.Region = &r
	}
	if set["currency"] {
		cur := strings.ToUpper(c.currency)
		p.Currency = &cur
	}
	if set["qty"] {
		d, err := parseAmount("qty", c.qty)
		if err != nil {
			return p, err
		}
		p = p.WithQuantity(d)
	}
	if set["cost"] {
		d, err := parseAmount("cost", c.cost)
		if err != nil {
			return p, err
		}
		p = p.WithAvgCost(d)
	}
	if set["price"] {
		d, err := parseAmount("price", c.price)
		if err != nil {
			return p, err
		}
		p = p.WithCurrentPrice(d)
	}
	return p, ledger.ValidatePatch(p)
}

func (c *updateStockCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		errorf("update-stock takes exactly one symbol\n")
		return subcommands.ExitUsageError
	}
	symbol := models.NormalizeSymbol(f.Arg(0))

	p, err := c.patch(flagsSet(f))
	if err != nil {
		errorf("%v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if a.Controller.State().FindStock(symbol) == nil {
		errorf("No holding %s\n", symbol)
		return subcommands.ExitFailure
	}
	next := a.Controller.Dispatch(ledger.UpdateStockAction{Symbol: symbol, Patch: p})
	st := next.FindStock(symbol)
	printf("Updated %s %s x %s @ %s\n", st.Symbol, st.Name, st.Quantity, report.FormatMoney(st.CurrentPrice, st.Currency))
	return subcommands.ExitSuccess
}
