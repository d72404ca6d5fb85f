package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/bobmcallan/wealthflow/internal/models"
	"github.com/bobmcallan/wealthflow/internal/services/metrics"
	"github.com/bobmcallan/wealthflow/internal/services/report"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display net worth, income, expenses and the spending breakdown" }
func (*summaryCmd) Usage() string {
	return `wealthflow summary

  Displays the dashboard figures. Income and expense cover the whole history
  unless [metrics] monthly_scope = "month".
`
}
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	printf("%s", report.Summary(a.Controller.State(), a.ReportOptions()))
	return subcommands.ExitSuccess
}

type accountsCmd struct{}

func (*accountsCmd) Name() string             { return "accounts" }
func (*accountsCmd) Synopsis() string         { return "list accounts and balances" }
func (*accountsCmd) Usage() string            { return "wealthflow accounts\n" }
func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	printf("%s", report.Accounts(a.Controller.State()))
	return subcommands.ExitSuccess
}

type transactionsCmd struct {
	typ   string
	query string
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list transactions, newest first" }
func (*transactionsCmd) Usage() string {
	return `wealthflow transactions [-type INCOME|EXPENSE|TRANSFER] [-q <text>]

  Lists transactions with their account and category. -q matches the note or
  the category name.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "", "Only show transactions of this type")
	f.StringVar(&c.query, "q", "", "Only show transactions whose note or category contains this text")
}

func (c *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ := models.TransactionType(strings.ToUpper(strings.TrimSpace(c.typ)))
	if typ != "" && !typ.Valid() {
		errorf("Unknown transaction type %q\n", c.typ)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	rows := metrics.FilterTransactions(metrics.ResolveTransactions(a.Controller.State()), typ, strings.TrimSpace(c.query))
	printf("%s", report.Transactions(rows))
	return subcommands.ExitSuccess
}

type portfolioCmd struct{}

func (*portfolioCmd) Name() string             { return "portfolio" }
func (*portfolioCmd) Synopsis() string         { return "list holdings with market value and unrealised P&L" }
func (*portfolioCmd) Usage() string            { return "wealthflow portfolio\n" }
func (*portfolioCmd) SetFlags(*flag.FlagSet) {}

func (*portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	printf("%s", report.Portfolio(a.Controller.State(), a.ReportOptions()))
	return subcommands.ExitSuccess
}

type chartCmd struct {
	kind   string
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render a PNG chart of expenses or holdings" }
func (*chartCmd) Usage() string {
	return `wealthflow chart [-kind category|holdings] -o <file.png>

  category: expenses per category (pie)
  holdings: market value per holding in the home currency (bar)
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "category", "Chart to render: category or holdings")
	f.StringVar(&c.output, "o", "", "Output PNG file")
}

func (c *chartCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		errorf("-o is required\n")
		return subcommands.ExitUsageError
	}
	if c.kind != "category" && c.kind != "holdings" {
		errorf("Unknown chart kind %q\n", c.kind)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	s := a.Controller.State()
	var png []byte
	if c.kind == "holdings" {
		png, err = report.RenderHoldingsChart(metrics.Portfolio(s, a.Rates).Holdings)
	} else {
		png, err = report.RenderCategoryChart(metrics.CategoryBreakdown(s))
	}
	if err != nil {
		errorf("Error rendering chart: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := os.WriteFile(c.output, png, 0644); err != nil {
		errorf("Error writing %s: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	printf("Wrote %s (%d bytes)\n", c.output, len(png))
	return subcommands.ExitSuccess
}

type adviseCmd struct{}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "ask Gemini for short financial advice" }
func (*adviseCmd) Usage() string {
	return `wealthflow advise

  Sends a summary of balances, the five latest transactions and the three
  largest holdings to Gemini. Requires [clients.gemini] api_key or GEMINI_API_KEY.
`
}
func (*adviseCmd) SetFlags(*flag.FlagSet) {}

func (*adviseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	printf("%s\n", a.Advice.Generate(ctx, a.Controller.State()))
	return subcommands.ExitSuccess
}
