package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/models"
	"github.com/bobmcallan/wealthflow/internal/services/metrics"
	"github.com/bobmcallan/wealthflow/internal/services/report"
)

type tokenCmd struct {
	id     string
	name   string
	email  string
	avatar string
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "issue a signed identity token for local use" }
func (*tokenCmd) Usage() string {
	return `wealthflow token -id <user id> [-name <name>] [-email <email>] [-avatar <url>]

  Prints an HS256 token signed with [auth] jwt_secret, for use with watch.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "User id (token subject)")
	f.StringVar(&c.name, "name", "", "Display name")
	f.StringVar(&c.email, "email", "", "Email address")
	f.StringVar(&c.avatar, "avatar", "", "Avatar URL")
}

func (c *tokenCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.id) == "" {
		errorf("-id is required\n")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	token, err := a.Identity.IssueToken(models.User{ID: c.id, Name: c.name, Email: c.email, AvatarURL: c.avatar})
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printf("%s\n", token)
	return subcommands.ExitSuccess
}

type watchCmd struct {
	token string
	ticks int
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "sign in and follow simulated prices until interrupted" }
func (*watchCmd) Usage() string {
	return `wealthflow watch [-token <jwt>] [-ticks <n>]

  Signs in with the token (or $WEALTHFLOW_TOKEN), which arms the price
  simulator, and prints net worth after every price tick. Stops on Ctrl-C or
  after -ticks updates.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.token, "token", "", "Identity token, defaults to $WEALTHFLOW_TOKEN")
	f.IntVar(&c.ticks, "ticks", 0, "Stop after this many price updates (0 = run until interrupted)")
}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	token := c.token
	if token == "" {
		token = os.Getenv("WEALTHFLOW_TOKEN")
	}
	if token == "" {
		errorf("-token or WEALTHFLOW_TOKEN is required\n")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		errorf("Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	common.PrintBanner(stdout, a.Config, a.Logger)
	if !a.Config.Simulator.Enabled {
		a.Logger.Warn().Msg("Simulator disabled in config, prices will not move")
	}

	a.WatchIdentity(ctx)
	user, err := a.Identity.SignIn(ctx, token)
	if err != nil {
		errorf("Sign-in failed: %v\n", err)
		return subcommands.ExitFailure
	}
	printf("Signed in as %s <%s>\n", user.Name, user.Email)

	c.follow(ctx, a.Controller.State, a.Rates, a.Config.Simulator.GetInterval())

	if err := a.Identity.SignOut(context.Background()); err != nil {
		a.Logger.Warn().Err(err).Msg("Sign-out failed")
	}
	waitFor(func() bool { return a.Controller.State().User == nil }, time.Second)

	common.PrintShutdownBanner(stdout, a.Logger)
	return subcommands.ExitSuccess
}

// follow prints net worth whenever the snapshot changes, polling at the tick
// interval, until ctx ends or c.ticks updates were seen.
func (c *watchCmd) follow(ctx context.Context, state func() *models.AppState, rates metrics.Rates, interval time.Duration) {
	ticker := time.NewTicker(max(interval/2, 10*time.Millisecond))
	defer ticker.Stop()

	last := state()
	seen := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := state()
			if s == last {
				continue
			}
			last = s
			if s.User == nil {
				continue
			}
			seen++
			pf := metrics.Portfolio(s, rates)
			printf("%s  net worth %s  portfolio %s (%s)\n",
				time.Now().Format("15:04:05"),
				report.FormatMoney(metrics.NetWorth(s, rates), rates.Home),
				report.FormatMoney(pf.Value, rates.Home),
				report.FormatSignedPct(pf.PLPercent()))
			if c.ticks > 0 && seen >= c.ticks {
				return
			}
		}
	}
}

// waitFor polls cond until it holds or timeout passes.
func waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}
