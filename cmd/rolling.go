package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/histvar"
	"github.com/etnz/histvar/renderer"
	"github.com/google/subcommands"
)

// rollingCmd holds the flags for the 'rolling' subcommand.
type rollingCmd struct {
	analysisFlags
	list bool
}

func (*rollingCmd) Name() string     { return "rolling" }
func (*rollingCmd) Synopsis() string { return "compute value at risk over rolling windows" }
func (*rollingCmd) Usage() string {
	return `rolling -weights "MC.PA=0.6,OR.PA=0.4" [-window <span>] [-step <period>]

  Computes the historical VaR of a portfolio over rolling calendar windows
  and displays how it evolved.
`
}

func (c *rollingCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.BoolVar(&c.list, "list", false, "list every window result instead of the summary")
}

func (c *rollingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.config(histvar.ModeRolling)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	src, err := c.newSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report, err := histvar.NewVaRReport(src, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.list {
		printMarkdown(renderer.ResultList(report.Rolling, report.Notional))
	} else {
		printMarkdown(renderer.VaRMarkdown(report))
	}
	return subcommands.ExitSuccess
}
