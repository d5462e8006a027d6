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

// varCmd holds the flags for the 'var' subcommand.
type varCmd struct {
	analysisFlags
}

func (*varCmd) Name() string     { return "var" }
func (*varCmd) Synopsis() string { return "compute full-period value at risk" }
func (*varCmd) Usage() string {
	return `var -weights "MC.PA=0.6,OR.PA=0.4" [-from <date>] [-to <date>]

  Computes the historical VaR of a portfolio over the whole price history
  and displays it per confidence level.
`
}

func (c *varCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *varCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.config(histvar.ModeFull)
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

	printMarkdown(renderer.VaRMarkdown(report))
	return subcommands.ExitSuccess
}
