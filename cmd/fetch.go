package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/histvar"
	"github.com/etnz/histvar/date"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	tickers    string
	from       string
	to         string
	source     string
	fixtureDir string
	out        string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download prices into local fixture files" }
func (*fetchCmd) Usage() string {
	return `fetch -tickers MC.PA,OR.PA [-from <date>] [-to <date>] [-o <dir>]

  Downloads daily prices from the selected source and writes them as JSONL
  fixture files, one per ticker. The files can later feed an offline
  analysis with -source fixture.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tickers, "tickers", "", "comma-separated tickers to download")
	f.StringVar(&c.from, "from", "-5y", "start of the price history. See 'topic dates' for supported formats.")
	f.StringVar(&c.to, "to", "0d", "end of the price history. See 'topic dates' for supported formats.")
	f.StringVar(&c.source, "source", "eodhd", "price source: eodhd or yahoo")
	f.StringVar(&c.fixtureDir, "fixture-dir", "", "directory of JSONL price fixtures for -source fixture")
	f.StringVar(&c.out, "o", "prices", "directory to write the fixture files into")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tickers := splitList(c.tickers)
	if len(tickers) == 0 {
		fmt.Fprintf(os.Stderr, "Error: -tickers is required\n")
		return subcommands.ExitUsageError
	}
	from, err := date.Parse(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -from: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := date.Parse(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -to: %v\n", err)
		return subcommands.ExitUsageError
	}
	src, err := newSource(c.source, c.fixtureDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	panel, err := src.Prices(tickers, date.NewRange(from, to))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, ticker := range tickers {
		prices := panel.Series(ticker)
		if prices == nil || prices.Len() == 0 {
			fmt.Printf("%s: no prices\n", ticker)
			continue
		}
		first, _ := prices.First()
		last, _ := prices.Latest()
		fmt.Printf("%s: %d prices from %s to %s\n", ticker, prices.Len(), first, last)
	}

	if err := histvar.WriteFixtures(c.out, panel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Fixtures written to %s\n", c.out)
	return subcommands.ExitSuccess
}
