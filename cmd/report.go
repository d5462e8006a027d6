package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/histvar"
	"github.com/etnz/histvar/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	analysisFlags
	mode string
	out  string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "write a full risk report with charts" }
func (*reportCmd) Usage() string {
	return `report -weights "MC.PA=0.6,OR.PA=0.4" [-mode <mode>] [-o <dir>]

  Runs the full analysis and renders the report. Without -o the report is
  displayed on the terminal; with -o the markdown and the PNG charts are
  written into the given directory.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.mode, "mode", "both", "which computations to run: full, rolling or both")
	f.StringVar(&c.out, "o", "", "directory to write report.md and the charts into")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mode, err := histvar.ParseMode(c.mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := c.config(mode)
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

	if c.out == "" {
		printMarkdown(renderer.VaRMarkdown(report))
		return subcommands.ExitSuccess
	}

	if err := writeReport(c.out, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Report written to %s\n", c.out)
	return subcommands.ExitSuccess
}

// writeReport writes the markdown report and the charts for the computed
// modes into dir.
func writeReport(dir string, report *histvar.VaRReport) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	markdown := renderer.VaRMarkdown(report)
	if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(markdown), 0644); err != nil {
		return err
	}

	charts := []struct {
		name   string
		skip   bool
		render func(*histvar.VaRReport) ([]byte, error)
	}{
		{"fullperiod.png", len(report.Full) == 0, renderer.FullPeriodChart},
		{"rolling.png", len(report.Rolling) == 0, renderer.RollingChart},
		{"returns.png", report.Returns.Len() == 0, renderer.ReturnsChart},
	}
	for _, chart := range charts {
		if chart.skip {
			continue
		}
		img, err := chart.render(report)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", chart.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, chart.name), img, 0644); err != nil {
			return err
		}
	}
	return nil
}
