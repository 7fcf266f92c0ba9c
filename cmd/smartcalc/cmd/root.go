package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smartcalc/smartcalc/catalog"
	"github.com/smartcalc/smartcalc/cmd/smartcalc/config"
	"github.com/smartcalc/smartcalc/format"
	"github.com/smartcalc/smartcalc/session"
)

var rootCmd = &cobra.Command{
	Use:   "smartcalc",
	Short: "SmartCalc - a natural-language line calculator",
	Long: `SmartCalc evaluates one calculation per line: arithmetic, percentages,
money, time/date arithmetic, and unit conversions, with variables that
carry forward across lines.

Examples:
  smartcalc                  Start interactive REPL
  smartcalc eval calc.txt    Evaluate a file and print the result
  smartcalc eval < input.txt Evaluate from stdin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// newCalc builds a session.Calc from the loaded CLI config, applying its
// locale overrides before the session's first Execute call.
func newCalc() (*session.Calc, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	calc := session.NewCalcWithCatalog(cat)
	if cfg.DecimalSeparator != "" {
		calc.Config().DecimalSeparator = cfg.DecimalSeparator
	}
	if cfg.ThousandSeparator != "" {
		calc.Config().ThousandSeparator = cfg.ThousandSeparator
	}
	if cfg.Timezone != "" {
		calc.Config().Timezone = cfg.Timezone
	}
	return calc, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default()
	}

	data, err := os.ReadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", cfg.CatalogPath, err)
	}
	b := catalog.NewBuilder()
	if err := b.LoadJSON(data); err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
	}
	logrus.WithField("path", cfg.CatalogPath).Info("loaded catalog override")
	return b.Build()
}

// runREPL reads lines from stdin, evaluating each through the same
// session so variables persist across the interaction, and prints each
// result as it is produced.
func runREPL() error {
	calc, err := newCalc()
	if err != nil {
		return err
	}

	formatter := format.GetFormatter("text", "")
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(os.Stderr, "smartcalc> (Ctrl-D to exit)")
	for scanner.Scan() {
		out := calc.Execute("en", scanner.Text())
		if err := formatter.Format(os.Stdout, out, format.Options{IncludeErrors: true}); err != nil {
			return err
		}
	}
	return scanner.Err()
}
