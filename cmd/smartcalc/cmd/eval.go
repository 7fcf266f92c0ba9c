package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcalc/smartcalc/format"
)

var (
	evalVerbose bool
	evalFormat  string
)

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate SmartCalc input and print the result",
	Long: `Evaluate a SmartCalc file or stdin and print the result.

Examples:
  smartcalc eval calc.txt        Evaluate file and print result
  smartcalc eval -v calc.txt     Evaluate, also echoing each source line
  echo "2 + 2" | smartcalc eval  Evaluate from stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEval(args)
	},
}

func init() {
	evalCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "echo each source line alongside its result")
	evalCmd.Flags().StringVarP(&evalFormat, "format", "f", "text", "output format: text, json, md, html")
	rootCmd.AddCommand(evalCmd)
}

func runEval(args []string) error {
	var input string
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		input = string(data)
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return fmt.Errorf("no input provided")
		}
		input = string(data)
	}

	calc, err := newCalc()
	if err != nil {
		return err
	}
	out := calc.Execute("en", input)

	formatter := format.GetFormatter(evalFormat, "")
	opts := format.Options{Verbose: evalVerbose, IncludeErrors: true}
	if err := formatter.Format(os.Stdout, out, opts); err != nil {
		return fmt.Errorf("format error: %w", err)
	}
	return nil
}
