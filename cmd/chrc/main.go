// Command chrc compiles a file of chr_program blocks into the two
// abstract-code streams and a dependency-graph dump, grounded on the
// teacher's cmd/kanso-cli driver.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"chrc/internal/config"
	"chrc/internal/grammar"
	"chrc/internal/pipeline"
	"chrc/repl"
)

func main() {
	cfg := config.Default()

	trace := flag.Bool("trace", false, "print per-pass progress")
	noHeadReorder := flag.Bool("no-head-reorder", false, "disable pass F (head reorder)")
	noGuardReorder := flag.Bool("no-guard-reorder", false, "disable pass G (guard reorder)")
	noIndex := flag.Bool("no-index", false, "disable pass H (index synthesis)")
	noNeverStored := flag.Bool("no-never-stored", false, "disable pass I (never-stored inference)")
	occReorder := flag.Bool("occurrences-reorder", false, "expand deleted-head atoms before kept-head atoms")
	lineError := flag.Bool("line-error", true, "prefix diagnostics with path:line:col:")
	outDir := flag.String("out", ".", "output directory for emitted code")
	flag.Parse()

	cfg.Trace = *trace
	cfg.HeadReorder = !*noHeadReorder
	cfg.GuardReorder = !*noGuardReorder
	cfg.ConstraintStoreIndex = !*noIndex
	cfg.NeverStored = !*noNeverStored
	cfg.OccurrencesReorder = *occReorder
	cfg.LineError = *lineError
	cfg.OutputDir = *outDir

	if flag.NArg() == 0 {
		repl.Start(os.Stdin, os.Stdout)
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: chrc [flags] <file.chr>")
		os.Exit(2)
	}

	path := flag.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}

	programs, errs := grammar.ParseSource(path, string(source))
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), e)
	}
	if len(programs) == 0 {
		os.Exit(1)
	}

	for _, p := range programs {
		result := pipeline.Compile(p, cfg)

		if err := writeOutput(*outDir, p.Name+".store.txt", result.DataStructs); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
			os.Exit(1)
		}
		if err := writeOutput(*outDir, p.Name+".rules.txt", result.RuleCode); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
			os.Exit(1)
		}
		if err := writeOutput(*outDir, p.Name+".deps.txt", result.DependencyDump); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
			os.Exit(1)
		}

		fmt.Println(color.GreenString("✓"), p.Name, fmt.Sprintf("(%d occurrence rules, %d dropped)", len(p.OccRules), len(result.Dropped)))
	}
}

func writeOutput(dir, name, content string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}
