// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"chrc/internal/config"
	"chrc/internal/grammar"
	"chrc/internal/pipeline"
)

const PROMPT = ">> "

// Start reads chr_program blocks from in, one at a time terminated by a
// blank line, and prints the resolved occurrence rules and dependency
// graph for each.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	cfg := config.Default()

	for {
		fmt.Fprint(out, PROMPT)

		var lines []string
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" && len(lines) > 0 {
				break
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			return
		}

		source := strings.Join(lines, "\n")
		programs, errs := grammar.ParseSource("<repl>", source)
		for _, err := range errs {
			fmt.Fprintln(out, "error:", err)
		}

		for _, p := range programs {
			result := pipeline.Compile(p, cfg)
			fmt.Fprintf(out, "program %s: %d occurrence rules, %d dropped\n", p.Name, len(p.OccRules), len(result.Dropped))
			for _, occ := range p.OccRules {
				fmt.Fprintln(out, " ", occ.String())
			}
			fmt.Fprint(out, result.DependencyDump)
		}
	}
}
