// Package rewrite applies the per-occurrence-rule rewrite passes (head
// reorder, guard hoist, index synthesis) through a small pass/pipeline
// abstraction modeled on a conventional optimizer: each pass reports
// whether it changed anything, and the pipeline runs every registered
// pass over every occurrence rule in order.
package rewrite

import (
	"fmt"

	"chrc/internal/ast"
	"chrc/internal/config"
)

// Pass rewrites a single occurrence rule in place and reports whether
// it made a change.
type Pass interface {
	Name() string
	Description() string
	Apply(occ *ast.OccRule) bool
}

// Pipeline runs a fixed, ordered set of passes over every occurrence
// rule of a program.
type Pipeline struct {
	passes []Pass
	trace  bool
}

// NewPipeline builds the standard F -> G -> H pipeline, each pass gated
// by its own config flag. program is threaded through to IndexSynthesis,
// which registers indexes on the program's own constraint declarations.
func NewPipeline(cfg config.Config, program *ast.ChrProgram) *Pipeline {
	p := &Pipeline{trace: cfg.Trace}
	if cfg.HeadReorder {
		p.Add(HeadReorder{})
	}
	if cfg.GuardReorder {
		p.Add(GuardReorder{})
	}
	if cfg.ConstraintStoreIndex {
		p.Add(IndexSynthesis{Program: program})
	}
	return p
}

// Add appends a pass to the pipeline's run order.
func (p *Pipeline) Add(pass Pass) { p.passes = append(p.passes, pass) }

// Run applies every pass, in registration order, to every occurrence
// rule in the program.
func (p *Pipeline) Run(program *ast.ChrProgram) {
	for _, pass := range p.passes {
		if p.trace {
			fmt.Printf("  - %s: %s\n", pass.Name(), pass.Description())
		}
		for _, occ := range program.OccRules {
			pass.Apply(occ)
		}
	}
}
