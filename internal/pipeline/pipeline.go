// Package pipeline orchestrates the full compile of one ChrProgram:
// occurrence expansion, auto-persistent inference, dependency-graph
// construction, the head/guard/index rewrite passes, never-stored
// inference, late storage, and finally abstract-code emission.
package pipeline

import (
	"bytes"
	"fmt"

	"chrc/internal/analysis"
	"chrc/internal/ast"
	"chrc/internal/config"
	"chrc/internal/depgraph"
	"chrc/internal/emit"
	"chrc/internal/occurrence"
	"chrc/internal/rewrite"
)

// Result bundles everything a caller might want after a successful
// compile: the (possibly pruned) program, its dependency graph, the
// occurrences dropped by never-stored inference, and the two rendered
// abstract-code streams.
type Result struct {
	Program        *ast.ChrProgram
	Graph          *depgraph.Graph
	Dropped        []analysis.DroppedOccurrence
	DataStructs    string
	RuleCode       string
	DependencyDump string
}

// Compile runs every pass over p in this order:
// C (occurrence expansion), E (auto-persistent), D (dependency graph),
// F/G/H (rewrite passes), I (never-stored), J (late storage),
// K (abstract code emission).
func Compile(p *ast.ChrProgram, cfg config.Config) Result {
	if cfg.Trace {
		fmt.Printf("compiling chr_program %s\n", p.Name)
	}

	occurrence.Build(p, cfg)

	analysis.AutoPersistent(p)

	graph := depgraph.Build(p)

	rewrite.NewPipeline(cfg, p).Run(p)

	dropped := analysis.NeverStored(p, cfg)

	analysis.LateStorage(p, graph)

	var dsBuf, rcBuf bytes.Buffer
	e1 := emit.New(&dsBuf)
	e1.EmitDataStructures(p)
	e2 := emit.New(&rcBuf)
	e2.EmitRuleCode(p)

	return Result{
		Program:        p,
		Graph:          graph,
		Dropped:        dropped,
		DataStructs:    dsBuf.String(),
		RuleCode:       rcBuf.String(),
		DependencyDump: graph.Dump(),
	}
}
