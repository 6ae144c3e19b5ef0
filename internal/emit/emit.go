// Package emit renders a fully analyzed ChrProgram into the two
// abstract-code streams the original compiler produces: constraint
// store declarations and per-occurrence rule code, using the exact
// fail-through wording and label scheme of chrppc's abstract-code
// visitors.
package emit

import (
	"fmt"
	"io"
	"strings"

	"chrc/internal/ast"
)

// Emitter writes the abstract-code text for a program to an io.Writer,
// tracking indentation the way the original ProgramAbstractCode /
// BodyAbstractCode visitors track a prefix depth.
type Emitter struct {
	w       io.Writer
	depth   int
	program *ast.ChrProgram
}

func New(w io.Writer) *Emitter { return &Emitter{w: w} }

func (e *Emitter) prefix() string { return strings.Repeat("\t", e.depth) }

func (e *Emitter) line(format string, args ...interface{}) {
	fmt.Fprintf(e.w, "%s%s\n", e.prefix(), fmt.Sprintf(format, args...))
}

// EmitDataStructures writes one constraint-store declaration line per
// declared constraint, including its synthesized indexes and pragmas.
func (e *Emitter) EmitDataStructures(p *ast.ChrProgram) {
	for _, name := range p.DeclNames() {
		decl := p.Decl(name)
		line := fmt.Sprintf("(constraint store) %s/%d", decl.Name, decl.Arity)
		if len(decl.Indexes) > 0 {
			parts := make([]string, len(decl.Indexes))
			for i, idx := range decl.Indexes {
				parts[i] = idx.String()
			}
			line += ", indexes: {" + strings.Join(parts, " ") + "}"
		}
		if pr := decl.Pragmas.String(); pr != "" {
			line += ", " + pr
		}
		e.line("%s", line)
	}
}

// EmitRuleCode writes the fail-through-and-occurrence code for every
// occurrence rule in the program, grounded on
// ProgramAbstractCode::visit.
func (e *Emitter) EmitRuleCode(p *ast.ChrProgram) {
	e.program = p
	remaining := map[string]*ast.ChrConstraintDecl{}
	for _, name := range p.DeclNames() {
		remaining[name] = p.Decl(name)
	}

	var activeDecl *ast.ChrConstraintDecl
	var activeAtom *ast.HeadAtom

	for i, occ := range p.OccRules {
		decl := p.Decl(occ.ActiveConstraint.Name)
		if decl != activeDecl {
			if activeDecl != nil {
				e.emitStoreActiveConstraint(activeAtom, activeDecl)
			}
			delete(remaining, decl.Name)
			activeDecl = decl
			activeAtom = occ.ActiveConstraint
		}

		nextLabel := fmt.Sprintf("%s_store", occ.ActiveConstraint.Name)
		if i+1 < len(p.OccRules) {
			next := p.OccRules[i+1]
			if next.ActiveConstraint.Name == occ.ActiveConstraint.Name {
				nextLabel = fmt.Sprintf("%s_%d", occ.ActiveConstraint.Name, next.OccurrenceIndex)
			}
		}

		e.emitOccurrenceRule(occ, nextLabel)
	}

	if activeDecl != nil {
		e.emitStoreActiveConstraint(activeAtom, activeDecl)
	}

	for _, name := range p.DeclNames() {
		if d, ok := remaining[name]; ok {
			e.emitStoreActiveConstraint(&ast.HeadAtom{Name: d.Name}, d)
		}
	}
}

// emitStoreActiveConstraint writes the fail-through block for a
// constraint's declaration, including one reactivation-scheduling line
// per fresh-binding argument position, unless the declaration is
// never-stored or carries no_reactivate.
func (e *Emitter) emitStoreActiveConstraint(active *ast.HeadAtom, decl *ast.ChrConstraintDecl) {
	e.line("// Fail through")
	e.line("Begin %s_store", decl.Name)
	e.depth++
	e.line("Store constraint %s", decl.Name)

	if !decl.NeverStored && !decl.Pragmas.Has(ast.PragmaNoReactivate) {
		for i, arg := range active.Args {
			if p, ok := arg.(*ast.PrefixExpr); ok && p.Mode() == ast.BindingFresh {
				e.line("Schedule constraint %s with variable index %d", decl.Name, i)
			}
		}
	}

	e.line("Goto next goal constraint")
	e.depth--
}

func (e *Emitter) emitOccurrenceRule(occ *ast.OccRule, nextLabel string) {
	e.line("%s:", occ.String())
	e.depth++

	be := &bodyEmitter{Emitter: e}
	be.emitOccurrence(occ, nextLabel)

	e.depth--
}
