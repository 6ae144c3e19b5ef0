package emit_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"chrc/internal/ast"
	"chrc/internal/emit"
)

func TestEmitDataStructuresRendersIndexesAndPragmas(t *testing.T) {
	p := ast.NewChrProgram("t")
	decl := &ast.ChrConstraintDecl{Name: "foo", Arity: 2, Pragmas: ast.PragmaSet{ast.PragmaBang}}
	decl.AddIndex(ast.IndexKey{0})
	p.AddDecl(decl)

	var buf bytes.Buffer
	emit.New(&buf).EmitDataStructures(p)

	out := buf.String()
	assert.Contains(t, out, "foo/2")
	assert.Contains(t, out, "indexes: {<0>}")
	assert.Contains(t, out, "# bang")
}

func TestEmitRuleCodeWritesLabelAndFailThrough(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 1})

	occ := &ast.OccRule{
		ActiveConstraint:       &ast.HeadAtom{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
		OccurrenceIndex:        0,
		KeepActiveConstraint:   true,
		StoreActiveConstraintF: true,
		GuardParts:             [][]ast.Expr{{&ast.LogicalVariable{Name: "X"}}},
		Body:                   &ast.Keyword{Name: "true"},
	}
	p.OccRules = append(p.OccRules, occ)

	var buf bytes.Buffer
	emit.New(&buf).EmitRuleCode(p)

	out := buf.String()
	assert.Contains(t, out, "foo_0:")
	assert.Contains(t, out, "If guard is failure")
	assert.Contains(t, out, "Goto foo_store")
	assert.Contains(t, out, "Begin foo_store")
	assert.Contains(t, out, "Store constraint foo")
	assert.Contains(t, out, "Goto next goal constraint")
}

func TestEmitRuleCodePartnerLoopFullScan(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 1})
	p.AddDecl(&ast.ChrConstraintDecl{Name: "bar", Arity: 1})

	occ := &ast.OccRule{
		ActiveConstraint: &ast.HeadAtom{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
		Partners: []*ast.OccPartner{
			{Atom: &ast.HeadAtom{Name: "bar", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}}, Keep: true, UseIndex: -1},
		},
		KeepActiveConstraint:   true,
		StoreActiveConstraintF: true,
		GuardParts:             [][]ast.Expr{{}, {}},
		Body:                   &ast.Keyword{Name: "true"},
	}
	p.OccRules = append(p.OccRules, occ)

	var buf bytes.Buffer
	emit.New(&buf).EmitRuleCode(p)

	out := buf.String()
	assert.Contains(t, out, "For each p0 in store bar")
	assert.Contains(t, out, "Check p0.arg(0) unifies with $X")
	assert.Contains(t, out, "End for")
}

func TestEmitRuleCodePartnerLoopUsesSynthesizedIndex(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 1})
	barDecl := &ast.ChrConstraintDecl{Name: "bar", Arity: 1}
	barDecl.AddIndex(ast.IndexKey{0})
	p.AddDecl(barDecl)

	occ := &ast.OccRule{
		ActiveConstraint: &ast.HeadAtom{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
		Partners: []*ast.OccPartner{
			{Atom: &ast.HeadAtom{Name: "bar", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}}, Keep: true, UseIndex: 0},
		},
		KeepActiveConstraint:   true,
		StoreActiveConstraintF: true,
		GuardParts:             [][]ast.Expr{{}, {}},
		Body:                   &ast.Keyword{Name: "true"},
	}
	p.OccRules = append(p.OccRules, occ)

	var buf bytes.Buffer
	emit.New(&buf).EmitRuleCode(p)

	assert.Contains(t, buf.String(), "For each p0 in store bar using index 0 keyed by ($X)")
}

func TestEmitRuleCodeCommitSkipsStoreWhenActiveIsDeleted(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 0})

	occ := &ast.OccRule{
		ActiveConstraint:     &ast.HeadAtom{Name: "foo"},
		KeepActiveConstraint: false,
		GuardParts:           [][]ast.Expr{{}},
		Body:                 &ast.Keyword{Name: "true"},
	}
	p.OccRules = append(p.OccRules, occ)

	var buf bytes.Buffer
	emit.New(&buf).EmitRuleCode(p)

	out := buf.String()
	before, _, found := strings.Cut(out, "Begin foo_store")
	assert.True(t, found)
	assert.NotContains(t, before, "Store constraint")
	assert.Contains(t, out, "true")
}

func TestEmitRuleCodeCommitStoresKeptActiveBeforeBody(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 0})

	occ := &ast.OccRule{
		ActiveConstraint:       &ast.HeadAtom{Name: "foo"},
		KeepActiveConstraint:   true,
		StoreActiveConstraintF: true,
		GuardParts:             [][]ast.Expr{{}},
		Body:                   &ast.Keyword{Name: "true"},
	}
	p.OccRules = append(p.OccRules, occ)

	var buf bytes.Buffer
	emit.New(&buf).EmitRuleCode(p)

	lines := strings.Split(buf.String(), "\n")
	storeIdx, bodyIdx := -1, -1
	for i, l := range lines {
		if strings.Contains(l, "Store constraint foo") && storeIdx == -1 {
			storeIdx = i
		}
		if strings.TrimSpace(l) == "true" {
			bodyIdx = i
		}
	}
	assert.NotEqual(t, -1, storeIdx)
	assert.NotEqual(t, -1, bodyIdx)
	assert.Less(t, storeIdx, bodyIdx, "the active constraint must be stored before the body runs")
}

func TestEmitStoreActiveConstraintSchedulesFreshArgs(t *testing.T) {
	p := ast.NewChrProgram("t")
	decl := &ast.ChrConstraintDecl{Name: "foo", Arity: 1}
	p.AddDecl(decl)

	occ := &ast.OccRule{
		ActiveConstraint: &ast.HeadAtom{
			Name: "foo",
			Args: []ast.Expr{&ast.PrefixExpr{Op: "-", Operand: &ast.LogicalVariable{Name: "X"}}},
		},
		OccurrenceIndex:        0,
		KeepActiveConstraint:   true,
		StoreActiveConstraintF: true,
		GuardParts:             [][]ast.Expr{{}},
	}
	p.OccRules = append(p.OccRules, occ)

	var buf bytes.Buffer
	emit.New(&buf).EmitRuleCode(p)

	assert.Contains(t, buf.String(), "Schedule constraint foo with variable index 0")
}

func TestEmitOmitsScheduleWhenNeverStored(t *testing.T) {
	p := ast.NewChrProgram("t")
	decl := &ast.ChrConstraintDecl{Name: "foo", Arity: 1, NeverStored: true}
	p.AddDecl(decl)

	occ := &ast.OccRule{
		ActiveConstraint: &ast.HeadAtom{
			Name: "foo",
			Args: []ast.Expr{&ast.PrefixExpr{Op: "-", Operand: &ast.LogicalVariable{Name: "X"}}},
		},
		OccurrenceIndex:        0,
		KeepActiveConstraint:   true,
		StoreActiveConstraintF: true,
		GuardParts:             [][]ast.Expr{{}},
	}
	p.OccRules = append(p.OccRules, occ)

	var buf bytes.Buffer
	emit.New(&buf).EmitRuleCode(p)

	assert.False(t, strings.Contains(buf.String(), "Schedule constraint"))
}
