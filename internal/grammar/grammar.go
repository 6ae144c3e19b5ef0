package grammar

import "github.com/alecthomas/participle/v2/lexer"

// ProgramSrc is the raw parse tree of one "chr_program NAME { ... }"
// block.
type ProgramSrc struct {
	Pos    lexer.Position
	Name   string      `"chr_program" @Ident "{"`
	Items  []*ItemSrc  `( @@ )*`
	EndPos lexer.Position `"}"`
}

// ItemSrc is either a constraint declaration or a rule.
type ItemSrc struct {
	Decl *DeclSrc `  @@`
	Rule *RuleSrc `| @@`
}

// PragmasSrc is "# name" or "# { name, name, ... }".
type PragmasSrc struct {
	Names []string `"#" ( "{" @Ident ( "," @Ident )* "}" | @Ident )`
}

// DeclSrc is "constraint name/arity [pragmas]."
type DeclSrc struct {
	Pos     lexer.Position
	Name    string      `"constraint" @Ident`
	Arity   int         `"/" @Integer`
	Pragmas *PragmasSrc `@@?`
	End     lexer.Position `"."`
}

// AtomSrc is one head/body constraint atom: "name(args) [pragmas]".
type AtomSrc struct {
	Pos     lexer.Position
	Name    string      `@Ident`
	Args    []*ExprSrc  `"(" ( @@ ( "," @@ )* )? ")"`
	Pragmas *PragmasSrc `@@?`
	End     lexer.Position
}

// RuleSrc is "[name @] head ["\" del-head] arrow [guard "|"] body."
type RuleSrc struct {
	Pos       lexer.Position
	Name      string     `( @Ident "@" )?`
	Head      []*AtomSrc `@@ ( "," @@ )*`
	DelHead   []*AtomSrc `( "\\" @@ ( "," @@ )* )?`
	Arrow     string     `@Arrow`
	Guard     *ExprSrc   `( @@ "|" )?`
	Body      *BodySrc   `@@`
	End       lexer.Position `"."`
}

// BodySrc is a ";"-separated list of ","-separated statement sequences.
type BodySrc struct {
	Pos   lexer.Position
	Or    []*BodySeqSrc `@@ ( ";" @@ )*`
}

// BodySeqSrc is one ","-joined sequence of statements.
type BodySeqSrc struct {
	Pos   lexer.Position
	Stmts []*StmtSrc `@@ ( "," @@ )*`
}

// StmtSrc is a single body statement.
type StmtSrc struct {
	Pos    lexer.Position
	Unify  *UnifySrc  `  @@`
	Call   *AtomSrc   `| @@`
	Expr   *ExprSrc   `| @@`
}

// UnifySrc is "$Var %= expr".
type UnifySrc struct {
	Pos   lexer.Position
	Var   string   `@LogicalVar`
	Value *ExprSrc `"%=" @@`
}
