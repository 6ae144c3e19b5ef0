package grammar

import "github.com/alecthomas/participle/v2/lexer"

// ExprSrc is the top of the expression precedence ladder: ternary,
// falling through to OrExprSrc when there is no "?".
type ExprSrc struct {
	Pos  lexer.Position
	Cond *OrExprSrc `@@`
	Then *OrExprSrc `( "?" @@`
	Else *OrExprSrc `  ":" @@ )?`
}

type OrExprSrc struct {
	Pos   lexer.Position
	Left  *AndExprSrc   `@@`
	Rest  []*OrRestSrc  `@@*`
}
type OrRestSrc struct {
	Op    string      `@"||"`
	Right *AndExprSrc `@@`
}

type AndExprSrc struct {
	Pos  lexer.Position
	Left *CmpExprSrc  `@@`
	Rest []*AndRestSrc `@@*`
}
type AndRestSrc struct {
	Op    string      `@"&&"`
	Right *CmpExprSrc `@@`
}

type CmpExprSrc struct {
	Pos  lexer.Position
	Left *AddExprSrc  `@@`
	Rest []*CmpRestSrc `@@*`
}
type CmpRestSrc struct {
	Op    string      `@( "==" | "!=" | "<=" | ">=" | "<" | ">" | "=" )`
	Right *AddExprSrc `@@`
}

type AddExprSrc struct {
	Pos  lexer.Position
	Left *MulExprSrc  `@@`
	Rest []*AddRestSrc `@@*`
}
type AddRestSrc struct {
	Op    string      `@( "+" | "-" )`
	Right *MulExprSrc `@@`
}

type MulExprSrc struct {
	Pos  lexer.Position
	Left *UnaryExprSrc  `@@`
	Rest []*MulRestSrc  `@@*`
}
type MulRestSrc struct {
	Op    string        `@( "*" | "/" | "%" )`
	Right *UnaryExprSrc `@@`
}

// UnaryExprSrc is an optional prefix operator (including the binding-mode
// markers "+"/"-"/"?") applied to a postfix expression.
type UnaryExprSrc struct {
	Pos     lexer.Position
	Op      string          `( @( "+" | "-" | "!" | "?" )`
	Operand *UnaryExprSrc   `  @@ )`
	Primary *PostfixExprSrc `| @@`
}

// PostfixExprSrc is a primary expression followed by any number of
// field accesses, index expressions, or call argument lists.
type PostfixExprSrc struct {
	Pos     lexer.Position
	Primary *PrimaryExprSrc `@@`
	Ops     []*PostfixOpSrc `@@*`
}

type PostfixOpSrc struct {
	Field string     `  "." @Ident`
	Index *ExprSrc   `| "[" @@ "]"`
	Call  []*ExprSrc `| "(" ( @@ ( "," @@ )* )? ")"`
}

// PrimaryExprSrc is a leaf: a CHR count, a logical variable, a literal,
// an identifier (bare or a call), or a parenthesized sub-expression.
type PrimaryExprSrc struct {
	Pos        lexer.Position
	Count      *CountSrc  `  @@`
	LogicalVar string     `| @LogicalVar`
	Integer    string     `| @Integer`
	Str        string     `| @String`
	Ident      string     `| @Ident`
	Paren      *ExprSrc   `| "(" @@ ")"`
}

// CountSrc is "#name(args)", the occurrence-counting operator.
type CountSrc struct {
	Pos  lexer.Position
	Name string     `"#" @Ident`
	Args []*ExprSrc `"(" ( @@ ( "," @@ )* )? ")"`
}
