// Package grammar parses chr_program blocks using a participle
// struct-tag grammar, modeled on the teacher's grammar/lexer.go and
// grammar/grammar.go, then lowers the parsed tree into internal/ast.
package grammar

import "github.com/alecthomas/participle/v2/lexer"

// ChrLexer tokenizes one chr_program block's text.
var ChrLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"DocComment", `///[^\n]*`, nil},
		{"Comment", `//[^\n]*`, nil},
		{"Arrow", `==>|<=>|=>>`, nil},
		{"LogicalVar", `\$[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},
		{"Operator", `\|\||&&|==|!=|<=|>=|\+=|-=|\*=|/=|%=|[-+*/%=<>!?]`, nil},
		{"Punctuation", `[{}\[\]#.,;()\\|:@]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
