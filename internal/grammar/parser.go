package grammar

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var chrParser = participle.MustBuild[ProgramSrc](
	participle.Lexer(ChrLexer),
	participle.Elide("Whitespace", "Comment", "DocComment"),
	participle.UseLookahead(4),
)

// ParseBlock parses the text of a single "chr_program ... { ... }"
// block (including its header and closing brace) into a raw ProgramSrc
// tree.
func ParseBlock(filename, source string) (*ProgramSrc, error) {
	prog, err := chrParser.ParseString(filename, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return prog, nil
}
