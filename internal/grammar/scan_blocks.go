package grammar

import "strings"

// Block is the raw source text of one "chr_program NAME { ... }" block,
// along with its offset in the original file (for diagnostics).
type Block struct {
	Name   string
	Text   string
	Offset int
	Line   int
}

// FindBlocks scans source for "chr_program" blocks using brace matching
// and returns each one's exact text; everything else in source (the
// opaque host text the spec requires be passed through verbatim) is
// simply not returned and never parsed.
func FindBlocks(source string) []Block {
	const kw = "chr_program"
	var blocks []Block

	i := 0
	for {
		idx := strings.Index(source[i:], kw)
		if idx < 0 {
			break
		}
		start := i + idx
		brace := strings.IndexByte(source[start:], '{')
		if brace < 0 {
			break
		}
		braceAbs := start + brace

		depth := 0
		end := -1
		for p := braceAbs; p < len(source); p++ {
			switch source[p] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = p + 1
				}
			}
			if end != -1 {
				break
			}
		}
		if end == -1 {
			break
		}

		header := strings.TrimSpace(source[start+len(kw) : braceAbs])
		blocks = append(blocks, Block{
			Name:   header,
			Text:   source[start:end],
			Offset: start,
			Line:   1 + strings.Count(source[:start], "\n"),
		})
		i = end
	}
	return blocks
}
