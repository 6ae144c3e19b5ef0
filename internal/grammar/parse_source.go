package grammar

import "chrc/internal/ast"

// ParseSource finds every chr_program block in source and parses each
// one independently, matching the driver behavior of discarding just
// the failing block and continuing with the rest of the file. It
// returns every program that parsed successfully plus one error per
// block that did not.
func ParseSource(filename, source string) ([]*ast.ChrProgram, []error) {
	var programs []*ast.ChrProgram
	var errs []error

	for _, block := range FindBlocks(source) {
		raw, err := ParseBlock(filename, block.Text)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		prog, err := Build(filename, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		programs = append(programs, prog)
	}
	return programs, errs
}
