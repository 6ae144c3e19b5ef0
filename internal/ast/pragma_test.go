package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chrc/internal/ast"
)

func TestPragmaSetStringRendering(t *testing.T) {
	assert.Equal(t, "", ast.PragmaSet(nil).String())
	assert.Equal(t, "# passive", ast.PragmaSet{ast.PragmaPassive}.String())
	assert.Equal(t, "# { passive, bang }", ast.PragmaSet{ast.PragmaPassive, ast.PragmaBang}.String())
}

func TestPragmaSetHas(t *testing.T) {
	set := ast.PragmaSet{ast.PragmaNoHistory}
	assert.True(t, set.Has(ast.PragmaNoHistory))
	assert.False(t, set.Has(ast.PragmaBang))
}
