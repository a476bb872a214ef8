package diagnostics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/checker"
	"github.com/cool-lang/coolc/internal/config"
)

func TestFormatAddsCaretUnderSpan(t *testing.T) {
	source := &ast.Source{Path: "test.cl", Contents: "class Main {\n  x : NoSuchType;\n};\n", ID: 0}
	span := ast.NewSpan(ast.Location{Line: 2, Column: 7}, ast.Location{Line: 2, Column: 17}, 0)
	err := checker.NewUnknownTypeError("NoSuchType", span)

	f := NewFormatter(config.ColorNever, &bytes.Buffer{})
	out := f.Format(err, source)

	assert.Contains(t, out, "test.cl:2:7")
	assert.Contains(t, out, "x : NoSuchType;")
	assert.Contains(t, out, "^")
}

func TestFormatAllFallsBackWhenSourceMissing(t *testing.T) {
	err := checker.NewUnknownTypeError("X", ast.Span{})
	f := NewFormatter(config.ColorNever, &bytes.Buffer{})
	out := f.FormatAll([]checker.Error{err}, map[int]*ast.Source{})
	assert.Contains(t, out, err.Message())
}

func TestColorNeverDisablesColorize(t *testing.T) {
	f := NewFormatter(config.ColorNever, &bytes.Buffer{})
	assert.False(t, f.Colorize)
}

func TestColorAlwaysEnablesColorize(t *testing.T) {
	f := NewFormatter(config.ColorAlways, &bytes.Buffer{})
	assert.True(t, f.Colorize)
}
