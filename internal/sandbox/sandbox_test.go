package sandbox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/frame"
)

func sampleFrame() *frame.DataFrame {
	return &frame.DataFrame{
		Columns: []frame.Column{
			{Name: "country", Type: frame.TypeString},
			{Name: "pop", Type: frame.TypeNumber},
		},
		Rows: []frame.Row{
			{"country": "ar", "pop": float64(10)},
			{"country": "br", "pop": float64(20)},
		},
	}
}

func sandboxErr(t *testing.T, err error) *Error {
	t.Helper()
	var serr *Error
	require.True(t, errors.As(err, &serr), "expected *sandbox.Error, got %v", err)
	return serr
}

func TestValidate(t *testing.T) {
	t.Run("empty code is always valid", func(t *testing.T) {
		assert.True(t, Validate("").Valid)
		assert.True(t, Validate("   \n ").Valid)
	})

	t.Run("well-formed expression", func(t *testing.T) {
		v := Validate(`{ columns = columns, rows = rows }`)
		assert.True(t, v.Valid)
		assert.Empty(t, v.Error)
	})

	t.Run("parse failure reports position", func(t *testing.T) {
		v := Validate("{ rows = [1, }")
		require.False(t, v.Valid)
		assert.NotEmpty(t, v.Error)
		assert.Equal(t, 1, v.Line)
		assert.Greater(t, v.Column, 1)
	})
}

func TestExecuteIdentityDefault(t *testing.T) {
	sb := New()
	in := sampleFrame()

	out, err := sb.Execute(context.Background(), "", in)
	require.NoError(t, err)
	assert.Equal(t, in.Columns, out.Columns)
	assert.Equal(t, in.Rows, out.Rows)
}

func TestExecuteTransformsFrame(t *testing.T) {
	sb := New()
	code := `{
		columns = [{ name = "pop2", type = "number" }],
		rows    = [for r in rows : { pop2 = r.pop * 2 }]
	}`

	out, err := sb.Execute(context.Background(), code, sampleFrame())
	require.NoError(t, err)
	require.Len(t, out.Columns, 1)
	assert.Equal(t, "pop2", out.Columns[0].Name)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, float64(20), out.Rows[0]["pop2"])
	assert.Equal(t, float64(40), out.Rows[1]["pop2"])
}

func TestExecuteInputAliasAndFunctions(t *testing.T) {
	sb := New()
	code := `{
		columns = input.columns,
		rows    = [for r in input.rows : { country = upper(r.country), pop = r.pop }]
	}`

	out, err := sb.Execute(context.Background(), code, sampleFrame())
	require.NoError(t, err)
	assert.Equal(t, "AR", out.Rows[0]["country"])
	assert.Equal(t, "BR", out.Rows[1]["country"])
}

func TestExecuteMutationIsolation(t *testing.T) {
	sb := New()
	in := sampleFrame()

	// Code producing a completely different frame must not disturb the
	// upstream frame handed to sibling consumers.
	code := `{ columns = [{ name = "x", type = "string" }], rows = [] }`
	_, err := sb.Execute(context.Background(), code, in)
	require.NoError(t, err)

	assert.Equal(t, sampleFrame(), in)
}

func TestExecuteSyntaxError(t *testing.T) {
	sb := New()
	_, err := sb.Execute(context.Background(), "{ rows = [,] }", sampleFrame())
	serr := sandboxErr(t, err)
	assert.Equal(t, KindSyntax, serr.Kind)
	assert.Equal(t, 1, serr.Line)
}

func TestExecuteRuntimeError(t *testing.T) {
	sb := New()
	code := `{ columns = columns, rows = [rows[99]] }`
	_, err := sb.Execute(context.Background(), code, sampleFrame())
	serr := sandboxErr(t, err)
	assert.Equal(t, KindRuntime, serr.Kind)
	assert.NotEmpty(t, serr.Message)
}

func TestExecuteShapeErrors(t *testing.T) {
	sb := New()
	cases := []struct {
		name string
		code string
	}{
		{"not an object", `"just a string"`},
		{"rows not an array", `{ rows = "not an array", columns = [] }`},
		{"columns missing", `{ rows = [] }`},
		{"column entry missing type", `{ rows = [], columns = [{ name = "a" }] }`},
		{"column entry not an object", `{ rows = [], columns = ["a"] }`},
		{"row entry not an object", `{ rows = [1, 2], columns = [] }`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sb.Execute(context.Background(), tc.code, sampleFrame())
			serr := sandboxErr(t, err)
			assert.Equal(t, KindShape, serr.Kind)
		})
	}
}

func TestRowExpr(t *testing.T) {
	sb := New()

	t.Run("arithmetic over row cells", func(t *testing.T) {
		re, err := sb.CompileRow("row.pop * 2 + 1")
		require.NoError(t, err)
		v, err := re.Eval(frame.Row{"pop": float64(10)})
		require.NoError(t, err)
		assert.Equal(t, float64(21), v)
	})

	t.Run("string functions", func(t *testing.T) {
		re, err := sb.CompileRow(`upper(row.country)`)
		require.NoError(t, err)
		v, err := re.Eval(frame.Row{"country": "ar"})
		require.NoError(t, err)
		assert.Equal(t, "AR", v)
	})

	t.Run("conditional", func(t *testing.T) {
		re, err := sb.CompileRow(`row.pop > 15 ? "big" : "small"`)
		require.NoError(t, err)
		v, err := re.Eval(frame.Row{"pop": float64(20)})
		require.NoError(t, err)
		assert.Equal(t, "big", v)
	})

	t.Run("per-row failure is isolated", func(t *testing.T) {
		re, err := sb.CompileRow("row.missing * 2")
		require.NoError(t, err)
		_, err = re.Eval(frame.Row{"pop": float64(10)})
		serr := sandboxErr(t, err)
		assert.Equal(t, KindRuntime, serr.Kind)
	})

	t.Run("compile rejects bad syntax", func(t *testing.T) {
		_, err := sb.CompileRow("row.pop +")
		serr := sandboxErr(t, err)
		assert.Equal(t, KindSyntax, serr.Kind)
	})
}
