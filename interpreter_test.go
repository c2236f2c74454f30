package minipar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSrc parses and runs src against a fresh interpreter, returning the
// root environment for assertions on final variable state.
func runSrc(t *testing.T, src string) (*Env, error) {
	t.Helper()
	toks, err := NewLexer(src).Tokenize()
	require.NoError(t, err)
	mod, err := Parse(toks)
	require.NoError(t, err)
	in := NewInterp()
	return in.root, in.Run(mod)
}

func TestInterpArithmeticAndAssignment(t *testing.T) {
	env, err := runSrc(t, `x: number = 1; x = x + 41`)
	require.NoError(t, err)
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, 42.0, v.Number())
}

func TestInterpIfElse(t *testing.T) {
	env, err := runSrc(t, `
x: number = 0
if (1 < 2) {
	x = 10
} else {
	x = 20
}
`)
	require.NoError(t, err)
	v, _ := env.Get("x")
	assert.Equal(t, 10.0, v.Number())
}

func TestInterpWhileBreakContinue(t *testing.T) {
	env, err := runSrc(t, `
total: number = 0
i: number = 0
while (i < 10) {
	i = i + 1
	if (i == 5) {
		break
	}
	if (i % 2 == 0) {
		continue
	}
	total = total + i
}
`)
	require.NoError(t, err)
	v, _ := env.Get("total")
	// i=1 (odd,+1=1) i=2(even,skip) i=3(+3=4) i=4(even,skip) i=5 -> break
	assert.Equal(t, 4.0, v.Number())
}

func TestInterpFunctionCallAndReturn(t *testing.T) {
	env, err := runSrc(t, `
func add(a: number, b: number) -> number {
	return a + b
}
result: number = add(3, 4)
`)
	require.NoError(t, err)
	v, _ := env.Get("result")
	assert.Equal(t, 7.0, v.Number())
}

func TestInterpRecursiveFunction(t *testing.T) {
	env, err := runSrc(t, `
func fact(n: number) -> number {
	if (n <= 1) {
		return 1
	}
	return n * fact(n - 1)
}
result: number = fact(5)
`)
	require.NoError(t, err)
	v, _ := env.Get("result")
	assert.Equal(t, 120.0, v.Number())
}

func TestInterpDefaultParameter(t *testing.T) {
	env, err := runSrc(t, `
func greet(loud: bool = false) -> number {
	if (loud) {
		return 1
	}
	return 0
}
a: number = greet()
b: number = greet(true)
`)
	require.NoError(t, err)
	a, _ := env.Get("a")
	b, _ := env.Get("b")
	assert.Equal(t, 0.0, a.Number())
	assert.Equal(t, 1.0, b.Number())
}

func TestInterpDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := runSrc(t, `x: number = 1 / 0`)
	require.Error(t, err)
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
}

func TestInterpModuloByZeroIsRuntimeError(t *testing.T) {
	_, err := runSrc(t, `x: number = 1 % 0`)
	require.Error(t, err)
}

func TestInterpClosureCapturesDefiningEnv(t *testing.T) {
	env, err := runSrc(t, `
base: number = 100
func addBase(n: number) -> number {
	return n + base
}
result: number = addBase(1)
`)
	require.NoError(t, err)
	v, _ := env.Get("result")
	assert.Equal(t, 101.0, v.Number())
}
