package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"-x^2", "-(x^2)"},
		{"2^3^2", "2^9"},
		{"2**3", "8"},
		{"a - b - c", "a + (-b) + (-c)"},
		{"a/b/c", "a*b^(-1)*c^(-1)"},
		{"x^-1", "1/x"},
		{"+x", "x"},
		{"1.5e1", "15"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Parse(tt.src)
			require.NoError(t, err)
			assert.True(t, Equal(got, MustParse(tt.want)), "%s parsed as %s", tt.src, got)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, src := range []string{
		"1/2*p0^2 + 1/2*p1^2 + 1/2*(q0 - q1)^2",
		"-(q0^2 + q1^2)^(-1/2)",
		"x^y*log(x) - 3/7*cos(2*x)",
		"(1/2)^x + (-2)^x",
		"(x^y)^2",
	} {
		e := MustParse(src)
		again, err := Parse(e.String())
		require.NoError(t, err, e.String())
		assert.Equal(t, e.String(), again.String())
	}
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{
		"",
		"x +",
		"(x",
		"x)",
		"foo(x)",
		"x $ y",
		"2 3",
		"sin()",
		"*x",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("(") })
}
