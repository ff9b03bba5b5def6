package known

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(ttt *testing.T) {
	tests := []struct {
		name        string
		raw         string
		replacement string
		byValueSafe bool
		known       bool
	}{
		{name: "std_string", raw: "std_string", replacement: "CxxString", byValueSafe: false, known: true},
		{name: "std_unique_ptr", raw: "std_unique_ptr", replacement: "UniquePtr", byValueSafe: true, known: true},
		{name: "std_vector", raw: "std_vector", replacement: "CxxVector", byValueSafe: false, known: true},
		{name: "unlisted type", raw: "std_map", known: false},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, ok := Lookup(tt.raw)
			require.Equal(t, tt.known, ok)
			if !tt.known {
				return
			}
			require.Equal(t, tt.replacement, d.Replacement)
			require.Equal(t, tt.byValueSafe, d.ByValueSafe)

			repl, ok := Replacement(tt.raw)
			require.True(t, ok)
			require.Equal(t, tt.replacement, repl)
		})
	}
}

func TestBothSidesAnswer(t *testing.T) {
	// Raw name and replacement must agree, so callers can ask about a type
	// before or after substitution.
	require.True(t, IsKnown("std_unique_ptr"))
	require.True(t, IsKnown("UniquePtr"))
	require.True(t, ByValueSafe("std_unique_ptr"))
	require.True(t, ByValueSafe("UniquePtr"))

	require.True(t, IsKnown("CxxString"))
	require.False(t, ByValueSafe("CxxString"))
	require.False(t, ByValueSafe("std_string"))

	require.False(t, IsKnown("Widget"))
	require.False(t, ByValueSafe("Widget"))
}

func TestIsPrimitive(t *testing.T) {
	for _, p := range []string{"bool", "char", "i8", "i16", "i32", "i64", "isize", "u8", "u16", "u32", "u64", "usize", "f32", "f64"} {
		require.True(t, IsPrimitive(p), p)
	}
	require.False(t, IsPrimitive("Widget"))
	require.False(t, IsPrimitive("std_string"))
	require.False(t, IsPrimitive("CxxString"))
}
