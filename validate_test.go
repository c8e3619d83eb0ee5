package sconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBool(t *testing.T) {
	tests := []struct {
		name        string
		raw         any
		expected    any
		expectError bool
	}{
		{"TrueValue", true, true, false},
		{"FalseValue", false, false, false},
		{"UppercaseString", "TRUE", true, false},
		{"PaddedString", " false ", false, false},
		{"MixedCase", "True", true, false},
		{"YesRejected", "yes", nil, true},
		{"EmptyString", "", nil, true},
		{"IntRejected", 1, nil, true},
		{"NilRejected", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateBool(tt.raw)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidatePosInt(t *testing.T) {
	tests := []struct {
		name        string
		raw         any
		expected    int
		expectError bool
	}{
		{"PlainInt", 4, 4, false},
		{"Zero", 0, 0, false},
		{"Int64", int64(7), 7, false},
		{"Uint", uint(9), 9, false},
		{"BoolAsOne", true, 1, false},
		{"BoolAsZero", false, 0, false},
		{"DecimalString", "42", 42, false},
		{"HexString", "0x10", 16, false},
		{"OctalString", "0o22", 18, false},
		{"PaddedString", " 3 ", 3, false},
		{"NegativeInt", -1, 0, true},
		{"NegativeString", "-1", 0, true},
		{"Garbage", "four", 0, true},
		{"Float", 1.5, 0, true},
		{"Nil", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePosInt(tt.raw)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateString(t *testing.T) {
	t.Run("NilPassesThrough", func(t *testing.T) {
		got, err := ValidateString(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Trimmed", func(t *testing.T) {
		got, err := ValidateString("  hello  ")
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	})

	t.Run("ByteSlice", func(t *testing.T) {
		got, err := ValidateString([]byte(" raw "))
		require.NoError(t, err)
		assert.Equal(t, "raw", got)
	})

	t.Run("IntRejected", func(t *testing.T) {
		_, err := ValidateString(5)
		assert.Error(t, err)
	})
}

func TestValidateList(t *testing.T) {
	t.Run("NilPassesThrough", func(t *testing.T) {
		got, err := ValidateList(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SliceUnchanged", func(t *testing.T) {
		in := []string{"a", "b"}
		got, err := ValidateList(in)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})

	t.Run("AnySlice", func(t *testing.T) {
		in := []any{"a", 1}
		got, err := ValidateList(in)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})

	t.Run("StringRejected", func(t *testing.T) {
		_, err := ValidateList("a,b")
		assert.Error(t, err)
	})
}

func TestValidateHooks(t *testing.T) {
	t.Run("ProcessHookNamed", func(t *testing.T) {
		h := ProcessHook(func(Process) {})
		got, err := ValidateProcessHook(h)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("ProcessHookBareFunc", func(t *testing.T) {
		got, err := ValidateProcessHook(func(Process) {})
		require.NoError(t, err)
		_, ok := got.(ProcessHook)
		assert.True(t, ok)
	})

	t.Run("ProcessHookWrongSignature", func(t *testing.T) {
		_, err := ValidateProcessHook(func(Process, Request) {})
		assert.Error(t, err)
	})

	t.Run("RequestHookBareFunc", func(t *testing.T) {
		got, err := ValidateRequestHook(func(Process, Request) {})
		require.NoError(t, err)
		_, ok := got.(RequestHook)
		assert.True(t, ok)
	})

	t.Run("RequestHookNotCallable", func(t *testing.T) {
		_, err := ValidateRequestHook("not a function")
		assert.Error(t, err)
	})
}
