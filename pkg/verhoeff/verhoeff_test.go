package verhoeff_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendora/screening-service/pkg/verhoeff"
)

func TestValidate_KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "classic reference vector 2363", input: "2363", want: true},
		{name: "reference vector with wrong check digit", input: "2364", want: false},
		{name: "single zero", input: "0", want: true},
		{name: "empty string", input: "", want: false},
		{name: "non-digit character", input: "12345678901a", want: false},
		{name: "embedded space", input: "1234 5678", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, verhoeff.Validate(tt.input))
		})
	}
}

func TestCheckDigit_RoundTrip(t *testing.T) {
	payloads := []string{
		"236",
		"12345678901",
		"99999999999",
		"00000000000",
		"31415926535",
		"10000000004",
	}

	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			digit, ok := verhoeff.CheckDigit(payload)
			require.True(t, ok)
			require.GreaterOrEqual(t, digit, 0)
			require.LessOrEqual(t, digit, 9)

			full := fmt.Sprintf("%s%d", payload, digit)
			assert.True(t, verhoeff.Validate(full), "generated number %s must validate", full)
		})
	}
}

func TestCheckDigit_ReferenceVector(t *testing.T) {
	// The worked example from the original algorithm description: the check
	// digit for 236 is 3.
	digit, ok := verhoeff.CheckDigit("236")
	require.True(t, ok)
	assert.Equal(t, 3, digit)
}

func TestValidate_DetectsSingleDigitErrors(t *testing.T) {
	payload := "12345678901"
	digit, ok := verhoeff.CheckDigit(payload)
	require.True(t, ok)
	valid := fmt.Sprintf("%s%d", payload, digit)
	require.True(t, verhoeff.Validate(valid))

	// Mutating any single position must break validation.
	for pos := 0; pos < len(valid); pos++ {
		for r := byte('0'); r <= '9'; r++ {
			if r == valid[pos] {
				continue
			}
			mutated := valid[:pos] + string(r) + valid[pos+1:]
			assert.False(t, verhoeff.Validate(mutated),
				"mutation at position %d (%s) must not validate", pos, mutated)
		}
	}
}

func TestCheckDigit_RejectsNonDigits(t *testing.T) {
	_, ok := verhoeff.CheckDigit("12a45")
	assert.False(t, ok)
}

func TestValidate_Deterministic(t *testing.T) {
	input := "123456789012"
	first := verhoeff.Validate(input)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, verhoeff.Validate(input))
	}
}
