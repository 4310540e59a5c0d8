package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnum string

const (
	testAlpha testEnum = "alpha"
	testBeta  testEnum = "beta"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(map[string]testEnum{"alpha": testAlpha, "Beta": testBeta}, testAlpha)

	tests := []struct {
		name  string
		input string
		want  testEnum
	}{
		{"exact match", "alpha", testAlpha},
		{"case insensitive", "BETA", testBeta},
		{"with spaces", "  beta  ", testBeta},
		{"unknown falls back", "gamma", testAlpha},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := NewNormalizer(map[string]testEnum{"alpha": testAlpha, "beta": testBeta}, testAlpha)

	v, err := n.NormalizeWithError(" Beta ")
	require.NoError(t, err)
	assert.Equal(t, testBeta, v)

	v, err = n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, testAlpha, v)

	_, err = n.NormalizeWithError("gamma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[alpha beta]")
	assert.Equal(t, []string{"alpha", "beta"}, n.ValidKeys())
}
