package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ilgpu-go/lattice"
)

func minMerge(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func TestJoinScalar(t *testing.T) {
	a := lattice.NewScalar(4)
	b := lattice.NewScalar(16)
	got := lattice.Join(minMerge, a, b)
	require.Equal(t, 4, got.Data)
	require.Empty(t, got.Children)
}

func TestJoinStructuredFieldwise(t *testing.T) {
	a := lattice.NewStructured(8, []int{4, 64})
	b := lattice.NewStructured(16, []int{16, 2})
	got := lattice.Join(minMerge, a, b)
	require.Equal(t, 8, got.Data)
	require.Equal(t, []int{4, 2}, got.Children)
}

func TestJoinScalarWithStructuredKeepsChildren(t *testing.T) {
	scalar := lattice.NewScalar(10)
	structured := lattice.NewStructured(5, []int{1, 2, 3})
	got := lattice.Join(minMerge, scalar, structured)
	require.Equal(t, 5, got.Data)
	require.Equal(t, []int{1, 2, 3}, got.Children)
}
