package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolAllocateDenseIndices(t *testing.T) {
	p := New[int]()
	for want := 0; want < pageSize*3+5; want++ {
		ptr, idx := p.Allocate()
		require.Equal(t, want, idx)
		*ptr = want
	}
	require.Equal(t, pageSize*3+5, p.Allocated())
	for i := 0; i < pageSize*3+5; i++ {
		require.Equal(t, i, *p.View(i))
	}
}

func TestPoolResetZeroesAndReusesPages(t *testing.T) {
	p := New[int]()
	ptr, _ := p.Allocate()
	*ptr = 42
	p.Reset()
	require.Equal(t, 0, p.Allocated())
	ptr2, idx := p.Allocate()
	require.Equal(t, 0, idx)
	require.Equal(t, 0, *ptr2)
}
