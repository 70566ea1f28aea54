// Package pool implements a paged arena allocator for analysis scratch
// objects whose lifetime is tied to a single method's analysis.
package pool

const pageSize = 128

// Pool is a pool of T that can be allocated densely and reset in bulk.
// Indices returned by Allocate are stable for the pool's lifetime, which
// lets callers address pool entries with a plain int instead of a pointer.
type Pool[T any] struct {
	pages            []*[pageSize]T
	allocated, index int
}

// New returns a ready-to-use Pool.
func New[T any]() Pool[T] {
	var p Pool[T]
	p.Reset()
	return p
}

// Allocated returns the number of items allocated from the pool so far.
func (p *Pool[T]) Allocated() int {
	return p.allocated
}

// Allocate returns a pointer to a fresh, zero-valued T and the dense index
// it was allocated at.
func (p *Pool[T]) Allocate() (*T, int) {
	if p.index == pageSize {
		if len(p.pages) == cap(p.pages) {
			p.pages = append(p.pages, new([pageSize]T))
		} else {
			i := len(p.pages)
			p.pages = p.pages[:i+1]
			if p.pages[i] == nil {
				p.pages[i] = new([pageSize]T)
			}
		}
		p.index = 0
	}
	idx := (len(p.pages)-1)*pageSize + p.index
	ret := &p.pages[len(p.pages)-1][p.index]
	p.index++
	p.allocated++
	return ret, idx
}

// View returns the pointer to the i-th item allocated from the pool.
func (p *Pool[T]) View(i int) *T {
	page, index := i/pageSize, i%pageSize
	return &p.pages[page][index]
}

// Reset clears the pool so it can be reused for the next method's analysis.
func (p *Pool[T]) Reset() {
	for _, page := range p.pages {
		var zero T
		for i := range page {
			page[i] = zero
		}
	}
	p.pages = p.pages[:0]
	p.index = pageSize
	p.allocated = 0
}
