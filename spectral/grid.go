package spectral

import "fmt"

// Grid holds one period of a sampled field on a uniform square (rank 2) or
// cubic (rank 3) grid, stored row-major. Samples may be real or complex;
// strictly real samples select the half-spectrum transform path.
type Grid struct {
	N      int
	Rank   int
	Values []complex128
	isReal bool
}

// NewGrid validates and wraps a sample array. When copyData is false the
// caller must not mutate values for the lifetime of the grid.
func NewGrid(values []complex128, n, rank int, copyData bool) (g *Grid, err error) {
	if rank != 2 && rank != 3 {
		return nil, fmt.Errorf("grid rank must be 2 or 3, got %d", rank)
	}
	if n <= 2 {
		return nil, fmt.Errorf("cannot construct approximation with N=%d", n)
	}
	size := n * n
	if rank == 3 {
		size *= n
	}
	if len(values) != size {
		return nil, fmt.Errorf("grid must be %d^%d values, got %d", n, rank, len(values))
	}
	if copyData {
		cp := make([]complex128, len(values))
		copy(cp, values)
		values = cp
	}
	g = &Grid{
		N:      n,
		Rank:   rank,
		Values: values,
	}
	g.isReal = true
	for _, v := range values {
		if imag(v) != 0 {
			g.isReal = false
			break
		}
	}
	return
}

// NewGridReal wraps a real sample array, widening to complex storage.
func NewGridReal(values []float64, n, rank int) (g *Grid, err error) {
	cv := make([]complex128, len(values))
	for i, v := range values {
		cv[i] = complex(v, 0)
	}
	return NewGrid(cv, n, rank, false)
}

func (g *Grid) IsReal() bool { return g.isReal }

// Size returns the total sample count N^Rank.
func (g *Grid) Size() (size int) {
	size = g.N * g.N
	if g.Rank == 3 {
		size *= g.N
	}
	return
}

// MaxFreq is the largest frequency index the sampling supports: N/2 for
// odd N, one less than N/2 for even N to respect Nyquist symmetry.
func (g *Grid) MaxFreq() int {
	if g.N%2 == 0 {
		return g.N/2 - 1
	}
	return g.N / 2
}
