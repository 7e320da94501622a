package spectral

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// Forward computes the forward-normalized discrete transform of g. Real
// samples take the half-spectrum path; complex samples the full transform.
// Forward normalization (dividing by the total sample count) makes each
// coefficient the average contribution of its mode, which the orthonormal
// basis construction and the unscaled inverse both rely on.
func Forward(g *Grid) Representation {
	if g.IsReal() {
		return forwardReal(g)
	}
	return forwardComplex(g)
}

func forwardReal(g *Grid) (s *HalfSpectrum) {
	var (
		n    = g.N
		fftR = fourier.NewFFT(n)
	)
	s = NewHalfSpectrum(n, g.Rank)
	var (
		half = s.half
		row  = make([]float64, n)
		dst  = make([]complex128, half)
	)
	// Real transform along the last axis.
	rows := n
	if g.Rank == 3 {
		rows = n * n
	}
	for r := 0; r < rows; r++ {
		for k := 0; k < n; k++ {
			row[k] = real(g.Values[r*n+k])
		}
		fftR.Coefficients(dst, row)
		copy(s.coef[r*half:(r+1)*half], dst)
	}
	// Complex transforms along the leading axes.
	if g.Rank == 3 {
		applyCmplxAxis(s.coef, []int{n, n, half}, 1, false)
		applyCmplxAxis(s.coef, []int{n, n, half}, 0, false)
	} else {
		applyCmplxAxis(s.coef, []int{n, half}, 0, false)
	}
	scale(s.coef, 1/float64(g.Size()))
	return
}

func forwardComplex(g *Grid) (s *FullSpectrum) {
	var (
		n     = g.N
		shape = []int{n, n}
	)
	if g.Rank == 3 {
		shape = []int{n, n, n}
	}
	s = NewFullSpectrum(n, g.Rank)
	copy(s.coef, g.Values)
	for axis := len(shape) - 1; axis >= 0; axis-- {
		applyCmplxAxis(s.coef, shape, axis, false)
	}
	scale(s.coef, 1/float64(g.Size()))
	return
}

func (s *HalfSpectrum) InverseGrid() (vals []complex128) {
	var (
		m    = s.res
		half = s.half
		work = make([]complex128, len(s.coef))
	)
	copy(work, s.coef)
	if s.rank == 3 {
		applyCmplxAxis(work, []int{m, m, half}, 0, true)
		applyCmplxAxis(work, []int{m, m, half}, 1, true)
	} else {
		applyCmplxAxis(work, []int{m, half}, 0, true)
	}
	// Real inverse along the last axis.
	var (
		fftR = fourier.NewFFT(m)
		rrow = make([]float64, m)
		crow = make([]complex128, half)
	)
	rows := m
	if s.rank == 3 {
		rows = m * m
	}
	vals = make([]complex128, rows*m)
	for r := 0; r < rows; r++ {
		copy(crow, work[r*half:(r+1)*half])
		fftR.Sequence(rrow, crow)
		for k := 0; k < m; k++ {
			vals[r*m+k] = complex(rrow[k], 0)
		}
	}
	return
}

func (s *FullSpectrum) InverseGrid() (vals []complex128) {
	var (
		m     = s.res
		shape = []int{m, m}
	)
	if s.rank == 3 {
		shape = []int{m, m, m}
	}
	vals = make([]complex128, len(s.coef))
	copy(vals, s.coef)
	for axis := 0; axis < len(shape); axis++ {
		applyCmplxAxis(vals, shape, axis, true)
	}
	return
}

// applyCmplxAxis runs the length shape[axis] complex transform along one
// axis of a flat row-major array, in place.
func applyCmplxAxis(data []complex128, shape []int, axis int, inverse bool) {
	var (
		n      = shape[axis]
		cfft   = fourier.NewCmplxFFT(n)
		stride = 1
		outer  = 1
	)
	for i := axis + 1; i < len(shape); i++ {
		stride *= shape[i]
	}
	for i := 0; i < axis; i++ {
		outer *= shape[i]
	}
	var (
		block = stride * n
		buf   = make([]complex128, n)
	)
	for o := 0; o < outer; o++ {
		base := o * block
		for in := 0; in < stride; in++ {
			for k := 0; k < n; k++ {
				buf[k] = data[base+in+k*stride]
			}
			if inverse {
				cfft.Sequence(buf, buf)
			} else {
				cfft.Coefficients(buf, buf)
			}
			for k := 0; k < n; k++ {
				data[base+in+k*stride] = buf[k]
			}
		}
	}
}

func scale(data []complex128, f float64) {
	cf := complex(f, 0)
	for i := range data {
		data[i] *= cf
	}
}
