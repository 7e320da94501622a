package spectral

import (
	"fmt"
	"math/cmplx"

	"github.com/gridsym/trisym/symmetry"
	"github.com/gridsym/trisym/utils"
)

// Representation is the tagged spectral variant shared by the fitter and
// the grid evaluator. A HalfSpectrum exploits conjugate symmetry for real
// fields; a FullSpectrum stores every mode of a complex field. Both index
// frequencies with modulo wraparound so negative and aliased components
// resolve to their stored mode.
type Representation interface {
	Resolution() int
	Rank() int
	IsReal() bool
	// At reads the coefficient of frequency f.
	At(f symmetry.Freq) complex128
	// Add accumulates c into the mode addressed by f. A HalfSpectrum only
	// accepts writes on its stored half; see HalfSpectrum.Add.
	Add(f symmetry.Freq, c complex128)
	// InverseGrid applies the inverse transform, returning Resolution^Rank
	// spatial samples in row-major order. The transform pair is
	// forward-normalized, so no scaling is applied here.
	InverseGrid() []complex128
}

// HalfSpectrum stores the non-negative half of the last axis; the missing
// modes are the conjugates of their negated frequencies.
type HalfSpectrum struct {
	res, rank, half int
	coef            []complex128
}

func NewHalfSpectrum(res, rank int) (s *HalfSpectrum) {
	s = &HalfSpectrum{
		res:  res,
		rank: rank,
		half: res/2 + 1,
	}
	size := res * s.half
	if rank == 3 {
		size = res * res * s.half
	}
	s.coef = make([]complex128, size)
	return
}

func (s *HalfSpectrum) Resolution() int { return s.res }
func (s *HalfSpectrum) Rank() int       { return s.rank }
func (s *HalfSpectrum) IsReal() bool    { return true }

func (s *HalfSpectrum) index(f symmetry.Freq) int {
	if s.rank == 2 {
		return utils.WrapIndex(f[0], s.res)*s.half + utils.WrapIndex(f[1], s.res)
	}
	return (utils.WrapIndex(f[0], s.res)*s.res+utils.WrapIndex(f[1], s.res))*s.half +
		utils.WrapIndex(f[2], s.res)
}

// stored reports whether the wrapped last-axis component of f addresses an
// explicitly stored mode. The remaining modes are reached through the
// conjugate of the negated frequency, which wraps back into storage.
func (s *HalfSpectrum) stored(f symmetry.Freq) bool {
	return utils.WrapIndex(f[s.rank-1], s.res) < s.half
}

func (s *HalfSpectrum) At(f symmetry.Freq) complex128 {
	checkPlanar(s.rank, f)
	if s.stored(f) {
		return s.coef[s.index(f)]
	}
	return cmplx.Conj(s.coef[s.index(f.Neg())])
}

// Add accumulates c into the stored mode addressed by f. A frequency
// resolving to the implicit conjugate half is dropped: its content is
// carried entirely by the stored negated mode, which the caller fills from
// the conjugate coefficient of a real-valued series. Redirecting the add
// would count those modes twice.
func (s *HalfSpectrum) Add(f symmetry.Freq, c complex128) {
	checkPlanar(s.rank, f)
	if s.stored(f) {
		s.coef[s.index(f)] += c
	}
}

// FullSpectrum stores every mode of a complex-valued field.
type FullSpectrum struct {
	res, rank int
	coef      []complex128
}

func NewFullSpectrum(res, rank int) (s *FullSpectrum) {
	size := res * res
	if rank == 3 {
		size *= res
	}
	return &FullSpectrum{
		res:  res,
		rank: rank,
		coef: make([]complex128, size),
	}
}

func (s *FullSpectrum) Resolution() int { return s.res }
func (s *FullSpectrum) Rank() int       { return s.rank }
func (s *FullSpectrum) IsReal() bool    { return false }

func (s *FullSpectrum) index(f symmetry.Freq) int {
	idx := utils.WrapIndex(f[0], s.res)*s.res + utils.WrapIndex(f[1], s.res)
	if s.rank == 3 {
		idx = idx*s.res + utils.WrapIndex(f[2], s.res)
	}
	return idx
}

func (s *FullSpectrum) At(f symmetry.Freq) complex128 {
	checkPlanar(s.rank, f)
	return s.coef[s.index(f)]
}

func (s *FullSpectrum) Add(f symmetry.Freq, c complex128) {
	checkPlanar(s.rank, f)
	s.coef[s.index(f)] += c
}

func checkPlanar(rank int, f symmetry.Freq) {
	if rank == 2 && f[2] != 0 {
		panic(fmt.Errorf("frequency %v has a nonzero last component in a rank-2 spectrum", f))
	}
}
