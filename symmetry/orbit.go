package symmetry

import (
	"fmt"
	"sort"
)

// Orbit maps each image of one representative frequency under the group to
// the number of group elements producing that image. Stabilizer elements
// show up as multiplicities greater than one; the multiplicities always
// sum to GroupOrder.
type Orbit map[Freq]int

// NewOrbit applies the transpose of every group element to rep and tallies
// the images.
func NewOrbit(rep Freq) (o Orbit) {
	o = make(Orbit)
	for _, e := range D3Group {
		o[e.ApplyTranspose(rep)]++
	}
	return
}

func (o Orbit) TotalMultiplicity() (total int) {
	for _, mult := range o {
		total += mult
	}
	return
}

// SumSquaredMultiplicities feeds the per-orbit normalizing coefficient.
func (o Orbit) SumSquaredMultiplicities() (total int) {
	for _, mult := range o {
		total += mult * mult
	}
	return
}

// OrbitSet maps each fundamental-domain representative to its orbit.
type OrbitSet map[Freq]Orbit

// NewOrbitSet builds the orbit of every representative in the frequency
// box [-maxF, maxF] per axis. For rank 2 the last axis is pinned to zero.
// A representative produced twice indicates a broken fundamental-domain
// filter and is fatal.
func NewOrbitSet(maxF, rank int) (os OrbitSet) {
	var (
		zmin, zmax = -maxF, maxF
	)
	if rank == 2 {
		zmin, zmax = 0, 0
	}
	os = make(OrbitSet)
	for fa := -maxF; fa <= maxF; fa++ {
		for fb := -maxF; fb <= maxF; fb++ {
			for fz := zmin; fz <= zmax; fz++ {
				f := Freq{fa, fb, fz}
				if !InFundamentalDomain(f) {
					continue
				}
				if _, exists := os[f]; exists {
					panic(fmt.Errorf("duplicate orbit representative %v", f))
				}
				os[f] = NewOrbit(f)
			}
		}
	}
	return
}

// SortedReps returns the representatives in lexicographic order so callers
// that need a stable variable ordering get one.
func (os OrbitSet) SortedReps() (reps []Freq) {
	reps = make([]Freq, 0, len(os))
	for rep := range os {
		reps = append(reps, rep)
	}
	sort.Slice(reps, func(i, j int) bool {
		a, b := reps[i], reps[j]
		for k := 0; k < 3; k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return
}
