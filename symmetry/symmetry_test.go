package symmetry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupTable(t *testing.T) {
	// Element 0 is the identity.
	f := Freq{3, -2, 1}
	assert.Equal(t, f, D3Group[0].ApplyTranspose(f))
	// The rotations compose to the identity.
	g := D3Group[1].ApplyTranspose(D3Group[1].ApplyTranspose(D3Group[1].ApplyTranspose(f)))
	assert.Equal(t, f, g)
	// Mirrors are involutions.
	for _, e := range D3Group[3:] {
		assert.Equal(t, f, e.ApplyTranspose(e.ApplyTranspose(f)))
	}
	// The last axis is never touched.
	for _, e := range D3Group {
		assert.Equal(t, f[2], e.ApplyTranspose(f)[2])
	}
}

func TestOrbitMultiplicity(t *testing.T) {
	for _, rep := range []Freq{{0, 0, 0}, {1, 0, 0}, {2, 1, -1}, {1, 1, 2}} {
		o := NewOrbit(rep)
		assert.Equal(t, GroupOrder, o.TotalMultiplicity())
	}
	// The constant frequency is stabilized by the whole group.
	o := NewOrbit(Freq{0, 0, 0})
	assert.Equal(t, 1, len(o))
	assert.Equal(t, GroupOrder, o[Freq{0, 0, 0}])
	// A mirror-line frequency has stabilizer order 2.
	o = NewOrbit(Freq{1, 0, 0})
	assert.Equal(t, 3, len(o))
	for _, mult := range o {
		assert.Equal(t, 2, mult)
	}
}

func TestOrbitPartition(t *testing.T) {
	for _, maxF := range []int{1, 2, 3} {
		for _, rank := range []int{2, 3} {
			os := NewOrbitSet(maxF, rank)
			zmin, zmax := -maxF, maxF
			if rank == 2 {
				zmin, zmax = 0, 0
			}
			// Count how often each in-range triplet shows up as an orbit
			// member. Orbit images may also land outside the range; those
			// alias onto stored modes and are not part of the partition.
			coverage := make(map[Freq]int)
			for rep, orbit := range os {
				assert.True(t, InFundamentalDomain(rep))
				assert.Equal(t, GroupOrder, orbit.TotalMultiplicity())
				for f := range orbit {
					coverage[f]++
				}
			}
			for fa := -maxF; fa <= maxF; fa++ {
				for fb := -maxF; fb <= maxF; fb++ {
					for fz := zmin; fz <= zmax; fz++ {
						f := Freq{fa, fb, fz}
						assert.Equal(t, 1, coverage[f],
							fmt.Sprintf("maxF=%d rank=%d freq=%v covered %d times", maxF, rank, f, coverage[f]))
					}
				}
			}
		}
	}
}

func TestSortedRepsStable(t *testing.T) {
	os := NewOrbitSet(2, 3)
	reps := os.SortedReps()
	assert.Equal(t, len(os), len(reps))
	for i := 1; i < len(reps); i++ {
		a, b := reps[i-1], reps[i]
		less := false
		for k := 0; k < 3; k++ {
			if a[k] != b[k] {
				less = a[k] < b[k]
				break
			}
		}
		assert.True(t, less)
	}
}
