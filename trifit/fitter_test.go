package trifit

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsym/trisym/geometry"
	"github.com/gridsym/trisym/spectral"
	"github.com/gridsym/trisym/symmetry"
)

func near(a, b complex128) bool {
	return cmplx.Abs(a-b) < 1.e-8
}

func applySpatial(e symmetry.Element, p [3]float64) (q [3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			q[i] += float64(e[i][j]) * p[j]
		}
	}
	return
}

func randomField(rng *rand.Rand, size int) (vals []float64) {
	vals = make([]float64, size)
	for i := range vals {
		vals[i] = rng.NormFloat64()
	}
	return
}

func gridPoints(res, rank int) (x, y, z []float64) {
	coord := func(i int) float64 { return float64(i)/float64(res) - 0.5 }
	for i := 0; i < res; i++ {
		for j := 0; j < res; j++ {
			if rank == 2 {
				x = append(x, coord(i))
				y = append(y, coord(j))
				z = append(z, 0)
				continue
			}
			for k := 0; k < res; k++ {
				x = append(x, coord(i))
				y = append(y, coord(j))
				z = append(z, coord(k))
			}
		}
	}
	return
}

func TestBasisOrthonormality(t *testing.T) {
	// Orbit images reach twice the base band, so a 9-point grid resolves
	// every image of the maxF=2 set without aliasing. On such a grid the
	// normalized orbit sums form an orthonormal family.
	var (
		maxF = 2
		m    = 9
		os   = symmetry.NewOrbitSet(maxF, 2)
		reps = os.SortedReps()
	)
	basisAt := func(rep symmetry.Freq, ya, yb float64) (val complex128) {
		orbit := os[rep]
		nc := 1 / math.Sqrt(float64(orbit.SumSquaredMultiplicities()))
		for f, mult := range orbit {
			arg := 2 * math.Pi * (ya*float64(f[0]) + yb*float64(f[1]))
			val += complex(nc*float64(mult), 0) * complex(math.Cos(arg), math.Sin(arg))
		}
		return
	}
	for a, repA := range reps {
		for b, repB := range reps {
			var inner complex128
			for i := 0; i < m; i++ {
				for j := 0; j < m; j++ {
					ya, yb := float64(i)/float64(m), float64(j)/float64(m)
					inner += basisAt(repA, ya, yb) * cmplx.Conj(basisAt(repB, ya, yb))
				}
			}
			inner /= complex(float64(m*m), 0)
			want := complex128(0)
			if a == b {
				want = 1
			}
			assert.True(t, near(want, inner),
				fmt.Sprintf("reps %v, %v: inner product %v", repA, repB, inner))
		}
	}
}

func TestRoundTripSymmetricField(t *testing.T) {
	// A field that is already invariant under the triangular group and
	// band-limited to the grid is reproduced exactly by the fit.
	var (
		rng = rand.New(rand.NewSource(3))
		n   = 5
	)
	for _, rank := range []int{2, 3} {
		var freqs []symmetry.Freq
		if rank == 2 {
			freqs = []symmetry.Freq{{1, 0, 0}, {1, 1, 0}, {0, 2, 0}, {2, -1, 0}}
		} else {
			freqs = []symmetry.Freq{{1, 0, 0}, {1, 1, 0}, {0, 1, 1}, {1, -1, 2}, {2, 0, -1}}
		}
		var (
			amps   = make([]float64, len(freqs))
			phases = make([]float64, len(freqs))
		)
		for i := range freqs {
			amps[i] = rng.NormFloat64()
			phases[i] = 2 * math.Pi * rng.Float64()
		}
		raw := func(p [3]float64) (val float64) {
			for i, f := range freqs {
				val += amps[i] * math.Cos(2*math.Pi*f.DotFloat(p)+phases[i])
			}
			return
		}
		size := n * n
		if rank == 3 {
			size *= n
		}
		data := make([]float64, size)
		for idx := 0; idx < size; idx++ {
			var p [3]float64
			switch rank {
			case 2:
				p = [3]float64{float64(idx / n), float64(idx % n), 0}
			case 3:
				p = [3]float64{float64(idx / (n * n)), float64((idx / n) % n), float64(idx % n)}
			}
			for k := range p {
				p[k] /= float64(n)
			}
			for _, e := range symmetry.D3Group {
				data[idx] += raw(applySpatial(e, p)) / float64(symmetry.GroupOrder)
			}
		}
		g, err := spectral.NewGridReal(data, n, rank)
		require.NoError(t, err)
		ts, err := NewTriSymmetry(g, false)
		require.NoError(t, err)
		vals, err := ts.EvaluateGrid(n)
		require.NoError(t, err)
		for idx := range data {
			assert.True(t, near(complex(data[idx], 0), vals[idx]),
				fmt.Sprintf("rank=%d idx=%d: %v vs %v", rank, idx, data[idx], vals[idx]))
		}
	}
}

func TestAxisCosineAmplitude(t *testing.T) {
	// cos(2 pi z) spans the single orbit {(0,0,1): 6}. Its stored mode and
	// the implicit conjugate each carry half the amplitude, so the grid
	// evaluation must come back at strength one, not two.
	n := 5
	data := make([]float64, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				data[(i*n+j)*n+k] = math.Cos(2 * math.Pi * float64(k) / float64(n))
			}
		}
	}
	g, err := spectral.NewGridReal(data, n, 3)
	require.NoError(t, err)
	ts, err := NewTriSymmetry(g, false)
	require.NoError(t, err)
	vals, err := ts.EvaluateGrid(n)
	require.NoError(t, err)
	for idx := range data {
		assert.True(t, near(complex(data[idx], 0), vals[idx]),
			fmt.Sprintf("idx=%d: %v vs %v", idx, data[idx], vals[idx]))
	}
	direct, err := ts.EvaluateAtPoints([]float64{-0.5}, []float64{-0.5}, []float64{-0.5})
	require.NoError(t, err)
	assert.True(t, near(1, direct[0]))
}

func TestDualModeAgreement(t *testing.T) {
	// The gridded evaluation and the direct sum must agree for arbitrary
	// data, at native resolution, upsampled, and decimated.
	rng := rand.New(rand.NewSource(4))
	for _, n := range []int{4, 5} {
		g, err := spectral.NewGridReal(randomField(rng, n*n*n), n, 3)
		require.NoError(t, err)
		ts, err := NewTriSymmetry(g, false)
		require.NoError(t, err)
		for _, res := range []int{n, 2 * n, 3} {
			vals, err := ts.EvaluateGrid(res)
			require.NoError(t, err)
			x, y, z := gridPoints(res, 3)
			direct, err := ts.EvaluateAtPoints(x, y, z)
			require.NoError(t, err)
			require.Equal(t, len(direct), len(vals))
			for i := range vals {
				assert.True(t, near(direct[i], vals[i]),
					fmt.Sprintf("n=%d res=%d i=%d: %v vs %v", n, res, i, direct[i], vals[i]))
			}
		}
	}
}

func TestSymmetryInvariance(t *testing.T) {
	// The fitted series is invariant under the group acting on the shifted
	// coordinates y = x + 0.5, whatever the input data.
	var (
		rng = rand.New(rand.NewSource(5))
		n   = 4
	)
	g, err := spectral.NewGridReal(randomField(rng, n*n), n, 2)
	require.NoError(t, err)
	ts, err := NewTriSymmetry(g, false)
	require.NoError(t, err)
	var x, y, z []float64
	for i := 0; i < 8; i++ {
		x = append(x, rng.Float64()-0.5)
		y = append(y, rng.Float64()-0.5)
		z = append(z, 0)
	}
	base, err := ts.EvaluateAtPoints(x, y, z)
	require.NoError(t, err)
	for _, e := range symmetry.D3Group {
		var xi, yi, zi []float64
		for i := range x {
			q := applySpatial(e, [3]float64{x[i] + 0.5, y[i] + 0.5, z[i] + 0.5})
			xi = append(xi, q[0]-0.5)
			yi = append(yi, q[1]-0.5)
			zi = append(zi, q[2]-0.5)
		}
		mapped, err := ts.EvaluateAtPoints(xi, yi, zi)
		require.NoError(t, err)
		for i := range base {
			assert.True(t, near(base[i], mapped[i]),
				fmt.Sprintf("element %v point %d: %v vs %v", e, i, base[i], mapped[i]))
		}
	}
}

func TestRealInputStaysReal(t *testing.T) {
	var (
		rng = rand.New(rand.NewSource(6))
		n   = 5
	)
	g, err := spectral.NewGridReal(randomField(rng, n*n*n), n, 3)
	require.NoError(t, err)
	ts, err := NewTriSymmetry(g, false)
	require.NoError(t, err)
	assert.True(t, ts.IsReal())
	vals, err := ts.EvaluateGrid(n)
	require.NoError(t, err)
	for i := range vals {
		assert.Equal(t, 0., imag(vals[i]))
	}
	direct, err := ts.EvaluateAtPoints([]float64{0.13}, []float64{-0.27}, []float64{0.41})
	require.NoError(t, err)
	assert.InDelta(t, 0, imag(direct[0]), 1.e-9)
}

func schwarzPField(n int) (data []float64) {
	data = make([]float64, n*n*n)
	coord := func(i int) float64 { return float64(i-n/2) / float64(n) }
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				data[(i*n+j)*n+k] = math.Cos(2*math.Pi*coord(i)) +
					math.Cos(2*math.Pi*coord(j)) + math.Cos(2*math.Pi*coord(k))
			}
		}
	}
	return
}

func TestNormalToFaceFit(t *testing.T) {
	var (
		n      = 4
		normal = [3]float64{1, 1, 1}
		center = geometry.FaceCenter(0)
		// All on the face plane x + y + z = 0.5.
		x = []float64{center[0], 0.3, 0.05}
		y = []float64{center[1], 0.1, 0.2}
		z = []float64{center[2], 0.1, 0.25}
	)
	g, err := spectral.NewGridReal(schwarzPField(n), n, 3)
	require.NoError(t, err)

	// The plain fit has a substantial normal derivative at the face center.
	free, err := NewTriSymmetry(g, false)
	require.NoError(t, err)
	assert.Nil(t, free.Constraints)
	d0, err := free.DirectionalDerivative(x[:1], y[:1], z[:1], normal)
	require.NoError(t, err)
	fmt.Printf("unconstrained normal derivative at face center: %v\n", d0[0])
	assert.Greater(t, cmplx.Abs(d0[0]), 1.)

	ts, err := NewTriSymmetry(g, true)
	require.NoError(t, err)
	require.NotEmpty(t, ts.Constraints)
	d, err := ts.DirectionalDerivative(x, y, z, normal)
	require.NoError(t, err)
	for i := range d {
		assert.InDelta(t, 0, cmplx.Abs(d[i]), 1.e-9,
			fmt.Sprintf("point %d: derivative %v", i, d[i]))
	}

	// Cross-check with a central difference through the face center.
	var (
		h     = 1.e-4
		scale = 1 / math.Sqrt(3)
		xp    = []float64{center[0] + h*scale}
		yp    = []float64{center[1] + h*scale}
		zp    = []float64{center[2] + h*scale}
		xm    = []float64{center[0] - h*scale}
		ym    = []float64{center[1] - h*scale}
		zm    = []float64{center[2] - h*scale}
	)
	fp, err := ts.EvaluateAtPoints(xp, yp, zp)
	require.NoError(t, err)
	fm, err := ts.EvaluateAtPoints(xm, ym, zm)
	require.NoError(t, err)
	diff := real(fp[0]-fm[0]) / (2 * h)
	assert.InDelta(t, 0, diff, 1.e-4)
}

func TestEvaluatePreconditions(t *testing.T) {
	var (
		rng = rand.New(rand.NewSource(7))
		n   = 4
	)
	g, err := spectral.NewGridReal(randomField(rng, n*n), n, 2)
	require.NoError(t, err)
	ts, err := NewTriSymmetry(g, false)
	require.NoError(t, err)
	_, err = ts.EvaluateAtPoints([]float64{0}, []float64{0, 1}, []float64{0})
	assert.Error(t, err)
	_, err = ts.DirectionalDerivative([]float64{0}, []float64{0}, nil, [3]float64{1, 0, 0})
	assert.Error(t, err)
	_, err = ts.EvaluateGrid(0)
	assert.Error(t, err)
}
