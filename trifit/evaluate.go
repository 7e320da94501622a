package trifit

import (
	"fmt"
	"math"

	"github.com/gridsym/trisym/spectral"
	"github.com/gridsym/trisym/utils"
)

// EvaluateAtPoints sums every orbit term directly at the given points.
// The inputs must share one length; points are spatial coordinates in the
// [-0.5, 0.5) domain convention, shifted internally onto the transform's
// [0, 1) domain. Brute force over all terms: O(terms x points).
func (ts *TriSymmetry) EvaluateAtPoints(x, y, z []float64) (vals []complex128, err error) {
	if len(y) != len(x) || len(z) != len(x) {
		return nil, fmt.Errorf("x, y, z must have the same length: %d, %d, %d",
			len(x), len(y), len(z))
	}
	vals = make([]complex128, len(x))
	for rep, orbit := range ts.Orbits {
		if ts.skippable(rep) {
			continue
		}
		w := ts.BasisCoeffs[rep] * complex(ts.NormCoeffs[rep], 0)
		for f, mult := range orbit {
			wm := w * complex(float64(mult), 0)
			for i := range x {
				arg := 2 * math.Pi * ((x[i]+0.5)*float64(f[0]) +
					(y[i]+0.5)*float64(f[1]) + (z[i]+0.5)*float64(f[2]))
				vals[i] += wm * complex(math.Cos(arg), math.Sin(arg))
			}
		}
	}
	return
}

// DirectionalDerivative evaluates the derivative of the fitted series
// along dir at the given points, term by term.
func (ts *TriSymmetry) DirectionalDerivative(x, y, z []float64, dir [3]float64) (vals []complex128, err error) {
	if len(y) != len(x) || len(z) != len(x) {
		return nil, fmt.Errorf("x, y, z must have the same length: %d, %d, %d",
			len(x), len(y), len(z))
	}
	vals = make([]complex128, len(x))
	for rep, orbit := range ts.Orbits {
		if ts.skippable(rep) {
			continue
		}
		w := ts.BasisCoeffs[rep] * complex(ts.NormCoeffs[rep], 0)
		for f, mult := range orbit {
			wm := w * complex(float64(mult), 0) * complex(0, 2*math.Pi*f.DotFloat(dir))
			for i := range x {
				arg := 2 * math.Pi * ((x[i]+0.5)*float64(f[0]) +
					(y[i]+0.5)*float64(f[1]) + (z[i]+0.5)*float64(f[2]))
				vals[i] += wm * complex(math.Cos(arg), math.Sin(arg))
			}
		}
	}
	return
}

// EvaluateGrid evaluates the fitted series on a uniform res-per-axis grid
// spanning [-0.5, 0.5) per axis, through the inverse transform. For res
// below the native resolution the series is evaluated at the smallest
// multiple of res at or above native and decimated by uniform stride, so
// no interpolation error enters. The result is res^Rank values row-major;
// imaginary parts are exactly zero when the input was real.
func (ts *TriSymmetry) EvaluateGrid(res int) (vals []complex128, err error) {
	if res < 1 {
		return nil, fmt.Errorf("grid resolution must be positive, got %d", res)
	}
	resActual := res
	if res < ts.N {
		resActual = utils.CeilDiv(ts.N, res) * res
	}
	var rep spectral.Representation
	if ts.IsReal() {
		rep = spectral.NewHalfSpectrum(resActual, ts.Rank)
	} else {
		rep = spectral.NewFullSpectrum(resActual, ts.Rank)
	}
	for key, orbit := range ts.Orbits {
		if ts.skippable(key) {
			continue
		}
		w := ts.BasisCoeffs[key] * complex(ts.NormCoeffs[key], 0)
		for f, mult := range orbit {
			rep.Add(f, w*complex(float64(mult), 0))
		}
	}
	vals = rep.InverseGrid()
	if resActual == res {
		return
	}
	var (
		skip = resActual / res
		out  []complex128
	)
	if ts.Rank == 2 {
		out = make([]complex128, res*res)
		for i := 0; i < res; i++ {
			for j := 0; j < res; j++ {
				out[i*res+j] = vals[(i*skip)*resActual+j*skip]
			}
		}
	} else {
		out = make([]complex128, res*res*res)
		for i := 0; i < res; i++ {
			for j := 0; j < res; j++ {
				for k := 0; k < res; k++ {
					out[(i*res+j)*res+k] = vals[((i*skip)*resActual+j*skip)*resActual+k*skip]
				}
			}
		}
	}
	return out, nil
}
