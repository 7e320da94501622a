package trifit

import (
	"math"
	"math/cmplx"

	"github.com/gridsym/trisym/geometry"
	"github.com/gridsym/trisym/symmetry"
	"github.com/gridsym/trisym/utils"
)

// buildFaceConstraints collects one equality equation per distinct
// projected frequency on each selected face. Forcing each equation to
// zero makes the directional derivative along the face normal vanish
// everywhere on that face: modes sharing a projected frequency restrict to
// the same in-face harmonic, so their normal-derivative contributions must
// cancel. The constant orbit is skipped since it cannot affect a
// derivative. Rows whose coefficients are all near zero are degenerate and
// dropped.
func (ts *TriSymmetry) buildFaceConstraints(faces []int) (constraints map[symmetry.Freq]map[symmetry.Freq]complex128) {
	constraints = make(map[symmetry.Freq]map[symmetry.Freq]complex128)
	for _, fi := range faces {
		face := geometry.TetFaces[fi]
		for rep, orbit := range ts.Orbits {
			if rep == zeroFreq {
				continue
			}
			nc := ts.NormCoeffs[rep]
			for f, mult := range orbit {
				var (
					projKey  = projectFreq(face.ProjT, f)
					phase    = cmplx.Exp(complex(0, 2*math.Pi*f.DotFloat(face.Offset)))
					gradTerm = complex(0, 2*math.Pi*float64(f.DotInt(face.Normal)))
					coeff    = complex(nc*float64(mult), 0) * phase * gradTerm
				)
				row, ok := constraints[projKey]
				if !ok {
					row = make(map[symmetry.Freq]complex128)
					constraints[projKey] = row
				}
				row[rep] += coeff
			}
		}
	}
	for projKey, row := range constraints {
		degenerate := true
		for _, coeff := range row {
			if cmplx.Abs(coeff) > utils.NODETOL {
				degenerate = false
				break
			}
		}
		if degenerate {
			delete(constraints, projKey)
		}
	}
	return
}

func projectFreq(projT [3][3]int, f symmetry.Freq) (g symmetry.Freq) {
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			g[j] += projT[j][i] * f[i]
		}
	}
	return
}
