package trifit

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/gridsym/trisym/optimize"
	"github.com/gridsym/trisym/spectral"
	"github.com/gridsym/trisym/symmetry"
	"github.com/gridsym/trisym/utils"
)

var zeroFreq = symmetry.Freq{0, 0, 0}

// Config selects the optional normal-to-face fitting pass.
type Config struct {
	// NormalToFace adjusts the coefficients after fitting so the gradient
	// of the approximation is normal to the selected reference tetrahedron
	// faces when evaluated on those faces.
	NormalToFace bool
	// Faces selects which tetrahedron faces to constrain. Defaults to face
	// 0, the only validated configuration.
	Faces []int
	// Solver overrides the default projection solver.
	Solver optimize.ConstraintSolver
	// Verbose propagates to the default solver.
	Verbose bool
}

// TriSymmetry fits triangular-symmetry Fourier basis functions to grid
// data. The grid is assumed to sample the periodic domain [-0.5, 0.5) per
// axis in skew coordinates. All state is computed at construction; only
// the optional normal-to-face pass mutates the basis coefficients, exactly
// once. Evaluator methods are read-only afterwards.
type TriSymmetry struct {
	N, Rank, MaxF int

	Orbits      symmetry.OrbitSet
	BasisCoeffs map[symmetry.Freq]complex128
	NormCoeffs  map[symmetry.Freq]float64
	// Constraints holds the face-normal equality system keyed by projected
	// frequency; populated only when normal-to-face fitting ran.
	Constraints map[symmetry.Freq]map[symmetry.Freq]complex128

	spectrum spectral.Representation
	reps     []symmetry.Freq
}

// NewTriSymmetry fits the default configuration: face 0 constraints when
// normalToFace is set, projection solver, quiet.
func NewTriSymmetry(g *spectral.Grid, normalToFace bool) (*TriSymmetry, error) {
	return NewTriSymmetryConfig(g, Config{NormalToFace: normalToFace})
}

func NewTriSymmetryConfig(g *spectral.Grid, cfg Config) (ts *TriSymmetry, err error) {
	ts = &TriSymmetry{
		N:           g.N,
		Rank:        g.Rank,
		MaxF:        g.MaxFreq(),
		BasisCoeffs: make(map[symmetry.Freq]complex128),
		NormCoeffs:  make(map[symmetry.Freq]float64),
	}
	ts.computeCoeffs(g)
	if cfg.NormalToFace {
		faces := cfg.Faces
		if len(faces) == 0 {
			faces = []int{0}
		}
		solver := cfg.Solver
		if solver == nil {
			solver = optimize.NewProjectionSolver(optimize.Settings{Verbose: cfg.Verbose})
		}
		ts.Constraints = ts.buildFaceConstraints(faces)
		if err = ts.optimizeCoeffs(solver); err != nil {
			return nil, fmt.Errorf("normal-to-face fit: %w", err)
		}
	}
	return
}

func (ts *TriSymmetry) IsReal() bool { return ts.spectrum.IsReal() }

func (ts *TriSymmetry) computeCoeffs(g *spectral.Grid) {
	ts.Orbits = symmetry.NewOrbitSet(ts.MaxF, ts.Rank)
	ts.reps = ts.Orbits.SortedReps()
	ts.spectrum = spectral.Forward(g)
	for rep, orbit := range ts.Orbits {
		var (
			sum complex128
			ssq int
		)
		for f, mult := range orbit {
			sum += complex(float64(mult), 0) * ts.spectrum.At(f)
			ssq += mult * mult
		}
		nc := 1 / math.Sqrt(float64(ssq))
		ts.NormCoeffs[rep] = nc
		ts.BasisCoeffs[rep] = sum * complex(nc, 0)
	}
}

// optimizeCoeffs replaces the basis coefficients with the nearest set
// satisfying the accumulated constraints. The constant term carries no
// gradient information and stays fixed.
func (ts *TriSymmetry) optimizeCoeffs(solver optimize.ConstraintSolver) (err error) {
	var (
		keyToIndex = make(map[symmetry.Freq]int)
		target     []complex128
	)
	for _, rep := range ts.reps {
		if rep == zeroFreq {
			continue
		}
		keyToIndex[rep] = len(target)
		target = append(target, ts.BasisCoeffs[rep])
	}
	var (
		projKeys = sortedFreqs(ts.Constraints)
		rows     = make([]optimize.Row, 0, len(projKeys))
		rhs      = make([]complex128, len(projKeys))
	)
	for _, projKey := range projKeys {
		row := make(optimize.Row)
		for rep, coeff := range ts.Constraints[projKey] {
			row[keyToIndex[rep]] = coeff
		}
		rows = append(rows, row)
	}
	sol, err := solver.Solve(&optimize.Problem{
		Target: target,
		Rows:   rows,
		RHS:    rhs,
	})
	if err != nil {
		return
	}
	for rep, index := range keyToIndex {
		ts.BasisCoeffs[rep] = sol[index]
	}
	return
}

// skippable reports whether an orbit contributes nothing worth evaluating.
func (ts *TriSymmetry) skippable(rep symmetry.Freq) bool {
	return cmplx.Abs(ts.BasisCoeffs[rep]) < utils.NODETOL
}

func sortedFreqs(m map[symmetry.Freq]map[symmetry.Freq]complex128) (keys []symmetry.Freq) {
	keys = make([]symmetry.Freq, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		for k := 0; k < 3; k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return
}
