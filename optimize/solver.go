package optimize

import (
	"errors"
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInfeasible reports an equality system with no solution.
	ErrInfeasible = errors.New("constraint system is infeasible")
	// ErrFactorization reports a failed factorization of the constraint
	// matrix.
	ErrFactorization = errors.New("constraint matrix factorization failed")
)

// Row is one complex equality constraint, mapping variable index to its
// coefficient.
type Row map[int]complex128

// Problem is the minimum-deviation quadratic program: find complex x
// minimizing ||x - Target||^2 subject to Rows[i]·x = RHS[i] for every i.
type Problem struct {
	Target []complex128
	Rows   []Row
	RHS    []complex128
}

// Settings carries the injectable numerical budget of a solver.
type Settings struct {
	Tol     float64
	Verbose bool
}

// ConstraintSolver adjusts coefficients to satisfy a linear equality
// system while staying as close as possible to the unconstrained values.
type ConstraintSolver interface {
	Solve(p *Problem) ([]complex128, error)
}

// ProjectionSolver solves the program exactly by orthogonal projection in
// the real embedding of the complex variables: each complex constraint
// becomes two real rows, and the target is projected onto the affine
// solution subspace through an SVD of the constraint matrix.
type ProjectionSolver struct {
	Settings
}

func NewProjectionSolver(s Settings) *ProjectionSolver {
	if s.Tol == 0 {
		s.Tol = 1.e-10
	}
	return &ProjectionSolver{Settings: s}
}

func (ps *ProjectionSolver) Solve(p *Problem) (x []complex128, err error) {
	var (
		nvar = len(p.Target)
		nrow = len(p.Rows)
	)
	if len(p.RHS) != nrow {
		return nil, fmt.Errorf("have %d constraint rows but %d right-hand sides", nrow, len(p.RHS))
	}
	x = make([]complex128, nvar)
	copy(x, p.Target)
	if nrow == 0 || nvar == 0 {
		return
	}
	var (
		m2 = 2 * nrow
		k2 = 2 * nvar
	)
	// Assemble the real embedding sparsely: constraints touch only the
	// orbits whose members project onto their key.
	dok := sparse.NewDOK(m2, k2)
	for i, row := range p.Rows {
		for k, a := range row {
			ar, ai := real(a), imag(a)
			dok.Set(2*i, 2*k, ar)
			dok.Set(2*i, 2*k+1, -ai)
			dok.Set(2*i+1, 2*k, ai)
			dok.Set(2*i+1, 2*k+1, ar)
		}
	}
	var (
		b = mat.NewVecDense(m2, nil)
		u = mat.NewVecDense(k2, nil)
	)
	for i, v := range p.RHS {
		b.SetVec(2*i, real(v))
		b.SetVec(2*i+1, imag(v))
	}
	for k, v := range p.Target {
		u.SetVec(2*k, real(v))
		u.SetVec(2*k+1, imag(v))
	}

	var svd mat.SVD
	if ok := svd.Factorize(dok.ToDense(), mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: SVD of %dx%d system did not converge", ErrFactorization, m2, k2)
	}
	var (
		sigma   = svd.Values(nil)
		rank    int
		UM, VM  mat.Dense
		nsigma  = len(sigma)
		sigTol  = ps.Tol
	)
	svd.UTo(&UM)
	svd.VTo(&VM)
	if nsigma > 0 && sigma[0] > 0 {
		sigTol = ps.Tol * sigma[0]
	}
	for _, s := range sigma {
		if s > sigTol {
			rank++
		}
	}
	if ps.Verbose {
		fmt.Printf("projection solve: %d constraints x %d variables (real-embedded), rank %d of %d\n",
			m2, k2, rank, nsigma)
	}

	// Particular solution x0 = V S+ Ut b.
	w := mat.NewVecDense(nsigma, nil)
	w.MulVec(UM.T(), b)
	for i := 0; i < nsigma; i++ {
		if i < rank {
			w.SetVec(i, w.AtVec(i)/sigma[i])
		} else {
			w.SetVec(i, 0)
		}
	}
	x0 := mat.NewVecDense(k2, nil)
	x0.MulVec(&VM, w)

	// Project the deviation u - x0 onto the null space of A.
	d := mat.NewVecDense(k2, nil)
	d.SubVec(u, x0)
	t := mat.NewVecDense(nsigma, nil)
	t.MulVec(VM.T(), d)
	for i := rank; i < nsigma; i++ {
		t.SetVec(i, 0)
	}
	corr := mat.NewVecDense(k2, nil)
	corr.MulVec(&VM, t)
	sol := mat.NewVecDense(k2, nil)
	sol.AddVec(x0, d)
	sol.SubVec(sol, corr)

	// Verify the solution actually satisfies the system; a residual here
	// means the right-hand side is outside the row space.
	var resid mat.VecDense
	resid.MulVec(dok.ToCSR(), sol)
	resid.SubVec(&resid, b)
	if mat.Norm(&resid, 2) > ps.Tol*(1+mat.Norm(b, 2)) {
		return nil, fmt.Errorf("%w: residual %g", ErrInfeasible, mat.Norm(&resid, 2))
	}

	for k := 0; k < nvar; k++ {
		x[k] = complex(sol.AtVec(2*k), sol.AtVec(2*k+1))
	}
	return
}
