package symmetry

// Freq is an integer frequency triplet (fa, fb, fz) in skew lattice
// coordinates. It is comparable and used directly as a map key.
type Freq [3]int

func (f Freq) Neg() Freq {
	return Freq{-f[0], -f[1], -f[2]}
}

// DotInt returns the integer dot product of f with an integer vector.
func (f Freq) DotInt(v [3]int) (d int) {
	for i := 0; i < 3; i++ {
		d += f[i] * v[i]
	}
	return
}

// DotFloat returns the dot product of f with a real vector.
func (f Freq) DotFloat(v [3]float64) (d float64) {
	for i := 0; i < 3; i++ {
		d += float64(f[i]) * v[i]
	}
	return
}

// Element is one point-group operation expressed as an integer linear map
// acting on spatial skew coordinates. The induced action on frequency
// space is by the transpose.
type Element [3][3]int

// ApplyTranspose maps a frequency triplet through the transpose of e.
func (e Element) ApplyTranspose(f Freq) (g Freq) {
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			g[j] += e[i][j] * f[i]
		}
	}
	return
}

// GroupOrder is the order of the triangular point group.
const GroupOrder = 6

// D3Group holds the six point operations of space group 156 in skew
// coordinates (see http://img.chem.ucl.ac.uk/sgp/large/156az1.htm), each
// extended to three dimensions with the last axis held fixed.
var D3Group = [GroupOrder]Element{
	// Identity
	{{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1}},
	// 120 degree rotation
	{{0, -1, 0},
		{1, -1, 0},
		{0, 0, 1}},
	// 240 degree rotation
	{{-1, 1, 0},
		{-1, 0, 0},
		{0, 0, 1}},
	// Mirrors
	{{0, -1, 0},
		{-1, 0, 0},
		{0, 0, 1}},
	{{-1, 1, 0},
		{0, 1, 0},
		{0, 0, 1}},
	{{1, 0, 0},
		{1, -1, 0},
		{0, 0, 1}},
}
