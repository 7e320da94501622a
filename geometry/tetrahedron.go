package geometry

// Face describes one face of the reference tetrahedron for normal-gradient
// fitting: the outward normal, the transposed affine projection taking a
// frequency triplet onto the face plane, and the translation offset that
// reconciles the transform's [0,1) domain convention with the geometric
// [-0.5, 0.5) domain.
type Face struct {
	Normal [3]int
	ProjT  [3][3]int
	Offset [3]float64
}

// UnitTetPts are the vertices of the reference tetrahedron inscribed in
// the unit cube [-0.5, 0.5]^3.
var UnitTetPts = [4][3]float64{
	{-0.5, -0.5, -0.5},
	{-0.5, 0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, -0.5},
}

// TetFaces lists the four faces of UnitTetPts. Face i is opposite vertex
// i, with the outward normal. For this tetrahedron the domain-shift phase
// works out to unity on every face, so the offsets only need to be integer
// vectors; only face 0 is validated end to end.
// WARNING: these tables are hardcoded against UnitTetPts. Changing the
// vertices requires rederiving every entry.
var TetFaces = [4]Face{
	{
		Normal: [3]int{1, 1, 1},
		ProjT: [3][3]int{
			{1, 0, -1},
			{0, 1, -1},
			{0, 0, 0}},
		Offset: [3]float64{0, 0, 1},
	},
	{
		Normal: [3]int{1, -1, -1},
		ProjT: [3][3]int{
			{1, 0, 1},
			{0, 1, -1},
			{0, 0, 0}},
		Offset: [3]float64{0, 0, 0},
	},
	{
		Normal: [3]int{-1, 1, -1},
		ProjT: [3][3]int{
			{1, 0, -1},
			{0, 1, 1},
			{0, 0, 0}},
		Offset: [3]float64{0, 0, 0},
	},
	{
		Normal: [3]int{-1, -1, 1},
		ProjT: [3][3]int{
			{1, 0, 1},
			{0, 1, 1},
			{0, 0, 0}},
		Offset: [3]float64{0, 0, 0},
	},
}

// FaceCenter returns the centroid of face i.
func FaceCenter(i int) (c [3]float64) {
	for v := 0; v < 4; v++ {
		if v == i {
			continue
		}
		for k := 0; k < 3; k++ {
			c[k] += UnitTetPts[v][k] / 3
		}
	}
	return
}
