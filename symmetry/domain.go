package symmetry

// Outward normal vectors of the planes bounding the fundamental domain of
// the frequency-space (transpose) group action. Both planes pass through
// the origin; the boundary is inclusive. The wedge fa >= 0, fb >= 0 lies
// between two mirror lines of the transpose action (fa = 0 and fb = 0) and
// contains exactly one member of every orbit.
var fundamentalPlanes = [2][3]int{
	{-1, 0, 0},
	{0, -1, 0},
}

// InFundamentalDomain reports whether f lies on or inside every bounding
// plane of the fundamental domain, i.e. whether f is the representative of
// its orbit.
func InFundamentalDomain(f Freq) bool {
	for _, plane := range fundamentalPlanes {
		if f.DotInt(plane) > 0 {
			return false
		}
	}
	return true
}
