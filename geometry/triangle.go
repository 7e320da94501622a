package geometry

// Reference triangle geometry in skew coordinates a, b:
//
//	   b
//	    ^    ^
//	     \  / \
//	      \/   \
//	      /\    \
//	     /  \    \
//	    /    *----\----> a
//	   /           \
//	  /             \
//	 /_______________\
//
//	 <------ 1 ------>

// UnitTrianglePts is an equilateral triangle with side length 1 centered
// at the origin, pointed towards Cartesian Y, in skew coordinates.
var UnitTrianglePts = [3][2]float64{
	{1.0 / 3.0, -1.0 / 3.0},
	{1.0 / 3.0, 2.0 / 3.0},
	{-2.0 / 3.0, -1.0 / 3.0},
}

// UnitTriCell indexes UnitTrianglePts as a single cell.
var UnitTriCell = [1][3]int{{0, 1, 2}}

// RhombusOrigin is the corner of the periodic rhombus domain the grid
// samples cover, so sample (i, j) sits at RhombusOrigin + (i, j)/N in skew
// coordinates.
var RhombusOrigin = [2]float64{-2.0 / 3.0, 2.0 / 3.0}
