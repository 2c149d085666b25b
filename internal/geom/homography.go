package geom

// ComputePerspectiveTransform solves the 8-unknown linear system for the
// homography coefficients [a,b,c,d,e,f,g,h] such that
//
//	x' = (a*x + b*y + c) / (g*x + h*y + 1)
//	y' = (d*x + e*y + f) / (g*x + h*y + 1)
//
// mapping src[i] -> dst[i] for i in 0..3. Solved via Gaussian elimination
// with partial pivoting on an 8x9 augmented matrix.
func ComputePerspectiveTransform(src, dst [4]Point) ([9]float64, bool) {
	var a [8][8]float64
	var b [8]float64

	for i := range 4 {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y
		r := 2 * i

		a[r][0], a[r][1], a[r][2] = x, y, 1
		a[r][6], a[r][7] = -x*xp, -y*xp
		b[r] = xp

		a[r+1][3], a[r+1][4], a[r+1][5] = x, y, 1
		a[r+1][6], a[r+1][7] = -x*yp, -y*yp
		b[r+1] = yp
	}

	h, ok := solve8x8(a, b)
	if !ok {
		return [9]float64{}, false
	}
	return [9]float64{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}, true
}

func solve8x8(a [8][8]float64, b [8]float64) ([8]float64, bool) {
	matrix, vector := a, b

	for col := range 8 {
		if !pivotAndNormalize(&matrix, &vector, col) {
			return [8]float64{}, false
		}
		eliminateColumn(&matrix, &vector, col)
	}
	return vector, true
}

func pivotAndNormalize(matrix *[8][8]float64, vector *[8]float64, col int) bool {
	pivotRow := findPivotRow(*matrix, col)
	if pivotRow == -1 {
		return false
	}
	if pivotRow != col {
		matrix[col], matrix[pivotRow] = matrix[pivotRow], matrix[col]
		vector[col], vector[pivotRow] = vector[pivotRow], vector[col]
	}
	div := matrix[col][col]
	for c := col; c < 8; c++ {
		matrix[col][c] /= div
	}
	vector[col] /= div
	return true
}

func findPivotRow(matrix [8][8]float64, col int) int {
	maxAbs := absF(matrix[col][col])
	pivot := col
	for r := col + 1; r < 8; r++ {
		if v := absF(matrix[r][col]); v > maxAbs {
			maxAbs, pivot = v, r
		}
	}
	if maxAbs == 0 {
		return -1
	}
	return pivot
}

func eliminateColumn(matrix *[8][8]float64, vector *[8]float64, col int) {
	for r := range 8 {
		if r == col {
			continue
		}
		factor := matrix[r][col]
		if factor == 0 {
			continue
		}
		for c := col; c < 8; c++ {
			matrix[r][c] -= factor * matrix[col][c]
		}
		vector[r] -= factor * vector[col]
	}
}

// ApplyHomography maps (x, y) through h. Returns (NaN, NaN)-equivalent
// sentinel (-1e9, -1e9) when the denominator is zero.
func ApplyHomography(h [9]float64, x, y float64) (float64, float64) {
	denom := h[6]*x + h[7]*y + h[8]
	if denom == 0 {
		return -1e9, -1e9
	}
	return (h[0]*x + h[1]*y + h[2]) / denom, (h[3]*x + h[4]*y + h[5]) / denom
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
