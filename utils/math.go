package utils

import (
	"math"
)

// Relative tolerance used to decide that a quotient is an integer
const snapTolerance = 1.e-9

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}

// CeilDiv returns ceil(a/b), treating quotients within rounding noise of an integer as exact
func CeilDiv(a, b float64) int {
	q := a / b
	if r := math.Round(q); math.Abs(q-r) <= snapTolerance*math.Max(1, math.Abs(q)) {
		return int(r)
	}
	return int(math.Ceil(q))
}

// FloorDiv returns floor(a/b), treating quotients within rounding noise of an integer as exact
func FloorDiv(a, b float64) int {
	q := a / b
	if r := math.Round(q); math.Abs(q-r) <= snapTolerance*math.Max(1, math.Abs(q)) {
		return int(r)
	}
	return int(math.Floor(q))
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
