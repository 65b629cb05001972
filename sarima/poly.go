package sarima

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// lagPoly returns 1 + sign*(c_1 B^step + c_2 B^(2*step) + ...) as a slice
// indexed by lag.
func lagPoly(coeffs []float64, step int, sign float64) []float64 {
	poly := make([]float64, len(coeffs)*step+1)
	poly[0] = 1
	for i, c := range coeffs {
		poly[(i+1)*step] = sign * c
	}
	return poly
}

func polyMul(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return out
}

// diffPoly returns (1-B)^d (1-B^m)^sd.
func diffPoly(d, sd, m int) []float64 {
	poly := []float64{1}
	for i := 0; i < d; i++ {
		poly = polyMul(poly, []float64{1, -1})
	}
	for i := 0; i < sd; i++ {
		poly = polyMul(poly, lagPoly([]float64{1}, m, -1))
	}
	return poly
}

// applyPoly filters y through poly; the first len(poly)-1 observations are
// consumed.
func applyPoly(poly, y []float64) []float64 {
	lag := len(poly) - 1
	if len(y) <= lag {
		return nil
	}
	out := make([]float64, len(y)-lag)
	for i := range out {
		t := i + lag
		v := 0.0
		for k, c := range poly {
			v += c * y[t-k]
		}
		out[i] = v
	}
	return out
}

// constrain maps unconstrained reals to the coefficients phi of a stationary
// polynomial 1 - phi_1 B - ... - phi_n B^n. Each input becomes a partial
// autocorrelation in (-1, 1) and the Durbin-Levinson recursion builds the
// coefficients (Jones 1980, Monahan 1984).
func constrain(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	phi := make([]float64, n)
	prev := make([]float64, n)
	for k := 0; k < n; k++ {
		r := x[k] / math.Sqrt(1+x[k]*x[k])
		for i := 0; i < k; i++ {
			phi[i] = prev[i] - r*prev[k-1-i]
		}
		phi[k] = r
		copy(prev, phi)
	}
	return phi
}

// unconstrainPACF is the inverse of the per-coordinate map used by constrain.
func unconstrainPACF(r float64) float64 {
	r = math.Max(-0.9, math.Min(0.9, r))
	return r / math.Sqrt(1-r*r)
}

// maxRootModulus returns the largest eigenvalue modulus of the companion
// matrix of poly. The polynomial is stationary (or invertible, for MA
// polynomials) when the result is below one.
func maxRootModulus(poly []float64) float64 {
	n := len(poly) - 1
	for n > 0 && poly[n] == 0 {
		n--
	}
	if n == 0 {
		return 0
	}
	if n == 1 {
		return math.Abs(poly[1])
	}

	companion := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		companion.Set(0, j, -poly[j+1])
	}
	for i := 1; i < n; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return math.Inf(1)
	}
	largest := 0.0
	for _, v := range eig.Values(nil) {
		largest = math.Max(largest, cmplx.Abs(v))
	}
	return largest
}
