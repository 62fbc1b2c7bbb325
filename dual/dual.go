package dual

import (
	"math"

	gdual "gonum.org/v1/gonum/num/dual"
)

// Num is the dual-number scalar: Real carries the value, Emag the
// derivative with respect to the currently seeded variable.
type Num = gdual.Number

// Const returns a dual constant: value v, zero derivative.
func Const(v float64) Num { return Num{Real: v} }

// Var returns a seeded dual variable: value v, unit derivative.
func Var(v float64) Num { return Num{Real: v, Emag: 1} }

// Add returns x + y.
func Add(x, y Num) Num { return gdual.Add(x, y) }

// Sub returns x - y.
func Sub(x, y Num) Num { return gdual.Sub(x, y) }

// Mul returns x * y.
func Mul(x, y Num) Num { return gdual.Mul(x, y) }

// Div returns x / y.
func Div(x, y Num) Num { return gdual.Mul(x, gdual.Inv(y)) }

// Inv returns 1 / x.
func Inv(x Num) Num { return gdual.Inv(x) }

// Scale returns c * x for a plain scalar c.
func Scale(c float64, x Num) Num { return gdual.Scale(c, x) }

// Neg returns -x.
func Neg(x Num) Num { return gdual.Scale(-1, x) }

// Shift returns x + c for a plain scalar c.
func Shift(c float64, x Num) Num { return Num{Real: x.Real + c, Emag: x.Emag} }

// Sum returns the sum of all xs (zero when empty).
func Sum(xs ...Num) Num {
	var acc Num
	for _, x := range xs {
		acc = gdual.Add(acc, x)
	}
	return acc
}

// Exp returns e**x.
func Exp(x Num) Num { return gdual.Exp(x) }

// Log returns the natural logarithm of x.
func Log(x Num) Num { return gdual.Log(x) }

// Sqrt returns the square root of x.
func Sqrt(x Num) Num { return gdual.Sqrt(x) }

// Pow returns x**y.
func Pow(x, y Num) Num { return gdual.Pow(x, y) }

// PowReal returns x**p for a plain scalar exponent p.
func PowReal(x Num, p float64) Num { return gdual.PowReal(x, p) }

// Abs returns |x|.
func Abs(x Num) Num { return gdual.Abs(x) }

// Sqr returns x*x. Cheaper and better-conditioned than PowReal(x, 2)
// at x = 0.
func Sqr(x Num) Num { return gdual.Mul(x, x) }

// Max returns the operand with the larger value. At a tie x wins, so
// the subgradient choice is deterministic.
func Max(x, y Num) Num {
	if y.Real > x.Real {
		return y
	}
	return x
}

// Erf returns the error function of x.
// d/dx erf(x) = 2/√π · exp(-x²), which gonum's dual package does not ship.
func Erf(x Num) Num {
	return Num{
		Real: math.Erf(x.Real),
		Emag: x.Emag * 2 / math.SqrtPi * math.Exp(-x.Real*x.Real),
	}
}

// IsFinite reports whether both the value and the derivative are finite.
func IsFinite(x Num) bool {
	return !math.IsNaN(x.Real) && !math.IsInf(x.Real, 0) &&
		!math.IsNaN(x.Emag) && !math.IsInf(x.Emag, 0)
}
