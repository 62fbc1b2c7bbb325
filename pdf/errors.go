package pdf

import "errors"

// FractionTol is the numerical tolerance applied to sum-model fraction
// consistency checks.
const FractionTol = 1e-9

// Sentinel errors for model construction and evaluation.
var (
	// ErrNormalization indicates a zero, negative or non-finite
	// normalization constant; PDF values cannot be formed from it.
	ErrNormalization = errors.New("pdf: zero or non-finite normalization")

	// ErrFractionSum indicates non-extended sum fractions exceeding
	// unity beyond FractionTol, or a negative implicit remainder.
	ErrFractionSum = errors.New("pdf: sum fractions inconsistent")

	// ErrFractionCount indicates a fraction list that is neither n nor
	// n-1 entries long for n children.
	ErrFractionCount = errors.New("pdf: wrong number of fractions")

	// ErrAxisOverlap indicates product children sharing an axis;
	// products factorize only over disjoint axis sets.
	ErrAxisOverlap = errors.New("pdf: product children share an axis")

	// ErrAxisMismatch indicates convolution operands that are not both
	// one-dimensional over the same axis.
	ErrAxisMismatch = errors.New("pdf: convolution operands on different axes")

	// ErrSpaceMismatch indicates sum children defined over different
	// spaces.
	ErrSpaceMismatch = errors.New("pdf: sum children over different spaces")

	// ErrNoChildren indicates a combinator built with fewer than two
	// children.
	ErrNoChildren = errors.New("pdf: combinator needs at least two children")

	// ErrNilVar indicates a nil parameter, child model or density handed
	// to a constructor.
	ErrNilVar = errors.New("pdf: nil argument")

	// ErrSpaceDim indicates a primitive built over a space with the
	// wrong number of axes.
	ErrSpaceDim = errors.New("pdf: wrong space dimensionality")
)
