package classifier

import (
	"errors"
	"fmt"
	"math"

	"github.com/nao1215/phishmodel/internal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Default hyperparameters.
const (
	DefaultMaxIter           = 1000
	DefaultC                 = 1.0
	DefaultGradientThreshold = 1e-4
)

// options configures Fit.
type options struct {
	maxIter           int
	c                 float64
	gradientThreshold float64
}

// Option is a functional option for Fit.
type Option func(*options)

// WithMaxIter sets the maximum number of L-BFGS iterations.
func WithMaxIter(n int) Option {
	return func(o *options) {
		o.maxIter = n
	}
}

// LogisticRegression is a fitted binary logistic regression model.
type LogisticRegression struct {
	// Coefs holds one weight per input column.
	Coefs []float64

	// Intercept is the unpenalised bias term.
	Intercept float64

	// Iterations is the number of major optimizer iterations used.
	Iterations int

	// Status is the optimizer's termination status.
	Status optimize.Status

	// Warning is set when the optimizer stopped with an error but still
	// produced a finite solution, or hit the iteration limit.
	Warning error
}

// Converged reports whether the optimizer met its convergence criteria.
func (lr *LogisticRegression) Converged() bool {
	return lr.Warning == nil
}

// Fit trains a logistic regression on x and binary labels y.
func Fit(x [][]float64, y []int, opts ...Option) (*LogisticRegression, error) {
	o := options{
		maxIter:           DefaultMaxIter,
		c:                 DefaultC,
		gradientThreshold: DefaultGradientThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}

	design, err := designMatrix(x, y)
	if err != nil {
		return nil, err
	}
	n, d := design.Dims()

	target := mat.NewVecDense(n, nil)
	for i, label := range y {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("%w: row %d has %d", ErrInvalidLabel, i, label)
		}
		target.SetVec(i, float64(label))
	}

	obj := &objective{x: design, y: target, c: o.c, z: mat.NewVecDense(n, nil), r: mat.NewVecDense(n, nil)}
	problem := optimize.Problem{
		Func: obj.value,
		Grad: obj.gradient,
	}
	settings := &optimize.Settings{
		MajorIterations:   o.maxIter,
		GradientThreshold: o.gradientThreshold,
	}

	result, err := optimize.Minimize(problem, make([]float64, d+1), settings, &optimize.LBFGS{})
	if result == nil || !allFinite(result.X) {
		if err == nil {
			err = errors.New("non-finite solution")
		}
		return nil, fmt.Errorf("%w: %w", ErrFitFailed, err)
	}

	lr := &LogisticRegression{
		Coefs:      append([]float64(nil), result.X[:d]...),
		Intercept:  result.X[d],
		Iterations: result.MajorIterations,
		Status:     result.Status,
	}
	switch {
	case err != nil:
		lr.Warning = err
	case result.Status == optimize.IterationLimit:
		lr.Warning = fmt.Errorf("failed to converge after %d iterations", lr.Iterations)
	}
	return lr, nil
}

// designMatrix copies x into a dense matrix after checking its shape.
func designMatrix(x [][]float64, y []int) (*mat.Dense, error) {
	if len(x) == 0 {
		return nil, ErrNoSamples
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d rows but %d labels", ErrDimensionMismatch, len(x), len(y))
	}
	d := len(x[0])
	if d == 0 {
		return nil, fmt.Errorf("%w: rows have no columns", ErrDimensionMismatch)
	}
	m := mat.NewDense(len(x), d, nil)
	for i, row := range x {
		if len(row) != d {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrDimensionMismatch, i, len(row), d)
		}
		m.SetRow(i, row)
	}
	return m, nil
}

// objective evaluates the penalised log-loss and its gradient. The last
// element of the parameter vector is the intercept.
type objective struct {
	x *mat.Dense
	y *mat.VecDense
	c float64

	// scratch
	z *mat.VecDense
	r *mat.VecDense
}

// margins stores X.w + b in o.z.
func (o *objective) margins(params []float64) {
	_, d := o.x.Dims()
	w := mat.NewVecDense(d, params[:d])
	o.z.MulVec(o.x, w)
	b := params[d]
	for i := range o.z.Len() {
		o.z.SetVec(i, o.z.AtVec(i)+b)
	}
}

func (o *objective) value(params []float64) float64 {
	_, d := o.x.Dims()
	o.margins(params)

	loss := 0.0
	for i := range o.z.Len() {
		z := o.z.AtVec(i)
		if o.y.AtVec(i) == 1 {
			loss += log1pExp(-z)
		} else {
			loss += log1pExp(z)
		}
	}
	w := params[:d]
	return 0.5*floats.Dot(w, w) + o.c*loss
}

func (o *objective) gradient(grad, params []float64) {
	_, d := o.x.Dims()
	o.margins(params)

	// r = C * (sigmoid(z) - y)
	sum := 0.0
	for i := range o.z.Len() {
		v := o.c * (model.Sigmoid(o.z.AtVec(i)) - o.y.AtVec(i))
		o.r.SetVec(i, v)
		sum += v
	}

	gw := mat.NewVecDense(d, grad[:d])
	gw.MulVec(o.x.T(), o.r)
	floats.Add(grad[:d], params[:d])
	grad[d] = sum
}

// log1pExp computes log(1 + exp(t)) without overflow.
func log1pExp(t float64) float64 {
	if t > 0 {
		return t + math.Log1p(math.Exp(-t))
	}
	return math.Log1p(math.Exp(t))
}

func allFinite(xs []float64) bool {
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return len(xs) > 0
}
