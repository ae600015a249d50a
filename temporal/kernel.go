package temporal

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTimescale is returned when τ is not a finite positive number.
	ErrTimescale = errors.New("temporal: timescale must be finite and > 0")

	// ErrEmptyTimes is returned for an empty time grid.
	ErrEmptyTimes = errors.New("temporal: empty time grid")

	// ErrUnknownKernel is returned by ByName for unregistered names.
	ErrUnknownKernel = errors.New("temporal: unknown kernel")
)

// Kernel evaluates a temporal covariance between two time grids.
type Kernel interface {
	// Name identifies the kernel in logs and configuration files.
	Name() string

	// Cov returns the len(t1)×len(t2) covariance matrix.
	Cov(t1, t2 []float64, tau float64) (*mat.Dense, error)
}

// Stationary is a kernel defined by its profile k(r), r = |t1−t2|/τ.
type Stationary struct {
	name    string
	profile func(r float64) float64
}

var (
	// Exponential is the Matérn-1/2 kernel.
	Exponential = Stationary{name: "exponential", profile: func(r float64) float64 {
		return math.Exp(-r)
	}}

	// Matern32 is the Matérn-3/2 kernel, the default for spot evolution.
	Matern32 = Stationary{name: "matern32", profile: func(r float64) float64 {
		x := math.Sqrt(3) * r
		return (1 + x) * math.Exp(-x)
	}}

	// Matern52 is the Matérn-5/2 kernel.
	Matern52 = Stationary{name: "matern52", profile: func(r float64) float64 {
		x := math.Sqrt(5) * r
		return (1 + x + x*x/3) * math.Exp(-x)
	}}

	// ExpSquared is the squared-exponential kernel.
	ExpSquared = Stationary{name: "expsquared", profile: func(r float64) float64 {
		return math.Exp(-0.5 * r * r)
	}}
)

// Default is the kernel used when a timescale is set without a kernel.
var Default Kernel = Matern32

var registry = map[string]Kernel{
	Exponential.name: Exponential,
	Matern32.name:    Matern32,
	Matern52.name:    Matern52,
	ExpSquared.name:  ExpSquared,
}

// ByName looks up a built-in kernel by its Name.
func ByName(name string) (Kernel, error) {
	k, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}

	return k, nil
}

// Name implements Kernel.
func (s Stationary) Name() string { return s.name }

// Cov implements Kernel.
func (s Stationary) Cov(t1, t2 []float64, tau float64) (*mat.Dense, error) {
	if err := checkTau(tau); err != nil {
		return nil, err
	}
	if len(t1) == 0 || len(t2) == 0 {
		return nil, ErrEmptyTimes
	}
	out := mat.NewDense(len(t1), len(t2), nil)
	for i, a := range t1 {
		for j, b := range t2 {
			out.Set(i, j, s.profile(math.Abs(a-b)/tau))
		}
	}

	return out, nil
}

// Gram returns the symmetric covariance of a single grid, K(t, t; τ).
// Only the upper triangle is evaluated.
func Gram(k Kernel, t []float64, tau float64) (*mat.SymDense, error) {
	if err := checkTau(tau); err != nil {
		return nil, err
	}
	n := len(t)
	if n == 0 {
		return nil, ErrEmptyTimes
	}
	s, ok := k.(Stationary)
	if !ok {
		full, err := k.Cov(t, t, tau)
		if err != nil {
			return nil, err
		}
		out := mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				out.SetSym(i, j, 0.5*(full.At(i, j)+full.At(j, i)))
			}
		}
		return out, nil
	}

	raw := blas64.Symmetric{N: n, Stride: n, Uplo: blas.Upper, Data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		raw.Data[i*n+i] = s.profile(0)
		for j := i + 1; j < n; j++ {
			raw.Data[i*n+j] = s.profile(math.Abs(t[i]-t[j]) / tau)
		}
	}
	var out mat.SymDense
	out.SetRawSymmetric(raw)

	return &out, nil
}

func checkTau(tau float64) error {
	if math.IsNaN(tau) || math.IsInf(tau, 0) || tau <= 0 {
		return ErrTimescale
	}

	return nil
}
