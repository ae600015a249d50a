package normalize

// Coeffs are the series coefficients of the normalization at a given z.
type Coeffs struct {
	Alpha    float64 // E[(1+x)⁻²]
	Beta     float64 // Var(x/(1+x))/z − Alpha
	DAlphaDz float64
	DBetaDz  float64
}

// doubleFactorials returns a[k] = (2k−1)!! for k = 0..n, with a[0] = 1.
// These are the even moments E[x^2k] / z^k of a zero-mean Gaussian.
func doubleFactorials(n int) []float64 {
	a := make([]float64, n+1)
	a[0] = 1
	for k := 1; k <= n; k++ {
		a[k] = a[k-1] * float64(2*k-1)
	}

	return a
}

// Coefficients returns the truncated-series (α, β) pair and its derivatives.
//
// With a_k = (2k−1)!! and N = order:
//
//	α     = Σ_{k=0..N}   a_{k+1} z^k
//	α + β = Σ_{k=1..N} ( a_{k+1} − Σ_{i=0..k} a_i a_{k−i} ) z^{k−1}
//
// The k = 0 term of Var(x/(1+x)) cancels exactly, which is why α+β is
// assembled term by term instead of as a difference of two sums.
// At z = 0: α = 1, β = 0.
func Coefficients(z float64, order int) Coeffs {
	if order < 1 {
		panic(panicOrderInvalid)
	}
	a := doubleFactorials(order + 1)

	var alpha, dalpha float64
	zk, zkm1 := 1.0, 0.0 // z^k and z^(k−1)
	for k := 0; k <= order; k++ {
		alpha += a[k+1] * zk
		if k > 0 {
			dalpha += float64(k) * a[k+1] * zkm1
		}
		zkm1 = zk
		zk *= z
	}

	var sum, dsum, cauchy float64
	zk, zkm1 = 1.0, 0.0 // now z^(k−1) and z^(k−2), starting at k = 1
	for k := 1; k <= order; k++ {
		cauchy = 0
		for i := 0; i <= k; i++ {
			cauchy += a[i] * a[k-i]
		}
		term := a[k+1] - cauchy
		sum += term * zk
		if k > 1 {
			dsum += float64(k-1) * term * zkm1
		}
		zkm1 = zk
		zk *= z
	}

	return Coeffs{
		Alpha:    alpha,
		Beta:     sum - alpha,
		DAlphaDz: dalpha,
		DBetaDz:  dsum - dalpha,
	}
}
