package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"UsageCast/internal/domain/models"
	domsvc "UsageCast/internal/domain/service"
	"UsageCast/pkg/logger"
)

// BackendARIMA is the name of the in-process backend.
const BackendARIMA = "arima"

// ARIMABackend fits ARIMA(p,d,q) models in process with a Hannan-Rissanen
// two-stage regression on the differenced, demeaned series.
// When the config asks for automatic order selection, the backend falls back
// to the largest order no greater than the requested one that the data supports.
type ARIMABackend struct {
	log *logger.Logger
}

func NewARIMABackend(log *logger.Logger) *ARIMABackend {
	return &ARIMABackend{log: log}
}

func (b *ARIMABackend) Name() string { return BackendARIMA }

func (b *ARIMABackend) Fit(ctx context.Context, values []float64, cfg models.ModelConfig) (domsvc.FittedModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkValues(values); err != nil {
		return nil, b.fail(err)
	}
	order := cfg.Order
	if order.P < 0 || order.D < 0 || order.Q < 0 {
		return nil, models.NewInvalidInput("negative order (%d,%d,%d)", order.P, order.D, order.Q)
	}

	candidates := []models.Order{order}
	if cfg.AutoOrder {
		candidates = smallerOrders(order)
	}

	var lastErr error
	for _, o := range candidates {
		fit, err := fitARIMA(values, o)
		if err != nil {
			lastErr = err
			continue
		}
		if o != order {
			b.log.Debug("arima order reduced",
				logger.Any("requested", order),
				logger.Any("fitted", o),
				logger.Int("observations", len(values)),
			)
		}
		return fit, nil
	}
	return nil, b.fail(lastErr)
}

func (b *ARIMABackend) fail(err error) error {
	return &models.ModelFittingError{Backend: BackendARIMA, Err: err}
}

func checkValues(values []float64) error {
	if len(values) == 0 {
		return errors.New("empty series")
	}
	constant := true
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value at index %d", i)
		}
		if v != values[0] {
			constant = false
		}
	}
	if constant {
		return errors.New("constant series")
	}
	return nil
}

// smallerOrders lists (p',d,q') with p'<=p and q'<=q, most complex first.
func smallerOrders(o models.Order) []models.Order {
	out := make([]models.Order, 0, (o.P+1)*(o.Q+1))
	for p := o.P; p >= 0; p-- {
		for q := o.Q; q >= 0; q-- {
			out = append(out, models.Order{P: p, D: o.D, Q: q})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].P+out[i].Q > out[j].P+out[j].Q
	})
	return out
}

// arimaFit is a fitted model; it implements domsvc.FittedModel.
type arimaFit struct {
	order  models.Order
	phi    []float64
	theta  []float64
	mean   float64
	sigma2 float64

	z      []float64   // demeaned differenced series
	eps    []float64   // in-sample innovations aligned with z
	levels [][]float64 // levels[k] is the series differenced k times
}

func fitARIMA(values []float64, o models.Order) (*arimaFit, error) {
	levels := make([][]float64, o.D+1)
	levels[0] = values
	for k := 1; k <= o.D; k++ {
		levels[k] = difference(levels[k-1])
	}
	x := levels[o.D]
	n := len(x)
	if n < o.P+o.Q+2 {
		return nil, errors.New("insufficient effective samples after differencing")
	}

	mean := stat.Mean(x, nil)
	z := make([]float64, n)
	for i, v := range x {
		z[i] = v - mean
	}

	f := &arimaFit{order: o, mean: mean, z: z, levels: levels, eps: make([]float64, n)}

	if stat.Variance(x, nil) == 0 {
		// deterministic drift: nothing left to model
		f.phi = make([]float64, o.P)
		f.theta = make([]float64, o.Q)
		return f, nil
	}

	var (
		resid1 []float64
		m      int
	)
	if o.Q > 0 {
		m = o.P + o.Q + 1
		for m > 1 && n-m < m+2 {
			m--
		}
		if n-m < m+2 {
			return nil, errors.New("insufficient effective samples after differencing")
		}
		coef, err := regress(z, m, lagColumns(z, nil, m, 0), m)
		if err != nil {
			return nil, err
		}
		resid1 = make([]float64, n)
		for t := m; t < n; t++ {
			pred := 0.0
			for i := 0; i < m; i++ {
				pred += coef[i] * z[t-1-i]
			}
			resid1[t] = z[t] - pred
		}
	}

	start := o.P
	if o.Q > 0 && m+o.Q > start {
		start = m + o.Q
	}
	cols := o.P + o.Q
	rows := n - start
	if rows < cols+2 {
		return nil, errors.New("insufficient effective samples after differencing")
	}

	var coef []float64
	if cols > 0 {
		var err error
		coef, err = regress(z, start, lagColumns(z, resid1, o.P, o.Q), cols)
		if err != nil {
			return nil, err
		}
	}
	f.phi = coef[:o.P:o.P]
	f.theta = coef[o.P:]
	for _, c := range coef {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, errors.New("non-finite coefficients")
		}
	}

	copy(f.eps, resid1)
	var rss float64
	for t := start; t < n; t++ {
		r := z[t] - f.oneStep(z, f.eps, t)
		f.eps[t] = r
		rss += r * r
	}
	f.sigma2 = rss / float64(rows-cols)
	if math.IsNaN(f.sigma2) || math.IsInf(f.sigma2, 0) {
		return nil, errors.New("non-finite residual variance")
	}
	return f, nil
}

// lagColumns returns a row builder for the regression of z[t] on
// z[t-1..t-p] followed by e[t-1..t-q].
func lagColumns(z, e []float64, p, q int) func(t int, row []float64) {
	return func(t int, row []float64) {
		for i := 0; i < p; i++ {
			row[i] = z[t-1-i]
		}
		for j := 0; j < q; j++ {
			row[p+j] = e[t-1-j]
		}
	}
}

// regress solves the least squares problem z[t] ~ row(t) for t in [start, len(z)).
func regress(z []float64, start int, fill func(t int, row []float64), cols int) ([]float64, error) {
	rows := len(z) - start
	a := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)
	row := make([]float64, cols)
	for t := start; t < len(z); t++ {
		fill(t, row)
		a.SetRow(t-start, row)
		y.SetVec(t-start, z[t])
	}

	var beta mat.VecDense
	if err := beta.SolveVec(a, y); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("least squares: %w", err)
		}
	}
	out := make([]float64, cols)
	for i := range out {
		out[i] = beta.AtVec(i)
	}
	return out, nil
}

func (f *arimaFit) oneStep(z, eps []float64, t int) float64 {
	var v float64
	for i, c := range f.phi {
		if t-1-i >= 0 {
			v += c * z[t-1-i]
		}
	}
	for j, c := range f.theta {
		if t-1-j >= 0 {
			v += c * eps[t-1-j]
		}
	}
	return v
}

func (f *arimaFit) Predict(ctx context.Context, steps int) ([]float64, []float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if steps < 1 {
		return nil, nil, models.NewInvalidInput("steps must be at least 1, got %d", steps)
	}

	n := len(f.z)
	z := make([]float64, n, n+steps)
	copy(z, f.z)
	eps := make([]float64, n+steps)
	copy(eps, f.eps)

	diffForecast := make([]float64, steps)
	for h := 0; h < steps; h++ {
		v := f.oneStep(z, eps, n+h)
		z = append(z, v)
		diffForecast[h] = v + f.mean
	}

	preds := integrate(f.levels, diffForecast)

	psi := f.psiWeights(steps)
	errs := make([]float64, steps)
	var acc float64
	for h := 0; h < steps; h++ {
		acc += psi[h] * psi[h]
		errs[h] = math.Sqrt(f.sigma2 * acc)
	}
	return preds, errs, nil
}

// psiWeights expands theta(B) / (phi(B)(1-B)^d) into its first n coefficients.
func (f *arimaFit) psiWeights(n int) []float64 {
	ar := []float64{1}
	for _, c := range f.phi {
		ar = append(ar, -c)
	}
	for k := 0; k < f.order.D; k++ {
		next := make([]float64, len(ar)+1)
		for i, c := range ar {
			next[i] += c
			next[i+1] -= c
		}
		ar = next
	}

	psi := make([]float64, n)
	psi[0] = 1
	for j := 1; j < n; j++ {
		var v float64
		if j-1 < len(f.theta) {
			v = f.theta[j-1]
		}
		for i := 1; i < len(ar) && i <= j; i++ {
			v -= ar[i] * psi[j-i]
		}
		psi[j] = v
	}
	return psi
}

func difference(xs []float64) []float64 {
	if len(xs) < 2 {
		return []float64{}
	}
	out := make([]float64, len(xs)-1)
	for i := range out {
		out[i] = xs[i+1] - xs[i]
	}
	return out
}

// integrate undoes differencing level by level, anchoring on each level's last value.
func integrate(levels [][]float64, forecast []float64) []float64 {
	cur := forecast
	for k := len(levels) - 2; k >= 0; k-- {
		prev := levels[k][len(levels[k])-1]
		next := make([]float64, len(cur))
		for i, v := range cur {
			prev += v
			next[i] = prev
		}
		cur = next
	}
	return cur
}

var (
	_ domsvc.ModelBackend = (*ARIMABackend)(nil)
	_ domsvc.FittedModel  = (*arimaFit)(nil)
)
