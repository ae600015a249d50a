// SPDX-License-Identifier: MIT

package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors.
var (
	// ErrEmpty indicates a file with no data records.
	ErrEmpty = errors.New("dataio: no data")

	// ErrShape indicates records of an unexpected width.
	ErrShape = errors.New("dataio: unexpected shape")

	// ErrParse indicates a field that is not a number.
	ErrParse = errors.New("dataio: invalid number")
)

// LightCurve is a parsed light curve. Sigma is nil when the file has only
// two columns.
type LightCurve struct {
	T     []float64
	Flux  []float64
	Sigma []float64
}

// Variances returns σ² per point, or nil when Sigma is nil.
func (lc LightCurve) Variances() []float64 {
	if lc.Sigma == nil {
		return nil
	}
	v := make([]float64, len(lc.Sigma))
	for i, s := range lc.Sigma {
		v[i] = s * s
	}

	return v
}

// readRecords parses every non-comment record of r into floats.
func readRecords(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	out := make([][]float64, len(records))
	for i, rec := range records {
		row := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: record %d field %d: %q", ErrParse, i+1, j+1, field)
			}
			row[j] = v
		}
		out[i] = row
	}

	return out, nil
}

// ReadVector reads a column or a single row of numbers.
func ReadVector(r io.Reader) ([]float64, error) {
	rows, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	switch {
	case len(rows) == 1:
		return rows[0], nil
	case len(rows[0]) == 1:
		v := make([]float64, len(rows))
		for i, row := range rows {
			v[i] = row[0]
		}
		return v, nil
	}

	return nil, fmt.Errorf("%w: %d×%d is not a vector", ErrShape, len(rows), len(rows[0]))
}

// ReadMatrix reads a dense matrix, one row per record.
func ReadMatrix(r io.Reader) (*mat.Dense, error) {
	rows, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	nr, nc := len(rows), len(rows[0])
	data := make([]float64, 0, nr*nc)
	for _, row := range rows {
		data = append(data, row...)
	}

	return mat.NewDense(nr, nc, data), nil
}

// ReadSymmetric reads a square matrix and checks that it is symmetric to
// within tol relative to its largest entry.
func ReadSymmetric(r io.Reader, tol float64) (*mat.SymDense, error) {
	m, err := ReadMatrix(r)
	if err != nil {
		return nil, err
	}
	n, c := m.Dims()
	if n != c {
		return nil, fmt.Errorf("%w: %d×%d is not square", ErrShape, n, c)
	}
	scale := mat.Norm(m, 1)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d := m.At(i, j) - m.At(j, i); d > tol*scale || -d > tol*scale {
				return nil, fmt.Errorf("%w: entry (%d,%d) is not symmetric", ErrShape, i, j)
			}
		}
	}
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}

	return out, nil
}

// ReadLightCurve reads two or three columns: t, flux and optionally σ.
func ReadLightCurve(r io.Reader) (LightCurve, error) {
	rows, err := readRecords(r)
	if err != nil {
		return LightCurve{}, err
	}
	cols := len(rows[0])
	if cols != 2 && cols != 3 {
		return LightCurve{}, fmt.Errorf("%w: light curve has %d columns, want 2 or 3", ErrShape, cols)
	}
	lc := LightCurve{T: make([]float64, len(rows)), Flux: make([]float64, len(rows))}
	if cols == 3 {
		lc.Sigma = make([]float64, len(rows))
	}
	for i, row := range rows {
		lc.T[i], lc.Flux[i] = row[0], row[1]
		if cols == 3 {
			lc.Sigma[i] = row[2]
		}
	}

	return lc, nil
}

// WriteMatrix writes m as CSV, one row per record.
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	cw := csv.NewWriter(w)
	r, c := m.Dims()
	rec := make([]string, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			rec[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteVector writes v as a single column.
func WriteVector(w io.Writer, v mat.Vector) error {
	return WriteMatrix(w, v)
}

// ReadVectorFile opens path and calls ReadVector.
func ReadVectorFile(path string) ([]float64, error) {
	return readFile(path, ReadVector)
}

// ReadMatrixFile opens path and calls ReadMatrix.
func ReadMatrixFile(path string) (*mat.Dense, error) {
	return readFile(path, ReadMatrix)
}

// ReadSymmetricFile opens path and calls ReadSymmetric.
func ReadSymmetricFile(path string, tol float64) (*mat.SymDense, error) {
	return readFile(path, func(r io.Reader) (*mat.SymDense, error) { return ReadSymmetric(r, tol) })
}

// ReadLightCurveFile opens path and calls ReadLightCurve.
func ReadLightCurveFile(path string) (LightCurve, error) {
	return readFile(path, ReadLightCurve)
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}
