// Package dataio reads and writes the numeric CSV files exchanged with the
// external moment and flux integrators.
//
// Format:
//   - Comma-separated values; lines starting with '#' are comments.
//   - Leading and trailing spaces around a field are ignored.
//   - Every record of a file has the same number of fields.
//
// A vector may be written one value per line or as a single row. A light
// curve has two columns (t, flux) or three (t, flux, σ).
package dataio
