package bibliography

import (
	"math"
	"strconv"
	"strings"
)

// cellState classifies a parsed cell
type cellState int

const (
	cellMissing cellState = iota
	cellValid
	cellInvalid
)

// parseFloatCell parses a real number. Empty cells and NaN are missing.
func parseFloatCell(s string) (*float64, cellState) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, cellMissing
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, cellInvalid
	}
	if math.IsNaN(f) {
		return nil, cellMissing
	}
	if math.IsInf(f, 0) {
		return nil, cellInvalid
	}
	return &f, cellValid
}

// parseIntCell parses an integral number; "2019" and "2019.0" are both
// accepted since spreadsheet exports often write integers as floats.
func parseIntCell(s string) (*int, cellState) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, cellMissing
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return &n, cellValid
	}
	f, state := parseFloatCell(trimmed)
	if state != cellValid {
		return nil, state
	}
	if *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil, cellInvalid
	}
	n := int(*f)
	return &n, cellValid
}
