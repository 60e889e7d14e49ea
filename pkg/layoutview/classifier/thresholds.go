// Package classifier decides the layout of a sheet from its cell grid.
package classifier

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Thresholds holds the fixed constants of the decision policy.
type Thresholds struct {
	// TabularMaxSparsity is the exclusive upper bound on sparsity for Tabular.
	TabularMaxSparsity float64 `mapstructure:"tabular_max_sparsity" yaml:"tabular_max_sparsity"`
	// TabularMinDataRows is the minimum number of rows below the header.
	TabularMinDataRows int `mapstructure:"tabular_min_data_rows" yaml:"tabular_min_data_rows"`
	// FormMinDominantShare is the exclusive lower bound on the share of
	// non-empty cells held by the two dominant columns.
	FormMinDominantShare float64 `mapstructure:"form_min_dominant_share" yaml:"form_min_dominant_share"`
	// FormMaxOtherDensity is the inclusive upper bound on the density of
	// every non-dominant column.
	FormMaxOtherDensity float64 `mapstructure:"form_max_other_density" yaml:"form_max_other_density"`
	// FormMinRows is the minimum row count for Form.
	FormMinRows int `mapstructure:"form_min_rows" yaml:"form_min_rows"`
	// SparseMinSparsity is the inclusive lower bound on sparsity for Sparse.
	SparseMinSparsity float64 `mapstructure:"sparse_min_sparsity" yaml:"sparse_min_sparsity"`
}

// DefaultThresholds returns the documented classification constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TabularMaxSparsity:   0.3,
		TabularMinDataRows:   2,
		FormMinDominantShare: 0.5,
		FormMaxOtherDensity:  0.1,
		FormMinRows:          2,
		SparseMinSparsity:    0.5,
	}
}

// Validate checks that fractions lie in [0,1] and row counts are not negative.
func (t Thresholds) Validate() error {
	fractions := []struct {
		name  string
		value float64
	}{
		{"tabular_max_sparsity", t.TabularMaxSparsity},
		{"form_min_dominant_share", t.FormMinDominantShare},
		{"form_max_other_density", t.FormMaxOtherDensity},
		{"sparse_min_sparsity", t.SparseMinSparsity},
	}
	for _, f := range fractions {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("threshold %s must be within [0,1], got %v", f.name, f.value)
		}
	}
	if t.TabularMinDataRows < 0 {
		return fmt.Errorf("threshold tabular_min_data_rows must not be negative, got %d", t.TabularMinDataRows)
	}
	if t.FormMinRows < 0 {
		return fmt.Errorf("threshold form_min_rows must not be negative, got %d", t.FormMinRows)
	}
	return nil
}

// Fingerprint returns a stable digest of the thresholds, used to key cached results.
func (t Thresholds) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%v|%d|%v|%v|%d|%v",
		t.TabularMaxSparsity, t.TabularMinDataRows,
		t.FormMinDominantShare, t.FormMaxOtherDensity, t.FormMinRows,
		t.SparseMinSparsity)))
	return hex.EncodeToString(sum[:8])
}
