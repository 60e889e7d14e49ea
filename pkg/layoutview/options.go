// Package layoutview classifies the layout of every sheet in an Excel workbook.
package layoutview

import (
	"github.com/ukaji3/layoutview/pkg/layoutview/classifier"
	"go.uber.org/zap"
)

// Options configures classification behavior.
type Options struct {
	// Thresholds overrides the classification constants.
	// If nil, classifier.DefaultThresholds is used.
	Thresholds *classifier.Thresholds
	// SkipHidden drops hidden and very hidden sheets from the result.
	SkipHidden bool
	// Workers is the number of sheets classified in parallel.
	// Values below 1 mean sequential classification.
	Workers int
	// Logger receives progress logs. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default classification options.
func DefaultOptions() Options {
	return Options{
		Workers: 1,
	}
}

// EffectiveThresholds returns the thresholds classification will use.
func (o Options) EffectiveThresholds() classifier.Thresholds {
	if o.Thresholds != nil {
		return *o.Thresholds
	}
	return classifier.DefaultThresholds()
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
