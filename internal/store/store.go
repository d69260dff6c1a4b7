// Package store provides persistence for the pricing run history consumed by
// the CLI. The pricing core itself never touches it.
package store

import (
	"context"
	"time"
)

// Run is one recorded pricing run.
type Run struct {
	ID            int64
	Timestamp     time.Time
	Family        string
	Kind          string
	Style         string
	Spot          float64
	Strike        float64
	Strike2       float64
	Rate          float64
	Volatility    float64
	Maturity      float64
	DividendYield float64
	Steps         int
	Price         float64
	Delta         float64
	Gamma         float64
	Theta         float64
	Vega          float64
	Rho           float64
}

// RunStore defines the interface for run-history persistence.
type RunStore interface {
	SaveRun(ctx context.Context, run *Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	Close() error
}
