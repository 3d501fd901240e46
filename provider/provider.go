// Package provider defines the Haystack Provider contract: a
// synchronous capability set mirroring the Haystack REST verbs, with an
// embeddable Unimplemented default so a concrete provider need only
// override what it actually supports.
package provider

import (
	"context"
	"time"

	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

// Ack is the acknowledgement returned by PointWrite.
type Ack struct {
	OK      bool
	Message string
}

// Provider exposes the Haystack REST-verb-equivalent capability set.
// Implementations are free to support any subset; unsupported methods
// should embed Unimplemented and let it report a typed capability
// error.
type Provider interface {
	// About describes this provider in a one-row Grid. The reference
	// providers report its name (whoami) and the Haystack version it
	// implements; they do not list which operations they support.
	About(ctx context.Context) (*grid.Grid, error)

	// Read runs filterExpr over the entity set, honoring limit (0 means
	// unlimited), an optional column selection, and an optional
	// version. It returns the matching rows as a Grid.
	Read(ctx context.Context, filterExpr string, limit int, selectCols []string, version *time.Time) (*grid.Grid, error)

	// HisRead returns the time-series slice for ids within the given
	// time range.
	HisRead(ctx context.Context, ids []value.Ref, start, end time.Time) (*grid.Grid, error)

	// PointWrite writes a priority-array level on a writable point.
	PointWrite(ctx context.Context, id value.Ref, level int, val value.Value, who string, duration time.Duration) (Ack, error)

	// InvokeAction invokes a named action on id with the given
	// parameters, returning the action's result Grid.
	InvokeAction(ctx context.Context, id value.Ref, action string, params value.Dict) (*grid.Grid, error)

	// ValuesForTag returns the distinct, order-stable set of values
	// ever observed for tag across the entity set.
	ValuesForTag(ctx context.Context, tag string) ([]value.Value, error)

	// Versions returns the ascending list of distinct version
	// timestamps known to this provider; empty if it is not versioned.
	Versions(ctx context.Context) ([]time.Time, error)
}
