package provider

import (
	"context"
	"time"

	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

// Unimplemented is an embeddable default that reports every Provider
// method as unsupported via a typed capability error. Concrete
// providers embed it and override only the methods they implement,
// mirroring HaystackInterface's abstract/optional method split.
type Unimplemented struct{}

func capabilityError(op string) error {
	return errors.NewDomainError(errors.CategoryCapability, errors.Wrap(errors.ErrCapability, op),
		"this provider does not support "+op).
		WithSubcategory(errors.SubcategoryCapabilityNotImplemented)
}

func (Unimplemented) About(context.Context) (*grid.Grid, error) {
	return nil, capabilityError("about")
}

func (Unimplemented) Read(context.Context, string, int, []string, *time.Time) (*grid.Grid, error) {
	return nil, capabilityError("read")
}

func (Unimplemented) HisRead(context.Context, []value.Ref, time.Time, time.Time) (*grid.Grid, error) {
	return nil, capabilityError("hisRead")
}

func (Unimplemented) PointWrite(context.Context, value.Ref, int, value.Value, string, time.Duration) (Ack, error) {
	return Ack{}, capabilityError("pointWrite")
}

func (Unimplemented) InvokeAction(context.Context, value.Ref, string, value.Dict) (*grid.Grid, error) {
	return nil, capabilityError("invokeAction")
}

func (Unimplemented) ValuesForTag(context.Context, string) ([]value.Value, error) {
	return nil, capabilityError("valuesForTag")
}

func (Unimplemented) Versions(context.Context) ([]time.Time, error) {
	return nil, capabilityError("versions")
}
