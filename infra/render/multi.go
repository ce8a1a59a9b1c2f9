package render

import (
	"context"
	"errors"
	"io"

	"github.com/kilianp07/taxisim/core/simulation"
)

// Multi runs several renderers in order as a single simulation stage.
type Multi []simulation.Actor

// Act stops at the first failing renderer.
func (m Multi) Act(ctx context.Context) error {
	for _, r := range m {
		if err := r.Act(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every renderer implementing io.Closer.
func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		if c, ok := r.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
