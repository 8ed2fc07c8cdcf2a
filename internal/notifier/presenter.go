package notifier

import (
	"context"
	"errors"

	"MarketGrid/internal/model"
)

// Presenter renders symbol reports. Each run calls Reset, then Present once
// per symbol in configured order, then Flush.
type Presenter interface {
	// Reset drops anything buffered by an earlier, unfinished run.
	Reset()
	Present(ctx context.Context, report *model.SymbolReport) error
	Flush(ctx context.Context) error
}

// ChartSource reports the chart file written by the current run, if any.
type ChartSource interface {
	Written() (path string, ok bool)
}

// MultiPresenter fans each call out to every presenter in order.
type MultiPresenter []Presenter

func (m MultiPresenter) Reset() {
	for _, p := range m {
		p.Reset()
	}
}

func (m MultiPresenter) Present(ctx context.Context, report *model.SymbolReport) error {
	for _, p := range m {
		if err := p.Present(ctx, report); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every presenter and joins their errors.
func (m MultiPresenter) Flush(ctx context.Context) error {
	var errs []error
	for _, p := range m {
		if err := p.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
