package notifier

import (
	"context"
	"fmt"
	"io"

	"MarketGrid/internal/model"
)

// ConsoleNotifier prints one summary block per symbol.
type ConsoleNotifier struct {
	Out io.Writer
}

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{Out: out}
}

func (c *ConsoleNotifier) Present(_ context.Context, r *model.SymbolReport) error {
	_, err := fmt.Fprintln(c.Out, FormatSymbolSummary(r))
	return err
}

func (c *ConsoleNotifier) Reset() {}

func (c *ConsoleNotifier) Flush(context.Context) error { return nil }
