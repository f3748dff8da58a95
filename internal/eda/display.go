package eda

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
)

// Displayer shows a summary as soon as it is computed.
type Displayer interface {
	Display(label string, t *summary.Table, fig *plots.Figure) error
}

// TerminalDisplayer prints the table and writes the figure to a temporary PNG.
type TerminalDisplayer struct {
	Out io.Writer
}

// Display implements Displayer.
func (d TerminalDisplayer) Display(label string, t *summary.Table, fig *plots.Figure) error {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "%s\n%s\n", label, t.String())
	if fig == nil {
		return nil
	}
	path, err := fig.TempPNG(label)
	if err != nil {
		return fmt.Errorf("write figure: %w", err)
	}
	zap.L().Info("figure written", zap.String("column", label), zap.String("path", path))
	fmt.Fprintf(out, "✓ Figure: %s\n", path)
	return nil
}
