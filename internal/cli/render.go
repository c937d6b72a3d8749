package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
)

// supportHint is the fixed dimmed line appended to every recoverable error,
// per the CLI's one-line-subject-plus-hint contract: detailed diagnostics
// belong in the debug log, not on the terminal.
const supportHint = "run with LOG_LEVEL=debug for details"

// renderError prints a one-line subject plus a dimmed support hint to out,
// matching the CLI's fixed, untheming error format.
func renderError(out io.Writer, err error) {
	fmt.Fprintln(out, err.Error())
	fmt.Fprintln(out, color.New(color.Faint).Sprint(supportHint))
}

// newTableWriter returns a tabwriter configured for the CLI's plain,
// space-padded table output (no box-drawing, no color).
func newTableWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}
