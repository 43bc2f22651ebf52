package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/thoreinstein/zappi/internal/install"
	"github.com/thoreinstein/zappi/internal/logging"
	"github.com/thoreinstein/zappi/internal/store"
)

// Printer renders records and results for humans. Colors are enabled only
// when the writer supports them.
type Printer struct {
	w      io.Writer
	bold   *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	gray   *color.Color
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{
		w:      w,
		bold:   color.New(color.Bold),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		gray:   color.New(color.FgHiBlack),
	}
	if !logging.SupportsColor(w) {
		for _, c := range []*color.Color{p.bold, p.green, p.red, p.yellow, p.gray} {
			c.DisableColor()
		}
	}
	return p
}

// Records prints a table of records.
func (p *Printer) Records(records []store.Record) {
	if len(records) == 0 {
		fmt.Fprintln(p.w, p.gray.Sprint("(no apps)"))
		return
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		p.bold.Sprint("NAME"), p.bold.Sprint("PLATFORM"), p.bold.Sprint("VERSION"), p.bold.Sprint("INSTALLED"))
	for _, r := range records {
		version := r.Version
		if version == "" {
			version = "-"
		}
		installed := p.green.Sprint("yes")
		if !r.Installed {
			installed = p.yellow.Sprint("no")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.Platform, version, installed)
	}
	tw.Flush()
}

// Batch prints one line per outcome followed by the summary message.
func (p *Printer) Batch(res install.BatchResult) {
	for _, o := range res.Results {
		p.Outcome(o)
	}
	if len(res.Results) > 0 {
		fmt.Fprintln(p.w)
	}
	fmt.Fprintln(p.w, res.Message)
}

// Outcome prints a single install outcome.
func (p *Printer) Outcome(o install.Outcome) {
	if o.Success {
		fmt.Fprintf(p.w, "%s %s %s\n", p.green.Sprint("✓"), o.App, p.gray.Sprintf("(%s)", o.Method))
		return
	}
	fmt.Fprintf(p.w, "%s %s: %s\n", p.red.Sprint("✗"), o.App, o.Error)
}

// Success prints a green check line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.green.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Warn prints a yellow warning line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.yellow.Sprint("⚠"), fmt.Sprintf(format, args...))
}
