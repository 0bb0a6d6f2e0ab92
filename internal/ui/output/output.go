// Package output provides terminal output helpers with consistent color
// profile and TTY handling across the CLI.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/ui/style"
)

// ColorProfile returns the color profile for the current environment.
// NO_COLOR forces Ascii; otherwise the terminal's capabilities are detected.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output using ColorProfile.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Printer renders command results.
type Printer struct {
	out *termenv.Output
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: New(w)}
}

// Decision prints one line for the decision reached for path.
func (p *Printer) Decision(path string, d domain.Decision) {
	icon, color := style.ForDecision(d)
	line := fmt.Sprintf("%s %-22s %s", icon, d, path)
	_, _ = p.out.WriteString(p.out.String(line).Foreground(termenv.RGBColor(string(color))).String() + "\n")
}

// Summary prints the decision counts in gate order, omitting empty ones.
func (p *Printer) Summary(counts map[domain.Decision]int) {
	total := 0
	for _, d := range domain.Decisions {
		total += counts[d]
	}

	line := fmt.Sprintf("%d files", total)
	for _, d := range domain.Decisions {
		if n := counts[d]; n > 0 {
			line += fmt.Sprintf(", %d %s", n, d)
		}
	}
	_, _ = p.out.WriteString(p.out.String(line).Bold().String() + "\n")
}

// Code prints transformed source text verbatim.
func (p *Printer) Code(code string) {
	_, _ = p.out.WriteString(code)
}
