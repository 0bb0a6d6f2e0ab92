// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/tsmeta/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "·"
	Arrow   = "→"
)

// ForDecision returns the icon and color a per-file decision is rendered with.
func ForDecision(d domain.Decision) (string, lipgloss.Color) {
	switch d {
	case domain.DecisionCompiled:
		return Check, Green
	case domain.DecisionError:
		return Cross, Red
	case domain.DecisionSkipNoMetadataFlag:
		return Warning, Yellow
	default:
		return Dot, Slate
	}
}
