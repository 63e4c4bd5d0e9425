// Package theme defines the semantic lipgloss styles used by the synapse
// CLI. Commands render through these styles rather than hard-coding colors
// so output stays consistent across subcommands.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette holds the color codes behind the semantic styles. ANSI 256
// codes, degraded automatically by lipgloss on simpler terminals.
type Palette struct {
	Success string
	Failure string
	Muted   string
	Accent  string
}

// Default is the palette used by the CLI.
var Default = Palette{
	Success: "42",
	Failure: "196",
	Muted:   "245",
	Accent:  "39",
}

var (
	// Header renders section titles and trace IDs.
	Header = lipgloss.NewStyle().Bold(true)

	// Success renders positive outcomes: supported checks, resolved chains.
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color(Default.Success)).Bold(true)

	// Failure renders negative outcomes: no path, unsupported checks.
	Failure = lipgloss.NewStyle().Foreground(lipgloss.Color(Default.Failure)).Bold(true)

	// Dim renders secondary detail such as chain steps and warnings.
	Dim = lipgloss.NewStyle().Foreground(lipgloss.Color(Default.Muted))

	// Accent renders emphasized identifiers inside otherwise plain lines.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(Default.Accent))
)

// Init detects the terminal color profile and applies it globally. Call
// once at startup before rendering any styled output.
func Init() {
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
